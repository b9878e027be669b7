package types

// Status is the outcome of a classification call
type Status string

const (
	// StatusOK indicates the input was classified
	StatusOK Status = "OK"
	// StatusError indicates the input could not be fetched or was empty
	StatusError Status = "ERROR"
)

// Label is the verdict assigned to a classified site
type Label string

const (
	// LabelGoodSafe marks a trusted or high scoring site
	LabelGoodSafe Label = "GOOD_SAFE"
	// LabelSuspicious marks a middling score
	LabelSuspicious Label = "SUSPICIOUS"
	// LabelLowQuality marks a low score
	LabelLowQuality Label = "LOW_QUALITY"
	// LabelError is used in summary rows for inputs that failed
	LabelError Label = "ERROR"
)

// Signal names reported in Signals
const (
	SignalWordCount   = "word_count"
	SignalThinContent = "thin_content"
	SignalLoremIpsum  = "lorem_ipsum"
	SignalNoHTTPS     = "no_https"
)

// Signals maps a signal name to the boolean or numeric observation made while scoring
type Signals map[string]any

// Result is the outcome of classifying a single input. Field names are part of
// the JSON export format and must not change.
type Result struct {
	Status          Status  `json:"status" example:"OK" description:"OK when classified, ERROR when the site could not be fetched"`
	Input           string  `json:"input" example:"http://example.com/redirect?x=1" description:"Raw user input"`
	Host            string  `json:"host" example:"example.com" description:"Normalized input hostname"`
	BaseDomain      string  `json:"base_domain" example:"example.com" description:"Root domain of the input host"`
	FinalURL        string  `json:"final_url,omitempty" example:"https://www.example.com/" description:"URL reached after following redirects"`
	FinalHost       string  `json:"final_host,omitempty" example:"www.example.com" description:"Normalized hostname of the final URL"`
	FinalBaseDomain string  `json:"final_base_domain,omitempty" example:"example.com" description:"Root domain of the final host"`
	ForcedGood      bool    `json:"forced_good" example:"false" description:"True when the trust allowlist short-circuited scoring"`
	Score           int     `json:"score" example:"80" description:"Quality score from 0 to 100"`
	Label           Label   `json:"label,omitempty" example:"GOOD_SAFE" description:"GOOD_SAFE, SUSPICIOUS or LOW_QUALITY"`
	Signals         Signals `json:"signals,omitempty" description:"Heuristic observations made while scoring"`
	Reason          string  `json:"reason,omitempty" example:"Trusted allowlist matched" description:"Human readable explanation"`
	Error           string  `json:"error,omitempty" example:"Cannot access website (HTTP 404)" description:"Failure message for ERROR results"`
}

// OK reports whether the result carries a classification
func (r *Result) OK() bool {
	return r != nil && r.Status == StatusOK
}

// Row is the condensed summary of a Result used in bulk scan tables
type Row struct {
	Input           string `json:"input" example:"example.com"`
	Label           Label  `json:"label" example:"SUSPICIOUS"`
	Score           int    `json:"score" example:"55"`
	FinalURL        string `json:"final_url" example:"https://example.com/"`
	FinalRootDomain string `json:"final_root_domain" example:"example.com"`
	Note            string `json:"note" example:"trusted"`
}
