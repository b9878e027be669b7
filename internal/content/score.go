// Package content scores fetched pages for signs of low quality: thin
// content, placeholder text, and missing transport security.
package content

import (
	"maps"
	"strings"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

const (
	// thinContentWords is the word count below which a page is considered thin
	thinContentWords = 200
	// thinContentPoints is the risk added for thin pages
	thinContentPoints = 20
	// loremIpsumPoints is the risk added for pages containing placeholder text
	loremIpsumPoints = 30
	// noHTTPSPoints is the risk added when the final URL is not served over https
	noHTTPSPoints = 25
	// maxScore is the score of a page with no risk points
	maxScore = 100
)

// loremIpsumMarkers are lowercase fragments of the standard placeholder text
var loremIpsumMarkers = []string{
	"lorem ipsum",
	"dolor sit amet",
}

// Check is the outcome of a single heuristic: the risk points it adds and the
// signal it reports
type Check struct {
	// Points is the risk added by this check, zero when it did not fire
	Points int
	// Signal is the signal name reported to callers
	Signal string
	// Value is the boolean or numeric observation
	Value any
}

// Heuristic evaluates one property of a page
type Heuristic func(Page) Check

// DefaultHeuristics are the page heuristics applied by Score, in order
var DefaultHeuristics = []Heuristic{
	WordCount,
	ThinContent,
	LoremIpsum,
}

// Assessment is the accumulated result of folding checks over a page
type Assessment struct {
	// RiskPoints is the sum of points from every check
	RiskPoints int
	// Signals holds the observation reported by every check
	Signals types.Signals
}

// Score extracts the visible text of rawHTML and applies DefaultHeuristics
func Score(rawHTML string) Assessment {
	return Fold(NewPage(rawHTML), DefaultHeuristics...)
}

// Fold applies heuristics to page in order and accumulates their checks
func Fold(page Page, heuristics ...Heuristic) Assessment {
	a := Assessment{Signals: make(types.Signals, len(heuristics))}

	for _, h := range heuristics {
		a = a.With(h(page))
	}

	return a
}

// With returns a copy of the assessment with the check added
func (a Assessment) With(c Check) Assessment {
	signals := make(types.Signals, len(a.Signals)+1)
	maps.Copy(signals, a.Signals)

	if c.Signal != "" {
		signals[c.Signal] = c.Value
	}

	return Assessment{
		RiskPoints: a.RiskPoints + c.Points,
		Signals:    signals,
	}
}

// QualityScore converts the accumulated risk into a 0-100 score
func (a Assessment) QualityScore() int {
	return max(0, maxScore-a.RiskPoints)
}

// WordCount reports the number of words on the page; it adds no risk
func WordCount(p Page) Check {
	return Check{Signal: types.SignalWordCount, Value: p.Words}
}

// ThinContent flags pages with fewer than 200 words
func ThinContent(p Page) Check {
	if p.Words < thinContentWords {
		return Check{Points: thinContentPoints, Signal: types.SignalThinContent, Value: true}
	}

	return Check{Signal: types.SignalThinContent, Value: false}
}

// LoremIpsum flags pages that still contain placeholder text
func LoremIpsum(p Page) Check {
	for _, marker := range loremIpsumMarkers {
		if strings.Contains(p.Text, marker) {
			return Check{Points: loremIpsumPoints, Signal: types.SignalLoremIpsum, Value: true}
		}
	}

	return Check{Signal: types.SignalLoremIpsum, Value: false}
}

// NoHTTPS flags a final URL that was not served over https
func NoHTTPS(finalURL string) Check {
	if !strings.HasPrefix(strings.ToLower(finalURL), "https://") {
		return Check{Points: noHTTPSPoints, Signal: types.SignalNoHTTPS, Value: true}
	}

	return Check{Signal: types.SignalNoHTTPS, Value: false}
}
