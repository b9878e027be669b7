// Package classify runs the site classification pipeline: allowlist check,
// redirect-following fetch, content scoring, and label mapping.
package classify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/content"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/domain"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/fetch"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/trust"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

const (
	// trustedScore is the fixed score given to allowlisted sites
	trustedScore = 90
	// lowQualityBelow is the score under which a site is LOW_QUALITY
	lowQualityBelow = 50
	// suspiciousBelow is the score under which a site is SUSPICIOUS
	suspiciousBelow = 60
	// goodSafeAbove is the score a site must exceed to be GOOD_SAFE
	goodSafeAbove = 70

	// ReasonTrustedInput is reported when the input host is allowlisted
	ReasonTrustedInput = "Trusted allowlist matched"
	// ReasonTrustedRedirect is reported when redirects land on an allowlisted host
	ReasonTrustedRedirect = "Final redirected domain is trusted"
	// reasonScoredFormat is the reason reported for scored pages
	reasonScoredFormat = "Risk points: %d. Evaluated final URL + root domain context."
)

// Analyzer classifies a single raw input
type Analyzer interface {
	// Analyze never fails; problems are reported as ERROR results
	Analyze(ctx context.Context, input string) *types.Result
}

// PageFetcher retrieves the final page for a raw input
type PageFetcher interface {
	Fetch(ctx context.Context, input string) (*fetch.Result, error)
}

// Pipeline classifies inputs against a trust registry and fetched page content
type Pipeline struct {
	registry   *trust.Registry
	fetcher    PageFetcher
	heuristics []content.Heuristic
}

// Option configures the Pipeline
type Option func(*Pipeline)

// WithHeuristics replaces the page heuristics used for scoring
func WithHeuristics(heuristics ...content.Heuristic) Option {
	return func(p *Pipeline) {
		if len(heuristics) > 0 {
			p.heuristics = heuristics
		}
	}
}

// New creates a pipeline. A nil registry trusts nothing; a nil fetcher uses
// fetch.New with default settings.
func New(registry *trust.Registry, fetcher PageFetcher, opts ...Option) *Pipeline {
	if registry == nil {
		registry = trust.New()
	}

	if fetcher == nil {
		fetcher = fetch.New()
	}

	p := &Pipeline{
		registry:   registry,
		fetcher:    fetcher,
		heuristics: content.DefaultHeuristics,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Analyze classifies the input and logs the outcome
func (p *Pipeline) Analyze(ctx context.Context, input string) *types.Result {
	start := time.Now()

	res := p.analyze(ctx, input)

	evt := log.Info()
	if !res.OK() {
		evt = log.Warn().Str("error", res.Error)
	}

	logResult(evt, res).Dur("elapsed", time.Since(start)).Msg("classification complete")

	return res
}

// analyze runs the classification steps; the first terminal step wins
func (p *Pipeline) analyze(ctx context.Context, input string) *types.Result {
	in := domain.Parse(input)

	if p.registry.IsTrusted(in.Host) {
		return &types.Result{
			Status:          types.StatusOK,
			Input:           input,
			Host:            in.Host,
			BaseDomain:      in.RootDomain,
			FinalURL:        fmt.Sprintf("https://%s/", in.Host),
			FinalHost:       in.Host,
			FinalBaseDomain: in.RootDomain,
			ForcedGood:      true,
			Score:           trustedScore,
			Label:           types.LabelGoodSafe,
			Reason:          ReasonTrustedInput,
		}
	}

	page, err := p.fetcher.Fetch(ctx, input)
	if err != nil {
		return &types.Result{
			Status:     types.StatusError,
			Input:      input,
			Host:       in.Host,
			BaseDomain: in.RootDomain,
			Error:      err.Error(),
		}
	}

	final := domain.Parse(page.FinalURL)

	res := &types.Result{
		Status:          types.StatusOK,
		Input:           input,
		Host:            in.Host,
		BaseDomain:      in.RootDomain,
		FinalURL:        page.FinalURL,
		FinalHost:       final.Host,
		FinalBaseDomain: final.RootDomain,
	}

	if p.registry.IsTrusted(final.Host) {
		res.ForcedGood = true
		res.Score = trustedScore
		res.Label = types.LabelGoodSafe
		res.Reason = ReasonTrustedRedirect

		return res
	}

	assessment := content.Fold(content.NewPage(page.HTML), p.heuristics...).
		With(content.NoHTTPS(page.FinalURL))

	res.Score = assessment.QualityScore()
	res.Label = LabelFromScore(res.Score)
	res.Signals = assessment.Signals
	res.Reason = fmt.Sprintf(reasonScoredFormat, assessment.RiskPoints)

	return res
}

// LabelFromScore maps a 0-100 score to a label. Scores of 60 through 70
// fall through to SUSPICIOUS; only scores above 70 are GOOD_SAFE.
func LabelFromScore(score int) types.Label {
	if score < lowQualityBelow {
		return types.LabelLowQuality
	}

	if score < suspiciousBelow {
		return types.LabelSuspicious
	}

	if score > goodSafeAbove {
		return types.LabelGoodSafe
	}

	return types.LabelSuspicious
}

// logResult attaches the result summary fields to a log event
func logResult(evt *zerolog.Event, res *types.Result) *zerolog.Event {
	return evt.
		Str("input", res.Input).
		Str("host", res.Host).
		Str("final_host", res.FinalHost).
		Str("status", string(res.Status)).
		Str("label", string(res.Label)).
		Int("score", res.Score).
		Bool("forced_good", res.ForcedGood)
}
