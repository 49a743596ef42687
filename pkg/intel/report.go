package intel

import (
	"fmt"
	"strings"
	"time"
)

// OutcomeStatus classifies how one query ended. EMPTY (the provider
// answered but found nothing) is deliberately distinct from FAILED
// (the call itself errored) so summary logic can treat "nothing
// found" differently from "could not ask".
type OutcomeStatus string

const (
	OutcomeOK     OutcomeStatus = "OK"
	OutcomeEmpty  OutcomeStatus = "EMPTY"
	OutcomeFailed OutcomeStatus = "FAILED"
)

// Outcome is the per-key result of one research query.
type Outcome struct {
	Key     string        `json:"key"`
	Status  OutcomeStatus `json:"status"`
	Answer  string        `json:"answer,omitempty"`
	Sources []string      `json:"sources,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Data quality grades, by share of queries whose call succeeded.
const (
	QualitySufficient = "SUFFICIENT"
	QualityPartial    = "PARTIAL"
	QualityMinimal    = "MINIMAL"
)

// Report is the aggregated, partially-failure-tolerant result of a
// research run. Outcomes is ordered by the originating plan's key
// order and contains every planned key exactly once, whatever each
// query's fate; serializing it as an array keeps that order across a
// JSON round trip.
type Report struct {
	Subject     string    `json:"subject"`
	AdType      AdType    `json:"ad_type"`
	Category    string    `json:"category"`
	GeneratedAt time.Time `json:"generated_at"`
	DataQuality string    `json:"data_quality"`

	Outcomes []Outcome `json:"outcomes"`

	// CategoryInsights holds fallback category research, present only
	// when the main plan came back below SUFFICIENT.
	CategoryInsights []Outcome `json:"category_insights,omitempty"`

	// Summary is derived from OK outcomes only and omitted entirely
	// when nothing usable came back.
	Summary *Summary `json:"summary,omitempty"`
}

// Keys returns the report's key order.
func (r *Report) Keys() []string {
	keys := make([]string, len(r.Outcomes))
	for i, o := range r.Outcomes {
		keys[i] = o.Key
	}
	return keys
}

// Outcome looks a single outcome up by key.
func (r *Report) Outcome(key string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Key == key {
			return o, true
		}
	}
	return Outcome{}, false
}

// Summary is the synthesized section of a report. Every field is
// derived only from OK outcomes; sections whose inputs were all
// non-OK are left empty and drop out of the JSON form.
type Summary struct {
	Competitors []CompetitorProfile `json:"competitor_analysis,omitempty"`
	MarketGaps  []string            `json:"market_gaps,omitempty"`
	Pricing     *PricingComparison  `json:"pricing_comparison,omitempty"`
	Strategy    *Strategy           `json:"winning_strategy,omitempty"`
}

type CompetitorProfile struct {
	Name          string   `json:"name"`
	Overview      string   `json:"overview,omitempty"`
	Sources       []string `json:"sources,omitempty"`
	Weaknesses    []string `json:"weaknesses,omitempty"`
	HowWeBeatThem []string `json:"how_we_beat_them,omitempty"`
}

type PricingComparison struct {
	OurPrice       string   `json:"our_price"`
	MarketAnalysis string   `json:"market_analysis"`
	Sources        []string `json:"sources,omitempty"`
}

type Strategy struct {
	ExploitWeaknesses     []string `json:"exploit_competitor_weaknesses,omitempty"`
	FillMarketGaps        []string `json:"fill_market_gaps,omitempty"`
	CompetitiveAdvantages []string `json:"competitive_advantages,omitempty"`
}

// AssessQuality grades a batch of outcomes by the share of queries
// whose provider call succeeded (OK or EMPTY). FAILED calls drag the
// grade down; an explicit "nothing found" does not.
func AssessQuality(outcomes []Outcome) string {
	if len(outcomes) == 0 {
		return QualityMinimal
	}
	answered := 0
	for _, o := range outcomes {
		if o.Status != OutcomeFailed {
			answered++
		}
	}
	rate := float64(answered) / float64(len(outcomes))
	switch {
	case rate >= 0.7:
		return QualitySufficient
	case rate >= 0.3:
		return QualityPartial
	default:
		return QualityMinimal
	}
}

// NewReport assembles a report from a subject and its outcomes,
// deriving the quality grade and the summary.
func NewReport(s Subject, outcomes, categoryInsights []Outcome) *Report {
	r := &Report{
		Subject:          s.Product,
		AdType:           s.AdType(),
		Category:         s.Category(),
		GeneratedAt:      time.Now().UTC(),
		DataQuality:      AssessQuality(outcomes),
		Outcomes:         outcomes,
		CategoryInsights: categoryInsights,
	}
	if r.AdType == AdTypeProduct {
		r.Summary = deriveSummary(s, r)
	}
	return r
}

func deriveSummary(s Subject, r *Report) *Summary {
	sum := &Summary{}

	competitors := s.Competitors
	if len(competitors) > maxCompetitors {
		competitors = competitors[:maxCompetitors]
	}
	for i, name := range competitors {
		n := i + 1
		profile := CompetitorProfile{Name: name}
		filled := false

		if o, ok := okOutcome(r, fmt.Sprintf("competitor_%d_overview", n)); ok {
			profile.Overview = o.Answer
			profile.Sources = capStrings(o.Sources, 3)
			filled = true
		}
		if o, ok := okOutcome(r, fmt.Sprintf("competitor_%d_weaknesses", n)); ok {
			profile.Weaknesses = bulletLines(o.Answer, 5)
			filled = true
		}
		if o, ok := okOutcome(r, fmt.Sprintf("competitor_%d_vs_us", n)); ok {
			profile.HowWeBeatThem = bulletLines(o.Answer, 3)
			filled = true
		}
		if filled {
			sum.Competitors = append(sum.Competitors, profile)
		}
	}

	if o, ok := okOutcome(r, "market_gaps"); ok {
		sum.MarketGaps = bulletLines(o.Answer, 5)
	}

	for _, key := range []string{"pricing_comparison", "pricing_landscape"} {
		if o, ok := okOutcome(r, key); ok {
			price := s.Price
			if price == "" {
				price = "Not specified"
			}
			sum.Pricing = &PricingComparison{
				OurPrice:       price,
				MarketAnalysis: o.Answer,
				Sources:        capStrings(o.Sources, 3),
			}
			break
		}
	}

	var allWeaknesses []string
	for _, c := range sum.Competitors {
		allWeaknesses = append(allWeaknesses, c.Weaknesses...)
	}
	if len(allWeaknesses) > 0 || len(sum.MarketGaps) > 0 {
		sum.Strategy = &Strategy{
			ExploitWeaknesses: capStrings(allWeaknesses, 5),
			FillMarketGaps:    capStrings(sum.MarketGaps, 3),
		}
		if len(allWeaknesses) > 0 {
			sum.Strategy.CompetitiveAdvantages = append(sum.Strategy.CompetitiveAdvantages,
				"Address "+allWeaknesses[0])
		}
		if len(sum.MarketGaps) > 0 {
			sum.Strategy.CompetitiveAdvantages = append(sum.Strategy.CompetitiveAdvantages,
				"Fill gap: "+sum.MarketGaps[0])
		}
	}

	if len(sum.Competitors) == 0 && len(sum.MarketGaps) == 0 && sum.Pricing == nil && sum.Strategy == nil {
		return nil
	}
	return sum
}

// okOutcome looks up a key and returns it only when its status is OK.
func okOutcome(r *Report, key string) (Outcome, bool) {
	o, ok := r.Outcome(key)
	if !ok || o.Status != OutcomeOK {
		return Outcome{}, false
	}
	return o, true
}

// bulletLines splits a prose answer into trimmed bullet lines,
// dropping fragments too short to be informative.
func bulletLines(answer string, limit int) []string {
	var lines []string
	for _, line := range strings.Split(answer, "\n") {
		line = strings.Trim(line, "-•* \t")
		if len(line) > 10 {
			lines = append(lines, line)
		}
		if len(lines) == limit {
			break
		}
	}
	return lines
}

func capStrings(s []string, limit int) []string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
