package intel

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Answer is what the research backend returns for one query.
type Answer struct {
	Text    string
	Sources []string
}

// AnswerFunc asks the research backend one question. It is supplied by
// a thin client wrapper; the aggregator never talks to the network
// itself.
type AnswerFunc func(ctx context.Context, q Query) (Answer, error)

// Aggregator fans a query plan out to independent AnswerFunc calls and
// collects per-key outcomes. One failing query never blanks out the
// rest of the report; its key is marked FAILED and the batch carries
// on.
type Aggregator struct {
	// Concurrency bounds in-flight queries. Fan-out is a performance
	// optimization only; 1 is correct too.
	Concurrency int
	Logger      *slog.Logger
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		Concurrency: 3,
		Logger:      slog.Default(),
	}
}

// Run evaluates every query and returns one outcome per key, in plan
// order. Completion order between queries is unspecified; each worker
// writes only its own slot, so the slice needs no locking. Cancelling
// ctx skips queries that have not started yet and leaves finished
// outcomes untouched; skipped keys still appear, marked FAILED.
func (a *Aggregator) Run(ctx context.Context, queries []Query, answer AnswerFunc) []Outcome {
	outcomes := make([]Outcome, len(queries))

	concurrency := a.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	semaphore := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q Query) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			outcomes[i] = a.evaluate(ctx, q, answer)
		}(i, q)
	}
	wg.Wait()

	return outcomes
}

func (a *Aggregator) evaluate(ctx context.Context, q Query, answer AnswerFunc) Outcome {
	if err := ctx.Err(); err != nil {
		a.Logger.Warn("query skipped", "key", q.Key, "error", err)
		return Outcome{Key: q.Key, Status: OutcomeFailed, Error: "cancelled before start: " + err.Error()}
	}

	ans, err := answer(ctx, q)
	if err != nil {
		a.Logger.Warn("query failed", "key", q.Key, "error", err)
		return Outcome{Key: q.Key, Status: OutcomeFailed, Error: err.Error()}
	}

	if strings.TrimSpace(ans.Text) == "" {
		a.Logger.Info("query returned no data", "key", q.Key)
		return Outcome{Key: q.Key, Status: OutcomeEmpty}
	}

	a.Logger.Info("query answered", "key", q.Key, "sources", len(ans.Sources))
	return Outcome{Key: q.Key, Status: OutcomeOK, Answer: ans.Text, Sources: ans.Sources}
}

// Research builds the plan for a subject, runs it, falls back to
// category research when data quality came back below SUFFICIENT, and
// assembles the report.
func (a *Aggregator) Research(ctx context.Context, s Subject, answer AnswerFunc) *Report {
	plan := BuildPlan(s)
	a.Logger.Info("running research plan",
		"subject", s.Product,
		"ad_type", s.AdType(),
		"queries", len(plan))

	outcomes := a.Run(ctx, plan, answer)

	var categoryInsights []Outcome
	if AssessQuality(outcomes) != QualitySufficient {
		a.Logger.Warn("limited data, falling back to category research", "category", s.Category())
		categoryInsights = a.Run(ctx, CategoryPlan(s.Category()), answer)
	}

	return NewReport(s, outcomes, categoryInsights)
}
