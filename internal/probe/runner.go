package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	consts "github.com/minhnv203/toolvet/internal/shared/constants"
)

// ResultFunc observes each probe completion as it happens, before the final
// sorted report. Called from worker goroutines when Concurrency > 1.
type ResultFunc func(name string, status VersionStatus)

// Runner executes probes and fills a result store. The default configuration
// is fully sequential in declaration order; raising Concurrency trades the
// deterministic streamed output order for speed (the final report is sorted
// either way). Every per-probe error, including a panic inside a strategy,
// is contained at the probe boundary and converted to a status.
type Runner struct {
	Concurrency int
	RateLimit   int
	Timeout     time.Duration
	// Threshold is the normalizer's verbose-output cutoff.
	Threshold int
	Logger    *zap.SugaredLogger
	OnResult  ResultFunc
}

// Run executes every probe and records exactly one entry per distinct
// display name into store. It never returns early: an absent tool, a failed
// invocation or a panicking strategy each produce a stored status for that
// probe and the run continues.
func (r *Runner) Run(ctx context.Context, probes []Probe, store *Store) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = consts.DefaultConcurrency
	}
	rateLimit := r.RateLimit
	if rateLimit <= 0 {
		rateLimit = consts.DefaultRateLimit
	}

	if concurrency == 1 {
		for _, p := range probes {
			r.complete(ctx, p, store)
		}
		return
	}

	limiter := rate.NewLimiter(rate.Limit(rateLimit), rateLimit)
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for _, p := range probes {
		wg.Add(1)
		go func(p Probe) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			_ = limiter.Wait(ctx)
			r.complete(ctx, p, store)
		}(p)
	}
	wg.Wait()
}

func (r *Runner) complete(ctx context.Context, p Probe, store *Store) {
	key, status := r.runProbe(ctx, p)
	store.Put(key, status)
	if r.OnResult != nil {
		r.OnResult(key, status)
	}
}

// runProbe resolves one probe through its strategy and the normalization and
// extraction pipeline. The deferred recover keeps a defective strategy from
// escaping the probe boundary; the run carries on with a warning entry.
func (r *Runner) runProbe(ctx context.Context, p Probe) (key string, status VersionStatus) {
	key = p.Name
	defer func() {
		if rec := recover(); rec != nil {
			if r.Logger != nil {
				r.Logger.Errorf("probe %s panicked: %v", p.Name, rec)
			}
			key = p.Name
			status = Warning(fmt.Sprintf("probe error: %v", rec))
		}
	}()

	strategy := p.Strategy
	if strategy == nil {
		strategy = ExecStrategy{Timeout: r.Timeout}
	}

	// Feature-style strategies produce a final status directly and never
	// pass through normalization.
	if sr, ok := strategy.(StatusResolver); ok {
		return key, sr.ResolveStatus(ctx, p)
	}

	var out Outcome
	if kr, ok := strategy.(KeyedResolver); ok {
		key, out = kr.ResolveKeyed(ctx, p)
	} else {
		out = strategy.Resolve(ctx, p)
	}

	if !out.OK() {
		if r.Logger != nil {
			r.Logger.Debugf("probe %s: %v", p.Name, out.Err)
		}
		return key, Missing()
	}
	return key, r.finalize(p, out.Raw)
}

// finalize runs the raw text through the normalizer and the optional
// extraction pattern. Extraction is tried against the normalized candidate
// first and, when that line lost the interesting part (a verbose first line
// collapsed by the threshold rescan), against the full raw text. A pattern
// that matches nowhere passes the normalized text through untouched.
func (r *Runner) finalize(p Probe, raw string) VersionStatus {
	normalized := Normalizer{Threshold: r.Threshold}.Normalize(raw)
	if text, ok := extractGroups(normalized, p.Pattern, p.Format); ok {
		return Found(text)
	}
	if text, ok := extractGroups(raw, p.Pattern, p.Format); ok {
		return Found(text)
	}
	return Found(normalized)
}
