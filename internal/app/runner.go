package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"quiz-solver-service/internal/domain"
)

// VisitedSet remembers quiz URLs already attempted, so a submission endpoint
// that hands back a URL cycle cannot recurse forever. Visit reports true on
// the first sighting of a URL.
type VisitedSet interface {
	Visit(ctx context.Context, url string) (bool, error)
}

const (
	defaultMaxConcurrent = 4
	defaultMaxChainDepth = 25
)

type runPipeline interface {
	Run(ctx context.Context, req domain.QuizRequest) (domain.QuizRequest, bool)
}

// Runner schedules quiz runs as independent fire-and-forget goroutines.
// Each run owns a real browser, so a weighted semaphore caps how many execute
// at once. Chained hops re-enter through schedule with an incremented depth.
type Runner struct {
	pipeline runPipeline
	visited  VisitedSet
	sem      *semaphore.Weighted
	maxDepth int
	log      zerolog.Logger
	wg       sync.WaitGroup
}

func NewRunner(pipeline runPipeline, visited VisitedSet, maxConcurrent int64, maxDepth int, log zerolog.Logger) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxChainDepth
	}
	return &Runner{
		pipeline: pipeline,
		visited:  visited,
		sem:      semaphore.NewWeighted(maxConcurrent),
		maxDepth: maxDepth,
		log:      log,
	}
}

// Schedule queues a quiz run and returns immediately. The spawner gets no
// result channel back; outcomes live in logs and run events only.
func (r *Runner) Schedule(req domain.QuizRequest) {
	r.schedule(req, 0)
}

func (r *Runner) schedule(req domain.QuizRequest, depth int) {
	if depth > r.maxDepth {
		r.log.Warn().Str("quiz_url", req.URL).Int("depth", depth).Msg("quiz chain depth exceeded, dropping")
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error().Interface("panic", rec).Str("quiz_url", req.URL).Msg("unexpected failure in quiz run")
			}
		}()

		ctx := context.Background()
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer r.sem.Release(1)

		// The guard exists to break chain cycles; inbound triggers are
		// always honored, so a repeat URL only drops chained hops.
		if r.visited != nil {
			first, err := r.visited.Visit(ctx, req.URL)
			if err != nil {
				r.log.Warn().Err(err).Str("quiz_url", req.URL).Msg("visited set unavailable, running without cycle guard")
			} else if !first && depth > 0 {
				r.log.Warn().Str("quiz_url", req.URL).Msg("quiz url already attempted, dropping to break the cycle")
				return
			}
		}

		if next, ok := r.pipeline.Run(ctx, req); ok {
			r.schedule(next, depth+1)
		}
	}()
}

// Wait blocks until all scheduled runs have finished. Used by tests and
// shutdown paths; normal operation never waits.
func (r *Runner) Wait() {
	r.wg.Wait()
}
