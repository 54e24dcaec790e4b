package check

import (
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/savid/playlist-checker/internal/group"
	"github.com/sirupsen/logrus"
)

// progressEvery controls how often completion progress is logged.
const progressEvery = 5

// Stats aggregates scheduler counters for the run summary.
type Stats struct {
	Groups  int
	Working int
	Failed  int
}

// Scheduler fans group resolution out over a bounded worker pool and
// collects results behind a join barrier.
type Scheduler struct {
	resolver *Resolver
	workers  int
	quiet    bool
	logger   *logrus.Logger
}

// NewScheduler creates a scheduler running at most workers resolutions
// concurrently.
func NewScheduler(resolver *Resolver, workers int, quiet bool, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		resolver: resolver,
		workers:  workers,
		quiet:    quiet,
		logger:   logger,
	}
}

// Run dispatches one resolution task per group, waits for every task to
// finish, and returns the surviving results sorted by group order key. The
// returned order never depends on task completion order, and no result is
// handed off before all tasks have joined.
func (s *Scheduler) Run(groups []*group.Group) ([]*Result, Stats, error) {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		results []*Result
		wg      sync.WaitGroup
	)
	completed := xsync.NewCounter()
	failed := xsync.NewCounter()
	total := len(groups)

	for _, g := range groups {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			result := s.resolver.Resolve(g)

			completed.Inc()
			if result == nil {
				failed.Inc()
			} else {
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}

			if !s.quiet {
				if done := completed.Value(); done%progressEvery == 0 {
					s.logger.WithFields(logrus.Fields{
						"completed": done,
						"total":     total,
						"percent":   fmt.Sprintf("%.1f", float64(done)/float64(total)*100),
					}).Info("Checked channel groups")
				}
			}
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, Stats{}, fmt.Errorf("failed to submit group task: %w", submitErr)
		}
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].OrderKey < results[j].OrderKey
	})

	return results, Stats{
		Groups:  total,
		Working: len(results),
		Failed:  int(failed.Value()),
	}, nil
}
