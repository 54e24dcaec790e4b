package check

import (
	"github.com/savid/playlist-checker/internal/group"
	"github.com/sirupsen/logrus"
)

// Result is the winning entry elected for one channel group.
type Result struct {
	Metadata       []string
	URL            string
	ID             string
	OrderKey       int
	WinnerIndex    int
	CandidateCount int
	SourceFile     string
}

// Resolver elects the first reachable candidate of a channel group.
type Resolver struct {
	verifier *Verifier
	logger   *logrus.Logger
}

// NewResolver creates a resolver driving the given verifier.
func NewResolver(verifier *Verifier, logger *logrus.Logger) *Resolver {
	return &Resolver{
		verifier: verifier,
		logger:   logger,
	}
}

// Resolve tries the group's candidates strictly in encounter order and
// returns a result for the first reachable one, carrying the group's
// representative metadata. It returns nil when every candidate fails;
// exhaustion is not an error.
func (r *Resolver) Resolve(g *group.Group) *Result {
	for i, candidate := range g.Candidates {
		outcome := r.verifier.Verify(candidate.URL)
		if !outcome.OK {
			r.logger.WithFields(logrus.Fields{
				"channel":  g.ID,
				"url":      candidate.URL,
				"reason":   outcome.Failure.String(),
				"status":   outcome.StatusCode,
				"attempts": outcome.Attempts,
			}).Debug("Candidate failed verification")
			continue
		}

		r.logger.WithFields(logrus.Fields{
			"channel":    g.ID,
			"url":        candidate.URL,
			"redirected": outcome.Redirected,
			"candidate":  i + 1,
			"of":         len(g.Candidates),
		}).Debug("Candidate verified")

		return &Result{
			Metadata:       g.Metadata,
			URL:            candidate.URL,
			ID:             g.ID,
			OrderKey:       g.OrderKey,
			WinnerIndex:    i,
			CandidateCount: len(g.Candidates),
			SourceFile:     candidate.SourceFile,
		}
	}

	return nil
}
