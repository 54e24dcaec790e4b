// Package check verifies stream URL reachability and elects a working
// candidate per channel group.
package check

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// userAgent mirrors a desktop browser; some providers reject unknown clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// backoffDelay is the fixed pause between failed probe attempts. It is
// skipped after the final attempt.
const backoffDelay = 500 * time.Millisecond

// FailureKind classifies why a probe gave up.
type FailureKind int

const (
	// FailureNone marks a successful outcome.
	FailureNone FailureKind = iota
	// FailureTimeout means the probe exceeded its per-attempt timeout.
	FailureTimeout
	// FailureConnection means the endpoint could not be reached.
	FailureConnection
	// FailureHTTPStatus means the endpoint answered with a non-success status.
	FailureHTTPStatus
	// FailureTransport covers any other transport-level error.
	FailureTransport
)

// String returns a human-readable name for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTimeout:
		return "timeout"
	case FailureConnection:
		return "connection error"
	case FailureHTTPStatus:
		return "http status"
	case FailureTransport:
		return "transport error"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of probing one URL. Every Verify call
// terminates with exactly one outcome.
type Outcome struct {
	OK         bool
	Redirected bool
	StatusCode int
	Failure    FailureKind
	Attempts   int
}

// Verifier probes stream URLs with HEAD requests over a shared HTTP client.
type Verifier struct {
	client  *http.Client
	retries int
	backoff time.Duration
	logger  *logrus.Logger
}

// NewVerifier creates a verifier performing up to retries probes per URL,
// each bounded by timeout.
func NewVerifier(timeout time.Duration, retries int, logger *logrus.Logger) *Verifier {
	return &Verifier{
		client: &http.Client{
			Timeout: timeout,
		},
		retries: retries,
		backoff: backoffDelay,
		logger:  logger,
	}
}

// Verify probes rawURL, retrying failed attempts with a fixed backoff. A
// 2xx status succeeds; a 2xx reached through redirects, or a terminal 3xx,
// succeeds as redirected. Anything else is retried and the last error is
// classified into the returned outcome.
func (v *Verifier) Verify(rawURL string) Outcome {
	var lastKind FailureKind
	var lastStatus int

	for attempt := 1; attempt <= v.retries; attempt++ {
		status, redirected, err := v.probe(rawURL)

		if err == nil && status >= 200 && status < 300 {
			return Outcome{OK: true, Redirected: redirected, StatusCode: status, Attempts: attempt}
		}
		if err == nil && status >= 300 && status < 400 {
			return Outcome{OK: true, Redirected: true, StatusCode: status, Attempts: attempt}
		}

		if err != nil {
			lastKind = classify(err)
			lastStatus = 0
		} else {
			lastKind = FailureHTTPStatus
			lastStatus = status
		}

		v.logger.WithFields(logrus.Fields{
			"url":     rawURL,
			"attempt": attempt,
			"reason":  lastKind.String(),
			"status":  lastStatus,
		}).Debug("Probe attempt failed")

		if attempt < v.retries {
			time.Sleep(v.backoff)
		}
	}

	return Outcome{Failure: lastKind, StatusCode: lastStatus, Attempts: v.retries}
}

// probe issues a single HEAD request. Redirects are followed; redirected
// reports whether the final response came from a different URL.
func (v *Verifier) probe(rawURL string) (status int, redirected bool, err error) {
	req, err := http.NewRequest(http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, false, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return resp.StatusCode, resp.Request.URL.String() != rawURL, nil
}

func classify(err error) FailureKind {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return FailureTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FailureConnection
	}

	return FailureTransport
}
