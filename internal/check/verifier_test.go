package check

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testVerifier(timeout time.Duration, retries int) *Verifier {
	v := NewVerifier(timeout, retries, testLogger())
	v.backoff = time.Millisecond
	return v
}

func TestVerifySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("Expected HEAD request, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	outcome := testVerifier(time.Second, 3).Verify(server.URL)

	if !outcome.OK {
		t.Fatalf("Expected success, got %+v", outcome)
	}
	if outcome.Redirected {
		t.Error("Expected no redirect")
	}
	if outcome.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", outcome.Attempts)
	}
	if outcome.Failure != FailureNone {
		t.Errorf("Expected FailureNone, got %v", outcome.Failure)
	}
}

func TestVerifyRedirected(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer server.Close()

	outcome := testVerifier(time.Second, 3).Verify(server.URL)

	if !outcome.OK {
		t.Fatalf("Expected success, got %+v", outcome)
	}
	if !outcome.Redirected {
		t.Error("Expected redirected outcome")
	}
}

func TestVerifyHTTPFailureRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	outcome := testVerifier(time.Second, 3).Verify(server.URL)

	if outcome.OK {
		t.Fatalf("Expected failure, got %+v", outcome)
	}
	if outcome.Failure != FailureHTTPStatus {
		t.Errorf("Expected FailureHTTPStatus, got %v", outcome.Failure)
	}
	if outcome.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", outcome.StatusCode)
	}
	if outcome.Attempts != 3 {
		t.Errorf("Expected 3 attempts recorded, got %d", outcome.Attempts)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 probes on the wire, got %d", attempts)
	}
}

func TestVerifyRetrySucceedsMidway(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	outcome := testVerifier(time.Second, 3).Verify(server.URL)

	if !outcome.OK {
		t.Fatalf("Expected success on retry, got %+v", outcome)
	}
	if outcome.Attempts != 2 {
		t.Errorf("Expected success on attempt 2, got %d", outcome.Attempts)
	}
}

func TestVerifyTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	outcome := testVerifier(50*time.Millisecond, 2).Verify(server.URL)

	if outcome.OK {
		t.Fatalf("Expected failure, got %+v", outcome)
	}
	if outcome.Failure != FailureTimeout {
		t.Errorf("Expected FailureTimeout, got %v", outcome.Failure)
	}
	if outcome.Attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", outcome.Attempts)
	}
}

func TestVerifyConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL
	server.Close()

	outcome := testVerifier(time.Second, 2).Verify(url)

	if outcome.OK {
		t.Fatalf("Expected failure, got %+v", outcome)
	}
	if outcome.Failure != FailureConnection {
		t.Errorf("Expected FailureConnection, got %v", outcome.Failure)
	}
}

func TestVerifyInvalidURL(t *testing.T) {
	outcome := testVerifier(time.Second, 2).Verify("http://\x7f invalid")

	if outcome.OK {
		t.Fatalf("Expected failure, got %+v", outcome)
	}
	if outcome.Attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", outcome.Attempts)
	}
}
