package ai

import (
	stderrors "errors"
	"net/http"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"resumecanvas/internal/canvas"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network timeout", timeoutErr{}, true},
		{"rate limited", &googleapi.Error{Code: http.StatusTooManyRequests}, true},
		{"server error", &googleapi.Error{Code: http.StatusInternalServerError}, true},
		{"bad gateway", &googleapi.Error{Code: http.StatusBadGateway}, true},
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, false},
		{"bad request", &googleapi.Error{Code: http.StatusBadRequest}, false},
		{"plain error", stderrors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	user := canvas.UserData{
		Title: "Staff Engineer",
		Experience: []canvas.Experience{
			{Title: "Senior Engineer", Company: "Initech", Years: "2019-2023"},
			{Title: "Engineer"},
		},
	}

	prompt := buildPrompt(user, "We need a Go developer.")

	for _, want := range []string{
		"Staff Engineer",
		"Senior Engineer at Initech (2019-2023)",
		"Role: Engineer\n",
		"We need a Go developer.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestNilCircuitBreakerExecutesDirectly(t *testing.T) {
	var cb *SummaryCircuitBreaker

	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !called {
		t.Error("nil breaker did not execute function")
	}
	if !cb.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}
	if stats := cb.GetStats(); stats["enabled"] != false {
		t.Errorf("stats = %v, want enabled=false", stats)
	}
}
