// Package ai provides the optional generated-summary collaborator used by the
// fill engine. When it is not configured, fill falls back to its built-in
// summary and nothing here runs.
package ai

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"resumecanvas/internal/canvas"
	"resumecanvas/internal/config"
	"resumecanvas/internal/errors"
)

const systemPrompt = "You write professional resume summaries. " +
	"Respond with a single paragraph of two to three sentences, plain text, no markdown."

// GeminiProvider generates resume summaries through Google Gemini.
type GeminiProvider struct {
	client         *genai.Client
	config         *config.SummaryConfig
	circuitBreaker *SummaryCircuitBreaker
	logger         *errors.Logger
}

// NewGeminiProvider creates a Gemini-backed summary provider.
func NewGeminiProvider(cfg *config.SummaryConfig, logger *errors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewNetworkError(errors.ErrCodeSummaryFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		circuitBreaker: NewSummaryCircuitBreaker(cfg, logger),
		logger:         logger,
	}, nil
}

// GenerateSummary produces a short professional summary from user data,
// optionally steered by a job description.
func (g *GeminiProvider) GenerateSummary(ctx context.Context, user canvas.UserData, jobDescription string) (string, error) {
	tracer := otel.Tracer("resumecanvas.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.generate_summary")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Int("input.experience_count", len(user.Experience)),
		attribute.Bool("input.has_job_description", jobDescription != ""),
	)

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	if g.config.Temperature > 0 {
		temp := g.config.Temperature
		genCfg.Temperature = &temp
	}

	userPrompt := buildPrompt(user, jobDescription)

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genCfg)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", errors.NewNetworkError(errors.ErrCodeSummaryFailed,
			"Failed to generate summary", err)
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		span.SetAttributes(attribute.Bool("success", false))
		return "", errors.NewNetworkError(errors.ErrCodeSummaryFailed,
			"Summary generation returned empty content", nil)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.summary_length", len(summary)),
	)
	return summary, nil
}

func buildPrompt(user canvas.UserData, jobDescription string) string {
	var b strings.Builder
	b.WriteString("Write a professional summary for this candidate.\n")
	if user.Title != "" {
		fmt.Fprintf(&b, "Current title: %s\n", user.Title)
	}
	for _, exp := range user.Experience {
		fmt.Fprintf(&b, "Role: %s", exp.Title)
		if exp.Company != "" {
			fmt.Fprintf(&b, " at %s", exp.Company)
		}
		if exp.Years != "" {
			fmt.Fprintf(&b, " (%s)", exp.Years)
		}
		b.WriteString("\n")
	}
	if jobDescription != "" {
		fmt.Fprintf(&b, "Target job description:\n%s\n", jobDescription)
	}
	return b.String()
}

// executeWithRetry retries transient failures with exponential backoff and
// jitter.
func (g *GeminiProvider) executeWithRetry(ctx context.Context, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying summary generation",
				"attempt", attempt,
				"max_retries", g.config.MaxRetries,
				"error", lastErr.Error())

			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			break
		}
	}

	return nil, fmt.Errorf("summary generation failed after %d retries: %w", g.config.MaxRetries, lastErr)
}

// isRetryableError reports whether an error is transient. Auth and invalid
// input errors are not retried.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// GetCircuitBreakerStats returns breaker statistics for the stats endpoint.
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	return map[string]any{
		"summary_operations": g.circuitBreaker.GetStats(),
		"overall_healthy":    g.circuitBreaker.IsHealthy(),
	}
}

// Close releases provider resources.
func (g *GeminiProvider) Close() error {
	return nil
}
