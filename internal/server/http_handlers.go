package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"resumecanvas/internal/canvas"
	"resumecanvas/internal/pdf"
	"resumecanvas/internal/store"
)

// stdAs reports whether err matches target, unwrapping as needed.
func stdAs(err error, target any) bool {
	return stderrors.As(err, target)
}

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler reports the status of the store, the PDF renderer and the
// template registry. A degraded collaborator turns the whole response 503.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "resumecanvas",
		"version": s.Version,
	}

	overallHealthy := true

	storeStatus := s.checkStoreHealth()
	response["store"] = storeStatus
	if healthy, ok := storeStatus["healthy"].(bool); ok && !healthy {
		overallHealthy = false
	}

	response["pdf"] = s.checkPDFHealth()

	response["templates"] = s.checkTemplatesHealth()

	if s.Summary != nil {
		response["summary"] = map[string]any{"enabled": true}
	} else {
		response["summary"] = map[string]any{"enabled": false}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkStoreHealth verifies the store answers a list call within the health
// check timeout.
func (s *Server) checkStoreHealth() map[string]any {
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	status := map[string]any{
		"backend": s.AppConfig.Storage.Backend,
	}

	if s.Store == nil {
		status["healthy"] = false
		status["error"] = "store not configured"
		return status
	}

	entries, err := s.Store.List(ctx, store.CollectionResumes)
	if err != nil {
		status["healthy"] = false
		status["error"] = fmt.Sprintf("store list failed: %v", err)
		return status
	}

	status["healthy"] = true
	status["resumes"] = len(entries)
	return status
}

// checkPDFHealth reports renderer availability and circuit breaker state.
// An open breaker shows as unavailable without failing the whole health check;
// PDF export is an optional capability.
func (s *Server) checkPDFHealth() map[string]any {
	if s.PDF == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	status := map[string]any{
		"enabled": true,
	}

	if br, ok := s.PDF.(*pdf.BreakerRenderer); ok {
		status["available"] = br.Healthy()
		status["circuit_breaker"] = br.Stats()
	} else {
		status["available"] = true
	}

	return status
}

// checkTemplatesHealth reports registry and watcher status.
func (s *Server) checkTemplatesHealth() map[string]any {
	status := map[string]any{
		"loaded": len(s.Templates.List()),
	}

	if dir := s.Templates.Dir(); dir != "" {
		status["dir"] = dir
	}

	if s.TemplateWatcher != nil {
		status["watcher_running"] = s.TemplateWatcher.IsRunning()
	}

	return status
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumecanvas",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"templates": map[string]any{
			"loaded": len(s.Templates.List()),
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// readJSONBody reads the full request body after checking the content type.
func readJSONBody(r *http.Request) ([]byte, error) {
	if r.Header.Get("Content-Type") != "application/json" {
		return nil, fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return nil, fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if err := r.Body.Close(); err != nil {
		log.Printf("Failed to close request body: %v", err)
	}
	return body, nil
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	body, err := readJSONBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// parseDocumentRequest parses a document-carrying body, checking the raw
// bytes against the canvas schema before decoding. Typed unmarshaling
// zero-fills missing geometry, so the schema must see the bytes first.
func parseDocumentRequest(r *http.Request, v any) error {
	body, err := readJSONBody(r)
	if err != nil {
		return err
	}
	if err := canvas.ValidateJSON(body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
