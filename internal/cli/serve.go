package cli

import (
	"fmt"

	"resumecanvas/internal/ai"
	"resumecanvas/internal/config"
	"resumecanvas/internal/errors"
	"resumecanvas/internal/fill"
	"resumecanvas/internal/pdf"
	"resumecanvas/internal/server"
	"resumecanvas/internal/store"
	"resumecanvas/internal/templates"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for the canvas resume editor",
	Long: `Start an HTTP server exposing the resume pipeline as a REST API.

Available endpoints:
- POST /linearize: Convert a canvas document into reading order
- POST /score: Score a canvas document against ATS heuristics
- POST /render: Render a canvas document as HTML or plain text
- POST /generate: Fill a template with user data and store the resume
- POST /generate/pdf: Generate a resume and return it as a PDF
- /templates, /resumes: Template and stored-resume management
- GET /health, GET /stats: Service status

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server
- Use --cert-file and --key-file for TLS certificates`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("storage", "", "Storage backend: memory or sqlite (overrides config)")
	serveCmd.Flags().String("templates-dir", "", "Directory of JSON templates to load (overrides config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("storage.backend", "storage")
	bindFlag("templates.dir", "templates-dir")
	bindFlag("server.tls.mode", "tls-mode")
	bindFlag("server.tls.certfile", "cert-file")
	bindFlag("server.tls.keyfile", "key-file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	// Validate TLS configuration after applying overrides
	tempConfig := &config.Config{Server: cfg.Server}
	if err := tempConfig.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.Server.MaxRequestBody,
		RateLimit:      &cfg.Server.RateLimit,
		Store:          st,
		Templates:      templates.NewRegistry(logger),
		PDF:            buildPDFRenderer(cfg, logger),
		Summary:        buildSummaryProvider(cfg, logger),
	}
	return server.NewServer(cfg, serverCfg, logger).Start()
}

// openStore selects the persistence backend from configuration.
func openStore(cfg *config.Config, logger *errors.Logger) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		st, err := store.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("Using sqlite storage", "path", cfg.Storage.Path)
		return st, nil
	default:
		logger.Info("Using in-memory storage")
		return store.NewMemoryStore(), nil
	}
}

// buildPDFRenderer constructs the Chrome renderer with breaker protection,
// or nil when PDF export is disabled.
func buildPDFRenderer(cfg *config.Config, logger *errors.Logger) pdf.Renderer {
	if !cfg.PDF.Enabled {
		return nil
	}

	chrome := pdf.NewChromeRenderer(pdf.Config{
		ExecPath: cfg.PDF.ChromePath,
		Timeout:  cfg.PDF.Timeout,
	})

	return pdf.WithBreaker(chrome, pdf.BreakerConfig{
		Enabled:          cfg.PDF.CircuitBreaker.Enabled,
		MaxRequests:      cfg.PDF.CircuitBreaker.MaxRequests,
		Interval:         cfg.PDF.CircuitBreaker.Interval,
		Timeout:          cfg.PDF.CircuitBreaker.Timeout,
		MinRequests:      cfg.PDF.CircuitBreaker.MinRequests,
		FailureThreshold: cfg.PDF.CircuitBreaker.FailureThreshold,
	}, logger)
}

// buildSummaryProvider constructs the optional summary generator. A
// construction failure only disables the collaborator; the fill engine's
// built-in fallback covers {summary} tokens.
func buildSummaryProvider(cfg *config.Config, logger *errors.Logger) fill.SummaryProvider {
	if !cfg.Summary.Enabled {
		return nil
	}

	provider, err := ai.NewGeminiProvider(&cfg.Summary, logger)
	if err != nil {
		logger.LogError(err, "Failed to create summary provider, falling back to built-in summaries")
		return nil
	}
	return provider
}
