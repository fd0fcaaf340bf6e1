package server

import (
	"time"

	"resumecanvas/internal/ats"
	"resumecanvas/internal/canvas"
	"resumecanvas/internal/config"
	resumecanvasErrors "resumecanvas/internal/errors"
	"resumecanvas/internal/fill"
	"resumecanvas/internal/layout"
	"resumecanvas/internal/pdf"
	"resumecanvas/internal/store"
	"resumecanvas/internal/templates"
)

// DocumentRequest carries a raw canvas document. Elements and sections are
// the flat collections the editor produces.
type DocumentRequest struct {
	Elements []canvas.Element `json:"elements"`
	Sections []canvas.Section `json:"sections"`
}

// ScoreRequest is the request body for the score endpoint.
type ScoreRequest struct {
	Elements       []canvas.Element `json:"elements"`
	Sections       []canvas.Section `json:"sections"`
	JobDescription string           `json:"jobDescription,omitempty"`
}

// RenderRequest is the request body for the render endpoint.
type RenderRequest struct {
	Elements []canvas.Element `json:"elements"`
	Sections []canvas.Section `json:"sections"`
	Mode     string           `json:"mode,omitempty"`
}

// RenderResponse holds rendered output for a single mode.
type RenderResponse struct {
	Mode   string `json:"mode"`
	Output string `json:"output"`
}

// GenerateRequest is the request body for the generate endpoints.
type GenerateRequest struct {
	TemplateID     string          `json:"templateId"`
	UserData       canvas.UserData `json:"userData"`
	JobDescription string          `json:"jobDescription,omitempty"`
}

// GeneratedResume is the stored result of a generate call.
type GeneratedResume struct {
	ID             string           `json:"id"`
	TemplateID     string           `json:"templateId"`
	CreatedAt      time.Time        `json:"createdAt"`
	Elements       []canvas.Element `json:"elements"`
	Sections       []canvas.Section `json:"sections"`
	HTML           string           `json:"html"`
	ATSReport      ats.Report       `json:"atsReport"`
	JobDescription string           `json:"jobDescription,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration and collaborators for the HTTP API.
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *LimiterManager

	// Domain collaborators
	Store           store.Store
	Templates       *templates.Registry
	TemplateWatcher *templates.Watcher
	PDF             pdf.Renderer
	Summary         fill.SummaryProvider

	// Engine tuning resolved from configuration
	LayoutOptions layout.Options
	ATSConfig     ats.Config

	// Logger
	Logger *resumecanvasErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (struct instead of a long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig

	Store     store.Store
	Templates *templates.Registry
	PDF       pdf.Renderer
	Summary   fill.SummaryProvider
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *resumecanvasErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *LimiterManager
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Store:          cfg.Store,
		Templates:      cfg.Templates,
		PDF:            cfg.PDF,
		Summary:        cfg.Summary,
		LayoutOptions:  layoutOptionsFrom(appCfg),
		ATSConfig:      atsConfigFrom(appCfg),
		Logger:         logger,
	}
}

// layoutOptionsFrom maps configuration onto linearizer options.
func layoutOptionsFrom(appCfg *config.Config) layout.Options {
	if appCfg == nil {
		return layout.Options{}
	}
	return layout.Options{LineEps: appCfg.Layout.LineEps}
}

// atsConfigFrom overlays configured scoring knobs on the engine defaults.
// Zero values keep the default for that knob.
func atsConfigFrom(appCfg *config.Config) ats.Config {
	cfg := ats.DefaultConfig()
	if appCfg == nil {
		return cfg
	}
	if appCfg.ATS.SectionsWeight > 0 {
		cfg.SectionsWeight = appCfg.ATS.SectionsWeight
	}
	if appCfg.ATS.ContactWeight > 0 {
		cfg.ContactWeight = appCfg.ATS.ContactWeight
	}
	if appCfg.ATS.FontsWeight > 0 {
		cfg.FontsWeight = appCfg.ATS.FontsWeight
	}
	if appCfg.ATS.KeywordsWeight > 0 {
		cfg.KeywordsWeight = appCfg.ATS.KeywordsWeight
	}
	if appCfg.ATS.FormattingWeight > 0 {
		cfg.FormattingWeight = appCfg.ATS.FormattingWeight
	}
	if appCfg.ATS.KeywordPoints > 0 {
		cfg.KeywordPoints = appCfg.ATS.KeywordPoints
	}
	return cfg
}
