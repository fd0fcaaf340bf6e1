// Package pdf turns rendered HTML into PDF bytes through a headless Chrome
// instance. The Chrome dependency is fenced behind a Renderer interface so the
// service and tests can swap it out, and behind a circuit breaker so a broken
// Chrome install degrades to fast RENDER_UNAVAILABLE errors instead of
// piling up timeouts.
package pdf

import (
	"context"
	"time"
)

// A4 paper dimensions in inches.
const (
	PaperWidthA4  = 8.27
	PaperHeightA4 = 11.69
)

// Options controls the printed page. Zero values select A4 with half-inch
// margins.
type Options struct {
	PaperWidth   float64
	PaperHeight  float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

func (o Options) withDefaults() Options {
	if o.PaperWidth <= 0 {
		o.PaperWidth = PaperWidthA4
	}
	if o.PaperHeight <= 0 {
		o.PaperHeight = PaperHeightA4
	}
	if o.MarginTop <= 0 {
		o.MarginTop = 0.5
	}
	if o.MarginBottom <= 0 {
		o.MarginBottom = 0.5
	}
	if o.MarginLeft <= 0 {
		o.MarginLeft = 0.5
	}
	if o.MarginRight <= 0 {
		o.MarginRight = 0.5
	}
	return o
}

// Renderer converts an HTML document into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string, opts Options) ([]byte, error)
}

// Config configures the Chrome renderer.
type Config struct {
	// ExecPath overrides Chrome binary discovery. Empty uses the default
	// lookup plus the CHROME_PATH environment variable.
	ExecPath string
	// Timeout bounds a single render, including browser startup.
	Timeout time.Duration
}
