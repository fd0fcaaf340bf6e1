package pdf

import (
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"resumecanvas/internal/errors"
)

type fakeRenderer struct {
	calls int
	err   error
}

func (f *fakeRenderer) RenderHTMLToPDF(context.Context, string, Options) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF"), nil
}

func breakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.5,
	}
}

func TestWithBreakerDisabledReturnsInner(t *testing.T) {
	inner := &fakeRenderer{}
	got := WithBreaker(inner, BreakerConfig{}, errors.NewLogger(slog.LevelError))
	if got != Renderer(inner) {
		t.Error("disabled breaker should return the inner renderer unchanged")
	}
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &fakeRenderer{}
	r := WithBreaker(inner, breakerConfig(), errors.NewLogger(slog.LevelError))

	out, err := r.RenderHTMLToPDF(context.Background(), "<html></html>", Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "%PDF" {
		t.Errorf("out = %q", out)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	inner := &fakeRenderer{err: stderrors.New("chrome exploded")}
	r := WithBreaker(inner, breakerConfig(), errors.NewLogger(slog.LevelError))

	for i := 0; i < 3; i++ {
		if _, err := r.RenderHTMLToPDF(context.Background(), "x", Options{}); err == nil {
			t.Fatal("expected failure")
		}
	}

	// breaker should now be open: inner no longer called
	before := inner.calls
	_, err := r.RenderHTMLToPDF(context.Background(), "x", Options{})
	if err == nil {
		t.Fatal("expected open-circuit error")
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeRenderUnavailable {
		t.Errorf("err = %v, want code %s", err, errors.ErrCodeRenderUnavailable)
	}
	if inner.calls != before {
		t.Errorf("inner called while circuit open")
	}

	br, ok := r.(*BreakerRenderer)
	if !ok {
		t.Fatal("expected BreakerRenderer")
	}
	if br.Healthy() {
		t.Error("breaker should not report healthy while open")
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.PaperWidth != PaperWidthA4 || o.PaperHeight != PaperHeightA4 {
		t.Errorf("paper = %vx%v, want A4", o.PaperWidth, o.PaperHeight)
	}
	if o.MarginTop != 0.5 || o.MarginLeft != 0.5 {
		t.Errorf("margins = %+v, want 0.5", o)
	}

	custom := Options{PaperWidth: 8.5, PaperHeight: 11}.withDefaults()
	if custom.PaperWidth != 8.5 || custom.PaperHeight != 11 {
		t.Errorf("custom paper overridden: %+v", custom)
	}
}
