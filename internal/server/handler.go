package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resumecanvas/internal/ats"
	"resumecanvas/internal/canvas"
	"resumecanvas/internal/errors"
	"resumecanvas/internal/fill"
	"resumecanvas/internal/layout"
	"resumecanvas/internal/observability"
	"resumecanvas/internal/pdf"
	"resumecanvas/internal/render"
	"resumecanvas/internal/store"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// httpStatusFor maps typed application errors onto HTTP status codes.
// Invalid models are the client's fault but not a malformed request, so they
// map to 422 rather than 400.
func httpStatusFor(err error) int {
	if errors.IsNotFound(err) {
		return http.StatusNotFound
	}
	switch {
	case errors.IsType(err, errors.ErrorTypeValidation):
		return http.StatusBadRequest
	case errors.IsType(err, errors.ErrorTypeModel):
		return http.StatusUnprocessableEntity
	case errors.IsType(err, errors.ErrorTypeRender), errors.IsType(err, errors.ErrorTypeNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeAppError writes err with its mapped status code.
func writeAppError(w http.ResponseWriter, err error) {
	status := httpStatusFor(err)
	var appErr *errors.AppError
	if stdAs(err, &appErr) {
		writeErrorResponse(w, appErr.Code, appErr.Message, status)
		return
	}
	writeErrorResponse(w, "INTERNAL", err.Error(), status)
}

// writeParseError maps a request parse failure. Schema violations carry a
// typed model error and keep its status; anything else is a plain 400.
func writeParseError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if stdAs(err, &appErr) {
		writeAppError(w, err)
		return
	}
	writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
}

// linearizeDocument validates and linearizes a raw document.
func (s *Server) linearizeDocument(elements []canvas.Element, sections []canvas.Section) (*layout.Tree, error) {
	doc := &canvas.Document{Elements: elements, Sections: sections}
	return layout.Linearize(doc, s.LayoutOptions)
}

// createLinearizeHandler serves the reading-order linearization endpoint.
func (s *Server) createLinearizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.linearize")
		defer span.End()

		var req DocumentRequest
		if err := parseDocumentRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeParseError(w, err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.elements", len(req.Elements)),
			attribute.Int("request.sections", len(req.Sections)),
			attribute.String("operation", "linearize"),
		)

		metrics := om.GetMetrics()
		var tree *layout.Tree
		err := metrics.TrackOperation(ctx, "linearize", func(ctx context.Context) error {
			var opErr error
			tree, opErr = s.linearizeDocument(req.Elements, req.Sections)
			return opErr
		})
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "document_linearized", false,
				attribute.String("error", err.Error()))
			writeAppError(w, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "document_linearized", true,
			attribute.Int("tree.sections", len(tree.Sections)))
		span.SetAttributes(attribute.Bool("success", true))

		writeJSONResponse(w, span, tree)
	}
}

// createScoreHandler serves the ATS scoring endpoint.
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req ScoreRequest
		if err := parseDocumentRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeParseError(w, err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.elements", len(req.Elements)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "score"),
		)

		tree, err := s.linearizeDocument(req.Elements, req.Sections)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		report := ats.Score(tree, req.JobDescription, s.ATSConfig)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_scored", true,
			attribute.Int("ats.score", report.Score),
			attribute.Int("suggestions", len(report.Suggestions)))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", report.Score),
		)

		writeJSONResponse(w, span, report)
	}
}

// createRenderHandler serves the HTML/text render endpoint.
func (s *Server) createRenderHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.render")
		defer span.End()

		var req RenderRequest
		if err := parseDocumentRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeParseError(w, err)
			return
		}

		mode := render.Mode(strings.ToLower(strings.TrimSpace(req.Mode)))
		if mode == "" {
			mode = render.ModeHTML
		}

		span.SetAttributes(
			attribute.Int("request.elements", len(req.Elements)),
			attribute.String("render.mode", string(mode)),
			attribute.String("operation", "render"),
		)

		tree, err := s.linearizeDocument(req.Elements, req.Sections)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		metrics := om.GetMetrics()
		var output string
		err = metrics.TrackOperation(ctx, "render", func(ctx context.Context) error {
			var opErr error
			output, opErr = render.Render(tree, mode)
			return opErr
		})
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_rendered", false)
			writeAppError(w, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_rendered", true,
			attribute.String("render.mode", string(mode)),
			attribute.Int("output.length", len(output)))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.output_length", len(output)),
		)

		writeJSONResponse(w, span, RenderResponse{Mode: string(mode), Output: output})
	}
}

// generateResume runs the full fill, linearize, render, score pipeline for a
// template and stores the result.
func (s *Server) generateResume(ctx context.Context, req GenerateRequest) (*GeneratedResume, error) {
	tmpl, err := s.lookupTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	filled := fill.Fill(ctx, tmpl.Elements, tmpl.Sections, req.UserData, req.JobDescription,
		fill.Options{Summary: s.Summary})

	tree, err := s.linearizeDocument(filled.Elements, filled.Sections)
	if err != nil {
		return nil, err
	}

	resume := &GeneratedResume{
		ID:             uuid.NewString(),
		TemplateID:     tmpl.ID,
		CreatedAt:      time.Now().UTC(),
		Elements:       filled.Elements,
		Sections:       filled.Sections,
		HTML:           render.HTML(tree),
		ATSReport:      ats.Score(tree, req.JobDescription, s.ATSConfig),
		JobDescription: req.JobDescription,
	}

	data, err := json.Marshal(resume)
	if err != nil {
		return nil, errors.NewInternalError("ENCODE_FAILED", "Failed to encode generated resume", err)
	}
	if err := s.Store.Put(ctx, store.CollectionResumes, resume.ID, data); err != nil {
		return nil, err
	}

	return resume, nil
}

// createGenerateHandler serves the template fill pipeline endpoint.
func (s *Server) createGenerateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.generate")
		defer span.End()

		req, ok := s.parseGenerateRequest(w, r, span)
		if !ok {
			return
		}

		metrics := om.GetMetrics()
		resume, err := s.generateResume(ctx, req)
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_generated", false,
				attribute.String("template.id", req.TemplateID))
			writeAppError(w, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_generated", true,
			attribute.String("template.id", resume.TemplateID),
			attribute.Int("ats.score", resume.ATSReport.Score))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("resume.id", resume.ID),
			attribute.Int("ats.score", resume.ATSReport.Score),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resume); err != nil {
			span.RecordError(err)
		}
	}
}

// createGeneratePDFHandler serves the generate pipeline with a PDF response.
func (s *Server) createGeneratePDFHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.generate_pdf")
		defer span.End()

		if s.PDF == nil {
			err := errors.NewRenderError(errors.ErrCodeRenderUnavailable,
				"PDF rendering is disabled", nil)
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		req, ok := s.parseGenerateRequest(w, r, span)
		if !ok {
			return
		}

		metrics := om.GetMetrics()
		resume, err := s.generateResume(ctx, req)
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "pdf_exported", false,
				attribute.String("template.id", req.TemplateID))
			writeAppError(w, err)
			return
		}

		var pdfBytes []byte
		err = metrics.TrackOperation(ctx, "pdf", func(ctx context.Context) error {
			var opErr error
			pdfBytes, opErr = s.PDF.RenderHTMLToPDF(ctx, resume.HTML, pdf.Options{})
			return opErr
		})
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "pdf_exported", false,
				attribute.String("template.id", resume.TemplateID))
			writeAppError(w, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "pdf_exported", true,
			attribute.String("template.id", resume.TemplateID),
			attribute.Int("pdf.bytes", len(pdfBytes)))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("resume.id", resume.ID),
			attribute.Int("pdf.bytes", len(pdfBytes)),
		)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "resume-"+resume.ID+".pdf"))
		if _, err := w.Write(pdfBytes); err != nil {
			span.RecordError(err)
		}
	}
}

// parseGenerateRequest decodes and validates a generate request body.
func (s *Server) parseGenerateRequest(w http.ResponseWriter, r *http.Request, span oteltrace.Span) (GenerateRequest, bool) {
	var req GenerateRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return req, false
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		err := fmt.Errorf("missing template id")
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Missing template id", "templateId field is required", http.StatusBadRequest)
		return req, false
	}
	span.SetAttributes(attribute.String("template.id", req.TemplateID))
	return req, true
}

// writeJSONResponse encodes v as the response body, recording any encode
// failure on the span.
func writeJSONResponse(w http.ResponseWriter, span oteltrace.Span, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
