package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"resumecanvas/internal/observability"
	"resumecanvas/internal/store"
	"resumecanvas/internal/templates"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// TemplateSummary is the list representation of a template.
type TemplateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"` // "registry" or "custom"
}

// ResumeSummary is the list representation of a stored resume.
type ResumeSummary struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"templateId"`
	CreatedAt  time.Time `json:"createdAt"`
	ATSScore   int       `json:"atsScore"`
}

// lookupTemplate resolves a template id. Custom templates persisted through
// the API shadow registry templates of the same id, the same way directory
// templates shadow builtins.
func (s *Server) lookupTemplate(ctx context.Context, id string) (templates.Template, error) {
	data, err := s.Store.Get(ctx, store.CollectionTemplates, id)
	if err == nil {
		var tmpl templates.Template
		if jsonErr := json.Unmarshal(data, &tmpl); jsonErr == nil {
			return tmpl, nil
		}
	}
	return s.Templates.Get(id)
}

// createListTemplatesHandler serves GET /templates.
func (s *Server) createListTemplatesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.templates.list")
		defer span.End()

		summaries := make(map[string]TemplateSummary)
		for _, tmpl := range s.Templates.List() {
			summaries[tmpl.ID] = TemplateSummary{
				ID:          tmpl.ID,
				Name:        tmpl.Name,
				Description: tmpl.Description,
				Source:      "registry",
			}
		}

		entries, err := s.Store.List(ctx, store.CollectionTemplates)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}
		for _, entry := range entries {
			var tmpl templates.Template
			if jsonErr := json.Unmarshal(entry.Data, &tmpl); jsonErr != nil {
				s.Logger.Warn("Skipping unreadable stored template",
					"id", entry.ID, "error", jsonErr.Error())
				continue
			}
			summaries[tmpl.ID] = TemplateSummary{
				ID:          tmpl.ID,
				Name:        tmpl.Name,
				Description: tmpl.Description,
				Source:      "custom",
			}
		}

		list := make([]TemplateSummary, 0, len(summaries))
		for _, summary := range summaries {
			list = append(list, summary)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

		span.SetAttributes(attribute.Int("templates.count", len(list)))
		writeJSONResponse(w, span, list)
	}
}

// createGetTemplateHandler serves GET /templates/{id}.
func (s *Server) createGetTemplateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumecanvas.api")
		_, span := tracer.Start(r.Context(), "api.templates.get")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("template.id", id))

		tmpl, err := s.lookupTemplate(r.Context(), id)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		writeJSONResponse(w, span, tmpl)
	}
}

// createSaveTemplateHandler serves POST /templates and PUT /templates/{id}.
// POST assigns an id when the body carries none; PUT always writes under the
// path id.
func (s *Server) createSaveTemplateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.templates.save")
		defer span.End()

		var tmpl templates.Template
		if err := parseJSONRequest(r, &tmpl); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if pathID := r.PathValue("id"); pathID != "" {
			tmpl.ID = pathID
		}
		created := false
		if tmpl.ID == "" {
			tmpl.ID = uuid.NewString()
			created = true
		}
		if strings.TrimSpace(tmpl.Name) == "" {
			tmpl.Name = tmpl.ID
		}

		doc := tmpl.Document()
		if err := doc.Validate(); err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		data, err := json.Marshal(tmpl)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to encode template", err.Error(), http.StatusInternalServerError)
			return
		}
		if err := s.Store.Put(ctx, store.CollectionTemplates, tmpl.ID, data); err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		span.SetAttributes(
			attribute.String("template.id", tmpl.ID),
			attribute.Bool("template.created", created),
		)

		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
		}
		if err := json.NewEncoder(w).Encode(tmpl); err != nil {
			span.RecordError(err)
		}
	}
}

// createDeleteTemplateHandler serves DELETE /templates/{id}. Only custom
// templates can be deleted; registry templates are read-only.
func (s *Server) createDeleteTemplateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.templates.delete")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("template.id", id))

		if err := s.Store.Delete(ctx, store.CollectionTemplates, id); err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// createListResumesHandler serves GET /resumes.
func (s *Server) createListResumesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.resumes.list")
		defer span.End()

		entries, err := s.Store.List(ctx, store.CollectionResumes)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		summaries := make([]ResumeSummary, 0, len(entries))
		for _, entry := range entries {
			var resume GeneratedResume
			if jsonErr := json.Unmarshal(entry.Data, &resume); jsonErr != nil {
				s.Logger.Warn("Skipping unreadable stored resume",
					"id", entry.ID, "error", jsonErr.Error())
				continue
			}
			summaries = append(summaries, ResumeSummary{
				ID:         resume.ID,
				TemplateID: resume.TemplateID,
				CreatedAt:  resume.CreatedAt,
				ATSScore:   resume.ATSReport.Score,
			})
		}

		span.SetAttributes(attribute.Int("resumes.count", len(summaries)))
		writeJSONResponse(w, span, summaries)
	}
}

// createGetResumeHandler serves GET /resumes/{id}.
func (s *Server) createGetResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.resumes.get")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("resume.id", id))

		data, err := s.Store.Get(ctx, store.CollectionResumes, id)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(data); err != nil {
			span.RecordError(err)
		}
	}
}

// createDeleteResumeHandler serves DELETE /resumes/{id}.
func (s *Server) createDeleteResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecanvas.api")
		ctx, span := tracer.Start(ctx, "api.resumes.delete")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("resume.id", id))

		if err := s.Store.Delete(ctx, store.CollectionResumes, id); err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
