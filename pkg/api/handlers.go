package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mosaic/pkg/buildinfo"
	"github.com/matzehuels/mosaic/pkg/errors"
	mio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/scene"
)

const (
	kindTreemap = scene.KindTreemap
	kindMosaic  = scene.KindMosaic
)

// LayoutRequest is the body of POST /v1/treemap and POST /v1/mosaic.
type LayoutRequest struct {
	Items   []mio.Record     `json:"items"`
	Options pipeline.Options `json:"options"`
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Layout  json.RawMessage  `json:"layout"`
	Options pipeline.Options `json:"options"`
}

// LayoutResponse is the data of a successful JSON layout response.
type LayoutResponse struct {
	ID        string       `json:"id"`
	RequestID string       `json:"request_id,omitempty"`
	Cached    bool         `json:"cached"`
	Layout    scene.Layout `json:"layout"`
}

// HealthResponse is the data of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondWithSuccess(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleLayout(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := responseFormat(r)
		if err != nil {
			s.respondWithError(w, err)
			return
		}

		var req LayoutRequest
		if err := s.decode(w, r, &req); err != nil {
			s.respondWithError(w, err)
			return
		}
		if err := validateSources(req.Items); err != nil {
			s.respondWithError(w, err)
			return
		}
		recs, err := mio.Normalize(req.Items)
		if err != nil {
			s.respondWithError(w, err)
			return
		}

		opts := s.requestOptions(kind, req.Options)
		opts.Formats = []string{format}
		ctx := r.Context()

		if format == pipeline.FormatSVG {
			res, err := s.runner.Execute(ctx, recs, opts)
			if err != nil {
				s.respondWithError(w, err)
				return
			}
			s.respondWithSVG(w, res.Layout.ID, res.Artifacts[pipeline.FormatSVG])
			return
		}

		if err := opts.ValidateAndSetDefaults(); err != nil {
			s.respondWithError(w, err)
			return
		}
		layout, hit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, recs, opts)
		if err != nil {
			s.respondWithError(w, err)
			return
		}
		s.respondWithSuccess(w, http.StatusOK, LayoutResponse{
			ID:        layout.ID,
			RequestID: middleware.GetReqID(ctx),
			Cached:    hit,
			Layout:    layout,
		})
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := responseFormat(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	var req RenderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.respondWithError(w, err)
		return
	}
	if len(req.Layout) == 0 {
		s.respondWithError(w, errors.New(errors.ErrCodeInvalidInput, "layout is required"))
		return
	}
	layout, err := scene.Unmarshal(req.Layout)
	if err != nil {
		s.respondWithError(w, err)
		return
	}
	for i, t := range layout.Tiles {
		if t.Source == "" {
			continue
		}
		if err := errors.ValidatePath(t.Source); err != nil {
			s.respondWithError(w, fmt.Errorf("tile %d: %w", i, err))
			return
		}
	}

	opts := s.requestOptions(layout.Kind, req.Options)
	if req.Options.Style == "" && layout.Style != "" {
		opts.Style = layout.Style
	}
	opts.Formats = []string{format}
	artifacts, err := s.runner.Render(r.Context(), layout, opts)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	if format == pipeline.FormatSVG {
		s.respondWithSVG(w, layout.ID, artifacts[format])
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// =============================================================================
// Request Helpers
// =============================================================================

// decode reads a JSON body into v, enforcing the body size limit.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errTooLarge{limit: tooLarge.Limit}
		}
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err)
	}
	return nil
}

// requestOptions overlays the fields set in req on the server defaults.
func (s *Server) requestOptions(kind string, req pipeline.Options) pipeline.Options {
	opts := s.defaults
	opts.Formats = nil
	opts.Kind = kind
	if req.Width != 0 {
		opts.Width = req.Width
	}
	if req.Height != 0 {
		opts.Height = req.Height
	}
	if req.Algorithm != "" {
		opts.Algorithm = req.Algorithm
	}
	if req.MaxItemSize != 0 {
		opts.MaxItemSize = req.MaxItemSize
	}
	if req.Clamp != "" {
		opts.Clamp = req.Clamp
	}
	if req.Style != "" {
		opts.Style = req.Style
	}
	if req.Gap != 0 {
		opts.Gap = req.Gap
	}
	opts.NoLabels = opts.NoLabels || req.NoLabels
	opts.Images = opts.Images || req.Images
	opts.Interactive = opts.Interactive || req.Interactive
	opts.Refresh = req.Refresh
	return opts
}

// responseFormat reads the ?format query parameter.
func responseFormat(r *http.Request) (string, error) {
	format := r.URL.Query().Get("format")
	if format == "" {
		return pipeline.FormatJSON, nil
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// validateSources rejects image sources that escape the server's view.
func validateSources(recs []mio.Record) error {
	for i, rec := range recs {
		if rec.Source == "" {
			continue
		}
		if err := errors.ValidatePath(rec.Source); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

type errTooLarge struct{ limit int64 }

func (e errTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.limit)
}
