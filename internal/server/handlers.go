package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pixelczar/tangle-map/pkg/cache"
	"github.com/pixelczar/tangle-map/pkg/cluster"
	"github.com/pixelczar/tangle-map/pkg/composition"
	apperrors "github.com/pixelczar/tangle-map/pkg/errors"
	"github.com/pixelczar/tangle-map/pkg/gallery"
	"github.com/pixelczar/tangle-map/pkg/layers"
	"github.com/pixelczar/tangle-map/pkg/pipeline"
	"github.com/pixelczar/tangle-map/pkg/random"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		status = http.StatusBadRequest
	case strings.HasSuffix(string(code), "NOT_FOUND"):
		status = http.StatusNotFound
	}
	s.respondJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(code),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// layersResponse pairs the registry metadata with configuration warnings.
type layersResponse struct {
	Layers   []pipeline.Info    `json:"layers"`
	Warnings []pipeline.Warning `json:"warnings,omitempty"`
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	// Metadata only; the pipeline is never generated.
	p := pipeline.New(
		random.New(pipeline.DefaultSeed),
		cluster.NewField(pipeline.DefaultWidth, pipeline.DefaultHeight, pipeline.DefaultPadding, pipeline.DefaultClusterCount),
		s.logger,
		layers.All()...)
	s.respondJSON(w, http.StatusOK, layersResponse{
		Layers:   p.Layers(),
		Warnings: p.Validate(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := parseRenderOptions(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeArtifact(w, result)
}

// writeArtifact sends a rendered artifact with cache metadata headers.
func (s *Server) writeArtifact(w http.ResponseWriter, result *pipeline.Result) {
	switch result.Format {
	case pipeline.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
	default:
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Header().Set("X-Composition-Hash", result.Hash)
	w.Header().Set("X-Cache-Composition", hitMiss(result.CacheInfo.CompositionHit))
	w.Header().Set("X-Cache-Artifact", hitMiss(result.CacheInfo.ArtifactHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifact)
}

func hitMiss(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// parseRenderOptions builds pipeline options from query parameters.
// Unset parameters stay zero so the pipeline applies its defaults.
func parseRenderOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	q := r.URL.Query()

	intParams := []struct {
		name string
		dst  *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"clusters", &opts.ClusterCount},
	}
	for _, p := range intParams {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid %s: %q", p.name, v)
			}
			*p.dst = n
		}
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidSeed, "invalid seed: %q", v)
		}
		opts.Seed = seed
	}
	if v := q.Get("padding"); v != "" {
		padding, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid padding: %q", v)
		}
		opts.Padding = padding
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid scale: %q", v)
		}
		opts.Scale = scale
	}

	opts.Format = q.Get("format")
	opts.Refresh = q.Get("refresh") == "true"

	var err error
	if opts.Disabled, err = parseLayerList(q.Get("disabled")); err != nil {
		return opts, err
	}
	if opts.PaintOrder, err = parseLayerList(q.Get("paint_order")); err != nil {
		return opts, err
	}
	return opts, nil
}

// parseLayerList splits a comma-separated layer name list, validating each
// name's shape.
func parseLayerList(v string) ([]string, error) {
	if v == "" {
		return nil, nil
	}
	names := strings.Split(v, ",")
	for _, name := range names {
		if err := apperrors.ValidateLayerName(name); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// =============================================================================
// Gallery Handlers
// =============================================================================

// saveRequest is the POST /api/gallery body.
type saveRequest struct {
	Name    string           `json:"name"`
	Options pipeline.Options `json:"options"`
}

// entrySummary is the listing shape: entry metadata without the snapshot
// payload.
type entrySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Seed      int64  `json:"seed"`
	CreatedAt string `json:"created_at"`
}

func summarize(e *gallery.Entry) entrySummary {
	summary := entrySummary{
		ID:        e.ID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if e.Snapshot != nil {
		summary.Seed = e.Snapshot.Seed
	}
	return summary
}

func (s *Server) handleGalleryList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}

	entries, err := s.gallery.List(r.Context(), limit)
	if err != nil {
		s.respondError(w, err)
		return
	}
	summaries := make([]entrySummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, summarize(e))
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGallerySave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if err := apperrors.ValidateGalleryName(req.Name); err != nil {
		s.respondError(w, err)
		return
	}
	req.Options.Logger = s.logger

	snap, _, err := s.runner.GenerateWithCacheInfo(r.Context(), req.Options)
	if err != nil {
		s.respondError(w, err)
		return
	}

	entry := gallery.NewEntry(req.Name, snap)
	if err := s.gallery.Put(r.Context(), entry); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, summarize(entry))
}

func (s *Server) handleGalleryGet(w http.ResponseWriter, r *http.Request) {
	entry, err := s.gallery.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, entry)
}

func (s *Server) handleGalleryRender(w http.ResponseWriter, r *http.Request) {
	entry, err := s.gallery.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	opts, err := parseRenderOptions(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	opts.Logger = s.logger

	hash := ""
	if content, err := composition.ContentBytes(entry.Snapshot); err == nil {
		hash = cache.Hash(content)
	}
	artifact, hit, err := s.runner.RenderWithCacheInfo(r.Context(), entry.Snapshot, hash, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}

	result := &pipeline.Result{
		Artifact: artifact,
		Format:   opts.Format,
		Hash:     hash,
	}
	if result.Format == "" {
		result.Format = pipeline.FormatSVG
	}
	result.CacheInfo.ArtifactHit = hit
	s.writeArtifact(w, result)
}

func (s *Server) handleGalleryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.gallery.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
