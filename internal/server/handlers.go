package server

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/httputil"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/store"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Render
// =============================================================================

// RenderRequest is the body of POST /api/render.
type RenderRequest struct {
	Words    []wordcloud.Word  `json:"words"`
	MaxWords int               `json:"max_words,omitempty"`
	Width    float64           `json:"width,omitempty"`
	Height   float64           `json:"height,omitempty"`
	Options  wordcloud.Options `json:"options,omitempty"`
	Formats  []string          `json:"formats,omitempty"`
	PNGScale float64           `json:"png_scale,omitempty"`
	Refresh  bool              `json:"refresh,omitempty"`
}

// RenderResponse is returned when more than one format is requested.
// Artifact bytes are base64-encoded by JSON marshaling.
type RenderResponse struct {
	WordsHash string            `json:"words_hash"`
	Placed    int               `json:"placed"`
	Attempts  int               `json:"attempts"`
	Exhausted bool              `json:"exhausted,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if len(req.Words) == 0 {
		httputil.WriteErrorf(w, errors.ErrCodeInvalidInput, "words must not be empty")
		return
	}

	s.renderAndReply(w, r, req.Words, pipeline.Options{
		MaxWords: req.MaxWords,
		Width:    req.Width,
		Height:   req.Height,
		Cloud:    req.Options,
		Formats:  req.Formats,
		PNGScale: req.PNGScale,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	})
}

// renderAndReply runs the pipeline and writes the response: raw bytes for a
// single format, a JSON envelope for several.
func (s *Server) renderAndReply(w http.ResponseWriter, r *http.Request, words []wordcloud.Word, opts pipeline.Options) {
	opts.SetRenderDefaults()
	result, err := s.runner.Execute(r.Context(), words, opts)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "render failed")
		}
		httputil.WriteError(w, err)
		return
	}

	if len(opts.Formats) == 1 {
		format := opts.Formats[0]
		w.Header().Set("Content-Type", contentType(format))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RenderResponse{
		WordsHash: result.WordsHash,
		Placed:    result.Stats.PlacedCount,
		Attempts:  result.Stats.Attempts,
		Exhausted: result.Stats.Exhausted,
		Artifacts: result.Artifacts,
	})
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

// =============================================================================
// Clouds CRUD
// =============================================================================

// CloudRequest is the body of POST and PUT on /api/clouds.
type CloudRequest struct {
	Name     string            `json:"name"`
	Words    []wordcloud.Word  `json:"words"`
	MaxWords int               `json:"max_words,omitempty"`
	Options  wordcloud.Options `json:"options,omitempty"`
}

func (s *Server) handleListClouds(w http.ResponseWriter, r *http.Request) {
	clouds, err := s.store.List(r.Context())
	if err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeStore, err, "list clouds"))
		return
	}
	if clouds == nil {
		clouds = []*store.Cloud{}
	}
	httputil.WriteJSON(w, http.StatusOK, clouds)
}

func (s *Server) handleCreateCloud(w http.ResponseWriter, r *http.Request) {
	var req CloudRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Name == "" || len(req.Words) == 0 {
		httputil.WriteErrorf(w, errors.ErrCodeInvalidInput, "name and words are required")
		return
	}

	cloud := store.NewCloud(req.Name, req.Words, req.Options)
	cloud.MaxWords = req.MaxWords
	if err := s.store.Put(r.Context(), cloud); err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeStore, err, "save cloud"))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, cloud)
}

func (s *Server) handleGetCloud(w http.ResponseWriter, r *http.Request) {
	cloud, ok := s.loadCloud(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cloud)
}

func (s *Server) handleUpdateCloud(w http.ResponseWriter, r *http.Request) {
	cloud, ok := s.loadCloud(w, r)
	if !ok {
		return
	}

	var req CloudRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Name != "" {
		cloud.Name = req.Name
	}
	if len(req.Words) > 0 {
		cloud.Words = req.Words
	}
	cloud.MaxWords = req.MaxWords
	cloud.Options = req.Options

	if err := s.store.Put(r.Context(), cloud); err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeStore, err, "save cloud"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cloud)
}

func (s *Server) handleDeleteCloud(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case stderrors.Is(err, store.ErrNotFound):
		httputil.WriteErrorf(w, errors.ErrCodeNotFound, "cloud %s not found", id)
	default:
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeStore, err, "delete cloud"))
	}
}

func (s *Server) handleRenderCloud(w http.ResponseWriter, r *http.Request) {
	cloud, ok := s.loadCloud(w, r)
	if !ok {
		return
	}

	opts := pipeline.Options{
		MaxWords: cloud.MaxWords,
		Cloud:    cloud.Options,
		Logger:   s.logger,
	}
	q := r.URL.Query()
	if format := q.Get("format"); format != "" {
		opts.Formats = []string{format}
	}
	if v, err := strconv.ParseFloat(q.Get("width"), 64); err == nil {
		opts.Width = v
	}
	if v, err := strconv.ParseFloat(q.Get("height"), 64); err == nil {
		opts.Height = v
	}

	s.renderAndReply(w, r, cloud.Words, opts)
}

// loadCloud fetches the cloud addressed by the id path parameter, writing
// the error response itself on failure.
func (s *Server) loadCloud(w http.ResponseWriter, r *http.Request) (*store.Cloud, bool) {
	id := chi.URLParam(r, "id")
	cloud, err := s.store.Get(r.Context(), id)
	switch {
	case err == nil:
		return cloud, true
	case stderrors.Is(err, store.ErrNotFound), stderrors.Is(err, store.ErrInvalidID):
		httputil.WriteErrorf(w, errors.ErrCodeNotFound, "cloud %s not found", id)
	default:
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeStore, err, "load cloud"))
	}
	return nil, false
}
