package server

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/fencedraw/pkg/buildinfo"
	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/pipeline"
	"github.com/matzehuels/fencedraw/pkg/spec"
)

// Response headers set by render.
const (
	HeaderRenderID = "X-Render-Id"
	HeaderCache    = "X-Cache"
	HeaderStack    = "X-Stack"
	HeaderWarning  = "X-Warning"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json; charset=utf-8",
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) error {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) error {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
	return nil
}

// render decodes the spec in the request body and writes one artifact.
func (s *Server) render(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}

	opts := pipeline.Options{
		SpecFormat: specFormat(r.Header.Get("Content-Type")),
		Unit:       q.Get("unit"),
		Title:      q.Get("title"),
		Formats:    []string{format},
		Logger:     s.logger,
	}
	var err error
	if opts.Strict, err = boolParam(q.Get("strict"), false); err != nil {
		return err
	}
	annotations, err := boolParam(q.Get("annotations"), true)
	if err != nil {
		return err
	}
	opts.NoAnnotations = !annotations

	if opts.SpecData, err = io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodySize)); err != nil {
		return err
	}
	if len(opts.SpecData) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "request body must contain a spec")
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		return err
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set(HeaderRenderID, result.ID)
	h.Set(HeaderCache, cacheStatus(result.CacheInfo))
	if result.Check.Balanced() {
		h.Set(HeaderStack, "balanced")
	} else {
		h.Set(HeaderStack, "unbalanced")
	}
	for _, warn := range result.Diagram.Warnings {
		h.Add(HeaderWarning, warn)
	}
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(result.Artifacts[format])
	return err
}

// specFormat picks the decoder from the request content type; unknown
// types leave the choice to content sniffing.
func specFormat(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch mt {
	case "application/json":
		return string(spec.FormatJSON)
	case "application/toml", "text/toml", "text/x-toml":
		return string(spec.FormatTOML)
	}
	return ""
}

func boolParam(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid boolean %q", v)
	}
	return b, nil
}

func cacheStatus(ci pipeline.CacheInfo) string {
	switch {
	case ci.LayoutHit && ci.RenderHit:
		return "hit"
	case ci.LayoutHit:
		return "partial"
	}
	return "miss"
}
