package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ggframe/pkg/errors"
	ggio "github.com/matzehuels/ggframe/pkg/io"
	"github.com/matzehuels/ggframe/pkg/layout"
	"github.com/matzehuels/ggframe/pkg/pipeline"
)

// runOptions are the pipeline options a request may set.
type runOptions struct {
	DPI        float64 `json:"dpi,omitempty"`
	PixelSnap  bool    `json:"pixel_snap,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	EmbedFont  bool    `json:"embed_font,omitempty"`
	Ratios     bool    `json:"ratios,omitempty"`
	Refresh    bool    `json:"refresh,omitempty"`
}

func (o runOptions) pipeline(figure []byte, formats ...string) pipeline.Options {
	return pipeline.Options{
		Data:       figure,
		Format:     ggio.FormatJSON,
		DPI:        o.DPI,
		PixelSnap:  o.PixelSnap,
		FontFamily: o.FontFamily,
		Formats:    formats,
		Scale:      o.Scale,
		EmbedFont:  o.EmbedFont,
		Ratios:     o.Ratios,
		Refresh:    o.Refresh,
	}
}

type layoutRequest struct {
	Figure json.RawMessage `json:"figure"`
	runOptions
}

type renderRequest struct {
	Figure json.RawMessage `json:"figure"`
	Format string          `json:"format,omitempty"` // default svg
	Name   string          `json:"name,omitempty"`   // download file name without extension
	runOptions
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// handleLayout lays out a figure, stores the report and returns it.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Figure) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request has no figure"))
		return
	}

	res, err := s.runner.Execute(r.Context(), req.pipeline(req.Figure, pipeline.FormatJSON))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rep := res.Report
	id, err := s.store.Put(r.Context(), rep)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+id)
	s.writeReport(w, http.StatusCreated, rep)
}

// handleRender lays out a figure and returns one rendered format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Figure) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request has no figure"))
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name != "" {
		if err := errors.ValidateOutputName(req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	res, err := s.runner.Execute(r.Context(), req.pipeline(req.Figure, req.Format))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := req.Name
	if name == "" {
		name = res.Figure.Name
	}
	if errors.ValidateOutputName(name) != nil {
		name = "figure"
	}

	data := res.Artifacts[req.Format]
	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name+extensions[req.Format]))
	w.Header().Set("X-Layout-Warnings", strconv.Itoa(len(res.Warnings)))
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleGetLayout returns a stored report.
func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReport(w, http.StatusOK, rep)
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatTree: "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

var extensions = map[string]string{
	pipeline.FormatSVG:  ".svg",
	pipeline.FormatPNG:  ".png",
	pipeline.FormatPDF:  ".pdf",
	pipeline.FormatJSON: ".json",
	pipeline.FormatTree: ".tree.svg",
	pipeline.FormatDOT:  ".dot",
}

// decode reads a JSON request body of at most cfg.MaxBody bytes.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

func (s *Server) writeReport(w http.ResponseWriter, status int, rep *layout.Report) {
	var buf bytes.Buffer
	if err := layout.WriteReport(&buf, rep); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusOf(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "code", code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}

// statusOf maps an error code to an HTTP status.
func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidSpec, errors.ErrCodeInvalidPath, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
