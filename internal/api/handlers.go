package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/svgstack/pkg/buildinfo"
	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/pipeline"
	"github.com/matzehuels/svgstack/pkg/record"
	"github.com/matzehuels/svgstack/pkg/svg"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// stackRequest is the body of POST /v1/stack. Separator defaults to true.
type stackRequest struct {
	SVG1         string `json:"svg1"`
	SVG2         string `json:"svg2"`
	Horizontally bool   `json:"horizontally"`
	Separator    *bool  `json:"separator"`
	Unit         string `json:"unit"`
	Minify       bool   `json:"minify"`
}

func (s *Server) handleStack(w http.ResponseWriter, r *http.Request) {
	var req stackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.SVG1 == "" || req.SVG2 == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "svg1 and svg2 are required"))
		return
	}

	opts := pipeline.StackOptions{
		StackSpec: svg.StackSpec{
			Horizontal: req.Horizontally,
			Separator:  req.Separator == nil || *req.Separator,
			Unit:       req.Unit,
		},
		Minify: req.Minify,
	}
	res, err := s.runner.Stack(r.Context(), req.SVG1, req.SVG2, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, contentTypeSVG, res.Data, res.CacheHit)
}

type rescaleRequest struct {
	SVG   string  `json:"svg"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleRescale(w http.ResponseWriter, r *http.Request) {
	var req rescaleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.SVG == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "svg is required"))
		return
	}
	res, err := s.runner.Rescale(r.Context(), req.SVG, req.Scale)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, contentTypeSVG, res.Data, res.CacheHit)
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	content, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePNG(w, r, content)
}

// writePNG rasterizes content as PNG bytes or, with ?format=tag, as an
// <img> tag.
func (s *Server) writePNG(w http.ResponseWriter, r *http.Request, content string) {
	dpi, err := queryFloat(r, "dpi")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := pipeline.PNGOptions{DPI: dpi, Backend: r.URL.Query().Get("backend")}

	switch format := r.URL.Query().Get("format"); format {
	case "", "png":
		res, err := s.runner.PNG(r.Context(), content, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeBytes(w, contentTypePNG, res.Data, res.CacheHit)
	case "tag":
		tag, err := s.runner.ImgTag(r.Context(), content, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeBytes(w, contentTypeHTML, []byte(tag), false)
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (must be 'png' or 'tag')", format))
	}
}

// recordSummary is one entry of GET /v1/records.
type recordSummary struct {
	Name       string   `json:"name"`
	Title      string   `json:"title,omitempty"`
	Tags       []string `json:"tag,omitempty"`
	Compressed bool     `json:"compressed"`
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context(), r.URL.Query().Get("tag"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]recordSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recordSummary{
			Name:       rec.Name,
			Title:      rec.Title,
			Tags:       rec.Tags,
			Compressed: rec.IsCompressed(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	var rec record.Record
	if err := decodeJSON(w, r, &rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.store.Put(r.Context(), &rec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("Stored plot", "name", rec.Name, "id", id, "compressed", rec.IsCompressed())
	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "name": rec.Name})
}

// loadRecord fetches the record named in the URL, decompressed.
func (s *Server) loadRecord(r *http.Request) (*record.Record, error) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		return nil, err
	}
	if err := rec.Decompress(nil); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadRecord(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRecordSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadRecord(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	text, _ := rec.Text()
	writeBytes(w, contentTypeSVG, []byte(text), false)
}

func (s *Server) handleRecordPNG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadRecord(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	text, _ := rec.Text()
	s.writePNG(w, r, text)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
