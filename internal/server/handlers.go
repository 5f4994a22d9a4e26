package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/heliowatch/coronal-edge/internal/codec"
	"github.com/heliowatch/coronal-edge/internal/fetch"
	"github.com/heliowatch/coronal-edge/internal/pipeline"
	"github.com/heliowatch/coronal-edge/internal/raster"
)

// errorDocument is the structured failure body for the JSON surface.
type errorDocument struct {
	Status         string `json:"status"`
	Kind           string `json:"error"`
	Message        string `json:"message"`
	SourceURL      string `json:"source_url,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

// handleDetect runs one detection pass. Query parameters:
//
//	date       observation date as YYYY-MM-DD (default: today, UTC)
//	format     "json" (default) or "image" for the raw preview bytes
//	mode       overlay strategy: "points" or "contours"
//	threshold  dark threshold 0-255
//	radius     disk radius fraction (0, 1]
//	target     maximum analysis-grid width
//	lum        luminance mode: "linear" or "log"
//	out        preview container: "png", "jpeg" or "bmp"
//	scale      integer preview upscale factor
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()

	date := time.Now().UTC()
	if d := q.Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			respondError(w, &errorDocument{Status: "error", Kind: "bad_request",
				Message: "invalid date, want YYYY-MM-DD: " + d}, http.StatusBadRequest)
			return
		}
		date = parsed
	}

	params, errDoc := s.buildParams(q)
	if errDoc != nil {
		respondError(w, errDoc, http.StatusBadRequest)
		return
	}

	url := fetch.SourceURL(s.cfg.SourceTemplate, s.cfg.DateLayout, date)

	result, err := pipeline.Run(r.Context(), s.client, url, params)
	if err != nil {
		log.Printf("detect %s: %v", url, err)
		doc, status := classifyError(err, url)
		respondError(w, doc, status)
		return
	}

	if q.Get("format") == "image" {
		w.Header().Set("Content-Type", result.PreviewMime)
		w.WriteHeader(http.StatusOK)
		w.Write(result.PreviewBytes)
		return
	}

	respondJSON(w, result, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// buildParams merges config defaults with per-request query overrides.
func (s *Server) buildParams(q map[string][]string) (pipeline.Params, *errorDocument) {
	get := func(key string) string {
		if v, ok := q[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	p := pipeline.Params{
		TargetDim:      s.cfg.TargetDim,
		Threshold:      uint8(s.cfg.Threshold),
		RadiusFraction: s.cfg.RadiusFraction,
		MinContourLen:  s.cfg.MinContourLen,
		Highlight:      s.cfg.Highlight,
		OverlayMode:    s.cfg.OverlayMode,
		PreviewScale:   s.cfg.PreviewScale,
	}

	mode, err := raster.ParseLuminanceMode(firstNonEmpty(get("lum"), s.cfg.LuminanceMode))
	if err != nil {
		return p, &errorDocument{Status: "error", Kind: "bad_request", Message: err.Error()}
	}
	p.LuminanceMode = mode

	enc, err := codec.ForFormat(firstNonEmpty(get("out"), s.cfg.OutputFormat))
	if err != nil {
		return p, &errorDocument{Status: "error", Kind: "bad_request", Message: err.Error()}
	}
	p.Encoder = enc

	if v := get("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 255 {
			return p, &errorDocument{Status: "error", Kind: "bad_request",
				Message: "threshold must be an integer in [0, 255]"}
		}
		p.Threshold = uint8(n)
	}
	if v := get("radius"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > 1 {
			return p, &errorDocument{Status: "error", Kind: "bad_request",
				Message: "radius must be a fraction in (0, 1]"}
		}
		p.RadiusFraction = f
	}
	if v := get("target"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, &errorDocument{Status: "error", Kind: "bad_request",
				Message: "target must be a positive integer"}
		}
		p.TargetDim = n
	}
	if v := get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 8 {
			return p, &errorDocument{Status: "error", Kind: "bad_request",
				Message: "scale must be an integer in [1, 8]"}
		}
		p.PreviewScale = n
	}
	if v := get("mode"); v != "" {
		if v != pipeline.OverlayPoints && v != pipeline.OverlayContours {
			return p, &errorDocument{Status: "error", Kind: "bad_request",
				Message: "mode must be \"points\" or \"contours\""}
		}
		p.OverlayMode = v
	}

	return p, nil
}

// classifyError maps pipeline failures to the structured error document
// and an HTTP status. All three kinds are terminal; nothing is retried.
func classifyError(err error, url string) (*errorDocument, int) {
	var upstream *fetch.UpstreamError
	if errors.As(err, &upstream) {
		return &errorDocument{
			Status:         "error",
			Kind:           "upstream_fetch_error",
			Message:        upstream.Error(),
			SourceURL:      upstream.URL,
			UpstreamStatus: upstream.Status,
		}, http.StatusBadGateway
	}

	var dec *pipeline.DecodeError
	if errors.As(err, &dec) {
		return &errorDocument{
			Status:    "error",
			Kind:      "decode_error",
			Message:   dec.Error(),
			SourceURL: url,
		}, http.StatusBadGateway
	}

	var enc *pipeline.EncodeError
	if errors.As(err, &enc) {
		return &errorDocument{
			Status:    "error",
			Kind:      "encode_error",
			Message:   enc.Error(),
			SourceURL: url,
		}, http.StatusInternalServerError
	}

	return &errorDocument{
		Status:    "error",
		Kind:      "internal_error",
		Message:   err.Error(),
		SourceURL: url,
	}, http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, doc *errorDocument, status int) {
	respondJSON(w, doc, status)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
