package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"accessible-palette/internal/colormath"
	"accessible-palette/internal/palette"
)

// maxBodyBytes bounds POST /api/palette bodies
const maxBodyBytes = 4 << 10

// ErrorResponse is the JSON body of every non-2xx API response
type ErrorResponse struct {
	Error  string               `json:"error"`
	Kind   string               `json:"kind"`
	Fields []palette.FieldError `json:"fields,omitempty"`
}

// handlePalette serves GET and POST /api/palette
func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	var req palette.Config

	switch r.Method {
	case http.MethodGet:
		var err error
		if req, err = configFromQuery(r); err != nil {
			s.stats.RecordFailure("validation")
			writeError(w, http.StatusBadRequest, "validation", err.Error(), nil)
			return
		}
	case http.MethodPost:
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			s.stats.RecordFailure("bad_request")
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("invalid JSON: %v", err), nil)
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET or POST", nil)
		return
	}

	req = s.Config.PaletteConfig(req)
	if *req.Variations > s.Config.MaxVariations {
		s.stats.RecordFailure("validation")
		writeError(w, http.StatusBadRequest, "validation",
			fmt.Sprintf("variations must be less than or equal to %d", s.Config.MaxVariations), nil)
		return
	}

	s.stats.begin()
	start := time.Now()
	p, err := palette.Generate(req)
	MetricGenerationDuration.Observe(time.Since(start).Seconds())
	s.stats.end()

	if err != nil {
		s.writeGenerateError(w, err)
		return
	}

	s.stats.RecordPalette(p)
	w.Header().Set("X-Palette-Compliant", strconv.FormatBool(p.Compliant()))
	writeJSON(w, http.StatusOK, p)
}

// writeGenerateError maps generator errors to API responses
func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	var verr *palette.ValidationError
	switch {
	case errors.As(err, &verr):
		s.stats.RecordFailure("validation")
		writeError(w, http.StatusBadRequest, "validation", err.Error(), verr.Errors)
	case errors.Is(err, palette.ErrValidation):
		s.stats.RecordFailure("validation")
		writeError(w, http.StatusBadRequest, "validation", err.Error(), nil)
	case errors.Is(err, colormath.ErrInvalidFormat):
		s.stats.RecordFailure("invalid_format")
		writeError(w, http.StatusBadRequest, "invalid_format", err.Error(), nil)
	default:
		s.stats.RecordFailure("internal")
		writeError(w, http.StatusInternalServerError, "internal", "palette generation failed", nil)
	}
}

// configFromQuery reads base, ratio and variations from the query string.
// Absent numbers stay nil so configured defaults apply.
func configFromQuery(r *http.Request) (palette.Config, error) {
	q := r.URL.Query()
	cfg := palette.Config{BaseColor: strings.TrimSpace(q.Get("base"))}

	if v := q.Get("ratio"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("ratio must be a number, got %q", v)
		}
		cfg.ContrastRatio = &ratio
	}
	if v := q.Get("variations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("variations must be an integer, got %q", v)
		}
		cfg.Variations = &n
	}
	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string, fields []palette.FieldError) {
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind, Fields: fields})
}
