package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"palette-studio/internal/colorname"
	"palette-studio/internal/palette"
)

// HSLValue is one decoded palette color.
type HSLValue struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// PaletteResponse is the JSON form of one generated palette.
type PaletteResponse struct {
	Base   string     `json:"base"`
	Scheme string     `json:"scheme"`
	Colors []string   `json:"colors"`
	HSL    []HSLValue `json:"hsl"`
}

// PalettesResponse holds one palette per scheme, in scheme order.
type PalettesResponse struct {
	Base     string            `json:"base"`
	Palettes []PaletteResponse `json:"palettes"`
}

// SchemeInfo describes a scheme for clients building a picker.
type SchemeInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// PaletteRequest is what a client asks for: a base color (hex or name)
// and a scheme name. Empty fields fall back to the configured defaults.
type PaletteRequest struct {
	Base   string `json:"base"`
	Scheme string `json:"scheme"`
}

// requestError is a client mistake with the metric kind it is counted under.
type requestError struct {
	kind string
	err  error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// resolve turns a client request into validated engine inputs.
func (s *Server) resolve(req PaletteRequest) (string, palette.Scheme, error) {
	baseInput := req.Base
	if baseInput == "" {
		baseInput = s.Config.DefaultBase
	}
	base, err := colorname.Resolve(baseInput)
	if err != nil {
		return "", "", &requestError{kind: "invalid_color", err: err}
	}

	scheme := s.Config.Scheme()
	if req.Scheme != "" {
		scheme, err = palette.ParseScheme(req.Scheme)
		if err != nil {
			return "", "", &requestError{kind: "unknown_scheme", err: err}
		}
	}
	return base, scheme, nil
}

// build generates one palette and counts it.
func (s *Server) build(base string, scheme palette.Scheme) (PaletteResponse, error) {
	p, err := palette.Generate(base, scheme)
	if err != nil {
		return PaletteResponse{}, &requestError{kind: "invalid_color", err: err}
	}
	s.Stats.RecordPalette(scheme)
	return NewPaletteResponse(scheme, p)
}

// NewPaletteResponse converts a generated palette to its JSON form.
func NewPaletteResponse(scheme palette.Scheme, p palette.Palette) (PaletteResponse, error) {
	hsls, err := p.HSL()
	if err != nil {
		return PaletteResponse{}, err
	}
	resp := PaletteResponse{
		Base:   p.Base(),
		Scheme: string(scheme),
		Colors: p.Slice(),
		HSL:    make([]HSLValue, len(hsls)),
	}
	for i, c := range hsls {
		resp.HSL[i] = HSLValue{H: c.H, S: c.S, L: c.L}
	}
	return resp, nil
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	base, scheme, err := s.resolve(PaletteRequest{Base: q.Get("base"), Scheme: q.Get("scheme")})
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	resp, err := s.build(base, scheme)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	s.Log.WithFields(logrus.Fields{
		"key":    keyName(r),
		"base":   base,
		"scheme": scheme,
	}).Debug("palette generated")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	base, _, err := s.resolve(PaletteRequest{Base: r.URL.Query().Get("base")})
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	out := PalettesResponse{Base: base}
	for _, scheme := range palette.Schemes() {
		resp, err := s.build(base, scheme)
		if err != nil {
			s.writeRequestError(w, err)
			return
		}
		out.Palettes = append(out.Palettes, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSchemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SchemeList())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Stats.Snapshot(s.LiveSessions()))
}

// SchemeList describes every scheme in display order.
func SchemeList() []SchemeInfo {
	schemes := palette.Schemes()
	out := make([]SchemeInfo, len(schemes))
	for i, sc := range schemes {
		out[i] = SchemeInfo{Name: string(sc), Label: sc.Label(), Description: sc.Description()}
	}
	return out
}

func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		s.Stats.RecordError(reqErr.kind)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.Stats.RecordError("internal")
	s.Log.WithError(err).Error("palette request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

