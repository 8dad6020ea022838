package chi

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/analyze"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sections": tenk.Sections()})
}

// handleExtract returns the raw text of one section of the latest 10-K.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	filing, ext, err := s.analyzer.Extract(r.Context(), chi.URLParam(r, "ticker"), chi.URLParam(r, "section"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"filing":     filing,
		"extraction": ext,
	})
}

type analyzeResponse struct {
	Ticker    string `json:"ticker"`
	Section   string `json:"section"`
	Summary   string `json:"summary"`
	HTML      string `json:"summary_html,omitempty"`
	AudioData string `json:"audio_data,omitempty"`
	AudioMIME string `json:"audio_mime,omitempty"`

	Accession string `json:"accession_number"`
	FilingURL string `json:"filing_url"`
	Fallback  bool   `json:"fallback,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

// handleAnalyze summarizes one section and, unless speech=false, attaches
// base64 audio of the summary.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	speech, err := boolParam(q.Get("speech"), true)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	refresh, err := boolParam(q.Get("refresh"), false)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), analyze.Request{
		Ticker:  chi.URLParam(r, "ticker"),
		Section: chi.URLParam(r, "section"),
		Options: analyze.Options{Speech: speech, Refresh: refresh},
	})
	if err != nil {
		s.Error(w, r, err)
		return
	}

	resp := analyzeResponse{
		Ticker:    analysis.Ticker,
		Section:   string(analysis.Section),
		Summary:   analysis.Summary,
		Accession: analysis.AccessionNumber,
		FilingURL: analysis.FilingURL,
		Fallback:  analysis.Fallback,
		Truncated: analysis.Truncated,
	}
	if analysis.Audio != nil && len(analysis.Audio.Data) > 0 {
		resp.AudioData = base64.StdEncoding.EncodeToString(analysis.Audio.Data)
		resp.AudioMIME = analysis.Audio.MIMEType
	}
	if s.Renderer != nil {
		html, err := s.Renderer.Render(analysis.Summary)
		if err != nil {
			s.log.Warn("render summary failed", "request_id", middleware.GetReqID(r.Context()), "err", err)
		} else {
			resp.HTML = html
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListAnalyses lists cached analyses, newest first.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.analyses == nil {
		s.Error(w, r, tenk.Errorf(tenk.EUNAVAILABLE, "analysis history is not configured"))
		return
	}

	q := r.URL.Query()
	var filter tenk.AnalysisFilter
	if v := q.Get("ticker"); v != "" {
		filter.Ticker = &v
	}
	if v := q.Get("section"); v != "" {
		id, err := tenk.ParseSectionID(v)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		filter.Section = &id
	}
	var err error
	if filter.Limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		s.Error(w, r, err)
		return
	}
	if filter.Offset, err = intParam(q.Get("offset"), "offset"); err != nil {
		s.Error(w, r, err)
		return
	}

	analyses, err := s.analyses.FindAnalyses(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if analyses == nil {
		analyses = []*tenk.Analysis{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.analyses == nil {
		s.Error(w, r, tenk.Errorf(tenk.EUNAVAILABLE, "analysis history is not configured"))
		return
	}
	analysis, err := s.analyses.FindAnalysisByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.analyses == nil {
		s.Error(w, r, tenk.Errorf(tenk.EUNAVAILABLE, "analysis history is not configured"))
		return
	}
	if err := s.analyses.DeleteAnalysis(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func boolParam(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, tenk.Errorf(tenk.EINVALID, "invalid boolean %q", v)
	}
	return b, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, tenk.Errorf(tenk.EINVALID, "invalid %s %q", name, v)
	}
	return n, nil
}
