package web

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/emiliopalmerini/researchlog/internal/research"
	"github.com/emiliopalmerini/researchlog/internal/util"
)

type apiRecord struct {
	Name       string           `json:"name"`
	Date       string           `json:"date"`
	Researcher string           `json:"researcher"`
	DataPoints []util.JSONFloat `json:"data_points"`
}

func (s *Server) handleAPIEntries(w http.ResponseWriter, r *http.Request) {
	entries := s.svc.Entries()

	out := make([]apiRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, apiRecord{
			Name:       e.Name,
			Date:       e.Date,
			Researcher: e.Researcher,
			DataPoints: util.JSONFloats(e.DataPoints),
		})
	}
	s.writeJSON(w, out)
}

func (s *Server) handleAPIAnalysis(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.svc.Report(r.Context()))
}

func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = research.ExportJSON
	}

	switch format {
	case research.ExportJSON:
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=research.json")
	case research.ExportCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=research.csv")
	default:
		http.Error(w, fmt.Sprintf("unsupported format: %s", format), http.StatusBadRequest)
		return
	}

	if _, err := s.svc.Export(r.Context(), w, format); err != nil {
		s.logger.Error(fmt.Sprintf("Export failed: %v", err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
