package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/util"
	"github.com/emiliopalmerini/researchlog/internal/web/templates"
)

// Banner texts.
const (
	msgEntryAdded     = "Entry added successfully!"
	msgEntriesSaved   = "Entries saved successfully!"
	msgNoEntries      = "No entries to display."
	msgNoAnalysis     = "No data available for analysis."
	msgInvalidPoints  = "Invalid data points. Please enter numeric values."
	analysisPrecision = 2
)

func (s *Server) page() templates.Page {
	return templates.Page{
		EntryCount: s.svc.Len(),
		Location:   s.svc.Location(),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, p templates.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Index(p).Render(r.Context(), w); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to render page: %v", err))
	}
}

func info(text string) *templates.Message {
	return &templates.Message{Kind: templates.MessageInfo, Text: text}
}

func failure(text string) *templates.Message {
	return &templates.Message{Kind: templates.MessageError, Text: text}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.page())
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		p := s.page()
		p.Message = failure("Invalid form submission.")
		s.render(w, r, http.StatusBadRequest, p)
		return
	}

	form := templates.FormValues{
		Name:       r.PostFormValue("name"),
		Date:       r.PostFormValue("date"),
		Researcher: r.PostFormValue("researcher"),
		DataPoints: r.PostFormValue("data_points"),
	}

	_, err := s.svc.AddEntry(r.Context(), form.Name, form.Date, form.Researcher, form.DataPoints)
	if errors.Is(err, domain.ErrInvalidDataPoint) {
		p := s.page()
		p.Form = form
		p.Message = failure(msgInvalidPoints)
		s.render(w, r, http.StatusUnprocessableEntity, p)
		return
	}
	if err != nil {
		p := s.page()
		p.Form = form
		p.Message = failure(err.Error())
		s.render(w, r, http.StatusInternalServerError, p)
		return
	}

	p := s.page()
	p.Message = info(msgEntryAdded)
	s.render(w, r, http.StatusOK, p)
}

func (s *Server) handleViewEntries(w http.ResponseWriter, r *http.Request) {
	p := s.page()

	entries := s.svc.Entries()
	if len(entries) == 0 {
		p.Message = info(msgNoEntries)
		s.render(w, r, http.StatusOK, p)
		return
	}

	p.Entries = make([]templates.EntryRow, 0, len(entries))
	for i, e := range entries {
		p.Entries = append(p.Entries, templates.EntryRow{
			Index:      i + 1,
			Name:       e.Name,
			Date:       e.Date,
			Researcher: e.Researcher,
			DataPoints: util.FormatPoints(e.DataPoints),
		})
	}
	s.render(w, r, http.StatusOK, p)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	p := s.page()

	results := s.svc.Analyze(r.Context())
	if len(results) == 0 {
		p.Message = info(msgNoAnalysis)
		s.render(w, r, http.StatusOK, p)
		return
	}

	p.Analysis = make([]templates.AnalysisRow, 0, len(results))
	for _, a := range results {
		row := templates.AnalysisRow{Experiment: a.Experiment}
		if a.Err != nil {
			row.Error = a.Err.Error()
		} else {
			row.Average = util.FormatFixed(a.Summary.Mean, analysisPrecision)
			row.StdDev = util.FormatOptional(a.Summary.StdDev, analysisPrecision)
			row.Median = util.FormatFixed(a.Summary.Median, analysisPrecision)
		}
		p.Analysis = append(p.Analysis, row)
	}
	s.render(w, r, http.StatusOK, p)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.Save(r.Context()); err != nil {
		p := s.page()
		p.Message = failure(err.Error())
		s.render(w, r, http.StatusInternalServerError, p)
		return
	}

	p := s.page()
	p.Message = info(msgEntriesSaved)
	s.render(w, r, http.StatusOK, p)
}
