package server

import (
	"net/http"

	"universe-manager/internal/domain"
)

func (s *Server) listCards(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cards, err := s.cards.ListForDate(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]cardSummaryJSON, len(cards))
	for i, c := range cards {
		out[i] = cardSummaryJSON{ID: c.ID, Name: c.Name}
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) cardDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.cards.Dates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = domain.FormatDate(d)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) cardDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := s.cards.Details(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCardDetailsJSON(*d))
}

func (s *Server) deleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.cards.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := s.cards.History(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toHistoryJSON(rows))
}

func (s *Server) resetHistory(w http.ResponseWriter, r *http.Request) {
	n, err := s.cards.ResetHistory(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int64{"deleted": n})
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, toSettingsJSON(s.settings.Get(), s.settings.Fonts()))
}

type styleRequest struct {
	Style string `json:"style"`
}

func (s *Server) addStyle(w http.ResponseWriter, r *http.Request) {
	var req styleRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := s.settings.AddStyle(req.Style)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSettingsJSON(doc, s.settings.Fonts()))
}

func (s *Server) removeStyle(w http.ResponseWriter, r *http.Request) {
	var req styleRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := s.settings.RemoveStyle(req.Style)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSettingsJSON(doc, s.settings.Fonts()))
}

func (s *Server) setFont(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Font string `json:"font"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := s.settings.SetFont(req.Font)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSettingsJSON(doc, s.settings.Fonts()))
}
