package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"universe-manager/internal/booking"
)

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func pathIndex(r *http.Request, key string) (int, error) {
	v, err := pathInt(r, key)
	return int(v), err
}

// respondSession writes the session view or the error from producing it.
func respondSession(w http.ResponseWriter, r *http.Request, id string, v booking.View, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionJSON(id, v))
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, v, err := s.booking.CreateSession(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toSessionJSON(id, v))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	v, err := s.booking.Session(id)
	respondSession(w, r, id, v, err)
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.booking.CloseSession(sessionID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setBrand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Brand string `json:"brand"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	v, err := s.booking.SetBrand(r.Context(), id, req.Brand)
	respondSession(w, r, id, v, err)
}

// setChampionship accepts {"title": ""} to clear the selection.
func (s *Server) setChampionship(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	v, err := s.booking.SetChampionship(r.Context(), id, req.Title)
	respondSession(w, r, id, v, err)
}

func (s *Server) setFormat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Total int    `json:"total"`
		Shape string `json:"shape"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	var shape booking.Shape
	if req.Shape != "" {
		var err error
		if shape, err = booking.ParseShape(req.Shape); err != nil {
			writeError(w, r, err)
			return
		}
	}
	id := sessionID(r)
	v, err := s.booking.SetFormat(r.Context(), id, req.Total, shape)
	respondSession(w, r, id, v, err)
}

func (s *Server) setStyle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Style string `json:"style"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	v, err := s.booking.SetStyle(r.Context(), id, req.Style)
	respondSession(w, r, id, v, err)
}

func (s *Server) assignSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := pathIndex(r, "slot")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	v, err := s.booking.Assign(r.Context(), id, slot, req.Name)
	respondSession(w, r, id, v, err)
}

func (s *Server) clearSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := pathIndex(r, "slot")
	if err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	v, err := s.booking.ClearSlot(r.Context(), id, slot)
	respondSession(w, r, id, v, err)
}

func (s *Server) commitMatch(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	v, err := s.booking.Commit(r.Context(), id)
	respondSession(w, r, id, v, err)
}

func (s *Server) clearCard(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	v, err := s.booking.ClearCard(r.Context(), id)
	respondSession(w, r, id, v, err)
}

func (s *Server) moveMatch(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Direction int `json:"direction"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	v, err := s.booking.Move(r.Context(), id, index, req.Direction)
	respondSession(w, r, id, v, err)
}

func (s *Server) removeMatch(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	v, err := s.booking.Remove(r.Context(), id, index)
	respondSession(w, r, id, v, err)
}

// recordResult takes the winning team's label ("A & B" for teams) and an optional date.
func (s *Server) recordResult(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Winner string `json:"winner"`
		Date   string `json:"date"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	v, err := s.booking.RecordResult(r.Context(), id, index, req.Winner, date)
	respondSession(w, r, id, v, err)
}

func (s *Server) saveCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Date string `json:"date"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cardID, err := s.booking.SaveCard(r.Context(), sessionID(r), req.Name, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/cards/"+strconv.FormatInt(cardID, 10))
	writeJSON(w, r, http.StatusCreated, map[string]int64{"id": cardID})
}

func (s *Server) loadCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathInt(r, "cardID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	v, err := s.booking.LoadCard(r.Context(), id, cardID)
	respondSession(w, r, id, v, err)
}
