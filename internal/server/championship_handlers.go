package server

import (
	"net/http"

	"universe-manager/internal/service"
)

func (s *Server) listChampionships(w http.ResponseWriter, r *http.Request) {
	cs, err := s.championships.List(r.Context(), r.URL.Query().Get("brand"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]championshipJSON, len(cs))
	for i, c := range cs {
		out[i] = toChampionshipJSON(c)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) addChampionship(w http.ResponseWriter, r *http.Request) {
	var in service.ChampionshipInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.championships.Add(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toChampionshipJSON(*c))
}

func (s *Server) getChampionship(w http.ResponseWriter, r *http.Request) {
	title, err := pathString(r, "title")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.championships.Get(r.Context(), title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toChampionshipJSON(*c))
}

func (s *Server) renameChampionship(w http.ResponseWriter, r *http.Request) {
	title, err := pathString(r, "title")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.championships.Rename(r.Context(), title, req.Title); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.championships.Get(r.Context(), req.Title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toChampionshipJSON(*c))
}

func (s *Server) deleteChampionship(w http.ResponseWriter, r *http.Request) {
	title, err := pathString(r, "title")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.championships.Delete(r.Context(), title); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) eligibleWrestlers(w http.ResponseWriter, r *http.Request) {
	title, err := pathString(r, "title")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ws, err := s.championships.Eligible(r.Context(), title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWrestlersJSON(ws))
}

func (s *Server) assignHolder(w http.ResponseWriter, r *http.Request) {
	title, err := pathString(r, "title")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Holders []string `json:"holders"`
		Date    string   `json:"date"`
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
	c, err := s.championships.AssignHolder(r.Context(), title, req.Holders, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toChampionshipJSON(*c))
}

func (s *Server) vacateChampionship(w http.ResponseWriter, r *http.Request) {
	title, err := pathString(r, "title")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.championships.Vacate(r.Context(), title); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type stableRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func (s *Server) listStables(w http.ResponseWriter, r *http.Request) {
	sts, err := s.stables.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]stableJSON, len(sts))
	for i, st := range sts {
		out[i] = toStableJSON(st)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) addStable(w http.ResponseWriter, r *http.Request) {
	var req stableRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := s.stables.Add(r.Context(), req.Name, req.Members)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toStableJSON(*st))
}

func (s *Server) updateStable(w http.ResponseWriter, r *http.Request) {
	name, err := pathString(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req stableRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := s.stables.Update(r.Context(), name, req.Name, req.Members)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toStableJSON(*st))
}

func (s *Server) deleteStable(w http.ResponseWriter, r *http.Request) {
	name, err := pathString(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stables.Delete(r.Context(), name); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
