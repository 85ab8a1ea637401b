package server

import (
	"io"
	"net/http"

	"universe-manager/internal/service"
)

func (s *Server) listWrestlers(w http.ResponseWriter, r *http.Request) {
	ws, err := s.roster.ListWrestlers(r.Context(), r.URL.Query().Get("brand"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWrestlersJSON(ws))
}

func (s *Server) addWrestler(w http.ResponseWriter, r *http.Request) {
	var in service.WrestlerInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.roster.AddWrestler(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toWrestlerJSON(*created))
}

func (s *Server) getWrestler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	found, err := s.roster.GetWrestler(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWrestlerJSON(*found))
}

func (s *Server) updateWrestler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.WrestlerInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.roster.UpdateWrestler(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWrestlerJSON(*updated))
}

func (s *Server) deleteWrestler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.roster.DeleteWrestler(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) wrestlerProfile(w http.ResponseWriter, r *http.Request) {
	name, err := pathString(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.roster.Profile(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	titles := p.Titles
	if titles == nil {
		titles = []string{}
	}
	writeJSON(w, r, http.StatusOK, profileJSON{
		Wrestler: toWrestlerJSON(p.Wrestler),
		Record:   toRecordJSON(p.Record),
		Titles:   titles,
	})
}

func (s *Server) rosterStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.roster.Stats(r.Context(), r.URL.Query().Get("brand"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, statsJSON{
		Brand:  st.Brand,
		Total:  st.Total,
		Face:   st.Face,
		Heel:   st.Heel,
		Male:   st.Male,
		Female: st.Female,
	})
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.roster.ListRecords(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]recordJSON, len(recs))
	for i, rec := range recs {
		out[i] = toRecordJSON(rec)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) resetRecords(w http.ResponseWriter, r *http.Request) {
	n, err := s.roster.ResetRecords(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int64{"reset": n})
}

func (s *Server) getPortrait(w http.ResponseWriter, r *http.Request) {
	name, err := pathString(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	info, body, err := s.portraits.Open(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer body.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.ETag != "" {
		w.Header().Set("ETag", `"`+info.ETag+`"`)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		s.logger.Warn().Err(err).Str("name", name).Msg("portrait stream interrupted")
	}
}

// uploadPortrait takes the raw image as the body; ?filename= supplies the extension.
func (s *Server) uploadPortrait(w http.ResponseWriter, r *http.Request) {
	name, err := pathString(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.portraits.Upload(r.Context(), name, r.URL.Query().Get("filename"), r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWrestlerJSON(*updated))
}

func (s *Server) importPortrait(w http.ResponseWriter, r *http.Request) {
	name, err := pathString(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		URL string `json:"url"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.portraits.Import(r.Context(), name, req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWrestlerJSON(*updated))
}
