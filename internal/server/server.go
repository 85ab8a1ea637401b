// Package server exposes the services over JSON HTTP and a websocket event stream.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"universe-manager/internal/metrics"
	"universe-manager/internal/middleware"
	"universe-manager/internal/service"
)

type Server struct {
	roster        *service.RosterService
	championships *service.ChampionshipService
	stables       *service.StableService
	booking       *service.BookingService
	cards         *service.CardService
	settings      *service.SettingsService
	portraits     *service.PortraitService
	hub           *Hub
	metrics       *metrics.Metrics
	logger        zerolog.Logger
}

func New(
	roster *service.RosterService,
	championships *service.ChampionshipService,
	stables *service.StableService,
	bookingSvc *service.BookingService,
	cards *service.CardService,
	settingsSvc *service.SettingsService,
	portraits *service.PortraitService,
	hub *Hub,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Server {
	return &Server{
		roster:        roster,
		championships: championships,
		stables:       stables,
		booking:       bookingSvc,
		cards:         cards,
		settings:      settingsSvc,
		portraits:     portraits,
		hub:           hub,
		metrics:       m,
		logger:        logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))
	r.Use(middleware.AccessLog(s.metrics))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", s.metrics.Handler())
	r.Get("/ws", s.hub.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Route("/wrestlers", func(r chi.Router) {
			r.Get("/", s.listWrestlers)
			r.Post("/", s.addWrestler)
			r.Get("/{id}", s.getWrestler)
			r.Put("/{id}", s.updateWrestler)
			r.Delete("/{id}", s.deleteWrestler)
			r.Get("/by-name/{name}/profile", s.wrestlerProfile)
			r.Get("/by-name/{name}/portrait", s.getPortrait)
			r.Put("/by-name/{name}/portrait", s.uploadPortrait)
			r.Post("/by-name/{name}/portrait/import", s.importPortrait)
		})
		r.Get("/roster/stats", s.rosterStats)
		r.Get("/records", s.listRecords)
		r.Delete("/records", s.resetRecords)

		r.Route("/championships", func(r chi.Router) {
			r.Get("/", s.listChampionships)
			r.Post("/", s.addChampionship)
			r.Get("/{title}", s.getChampionship)
			r.Put("/{title}", s.renameChampionship)
			r.Delete("/{title}", s.deleteChampionship)
			r.Get("/{title}/eligible", s.eligibleWrestlers)
			r.Post("/{title}/holder", s.assignHolder)
			r.Delete("/{title}/holder", s.vacateChampionship)
		})

		r.Route("/stables", func(r chi.Router) {
			r.Get("/", s.listStables)
			r.Post("/", s.addStable)
			r.Put("/{name}", s.updateStable)
			r.Delete("/{name}", s.deleteStable)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.createSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getSession)
				r.Delete("/", s.closeSession)
				r.Put("/brand", s.setBrand)
				r.Put("/championship", s.setChampionship)
				r.Put("/format", s.setFormat)
				r.Put("/style", s.setStyle)
				r.Put("/slots/{slot}", s.assignSlot)
				r.Delete("/slots/{slot}", s.clearSlot)
				r.Post("/matches", s.commitMatch)
				r.Delete("/matches", s.clearCard)
				r.Post("/matches/{index}/move", s.moveMatch)
				r.Delete("/matches/{index}", s.removeMatch)
				r.Post("/matches/{index}/result", s.recordResult)
				r.Post("/cards", s.saveCard)
				r.Post("/cards/{cardID}/load", s.loadCard)
			})
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", s.listCards)
			r.Get("/dates", s.cardDates)
			r.Get("/{id}", s.cardDetails)
			r.Delete("/{id}", s.deleteCard)
		})
		r.Get("/history", s.listHistory)
		r.Delete("/history", s.resetHistory)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.getSettings)
			r.Post("/styles", s.addStyle)
			r.Delete("/styles", s.removeStyle)
			r.Put("/font", s.setFont)
		})
	})

	return r
}
