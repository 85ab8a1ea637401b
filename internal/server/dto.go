package server

import (
	"universe-manager/internal/booking"
	"universe-manager/internal/domain"
	"universe-manager/internal/settings"
)

type wrestlerJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Alignment string `json:"alignment"`
	Brand     string `json:"brand"`
	Champion  string `json:"champion"`
	ImagePath string `json:"image_path"`
}

func toWrestlerJSON(w domain.Wrestler) wrestlerJSON {
	return wrestlerJSON{
		ID:        w.ID,
		Name:      w.Name,
		Gender:    w.Gender,
		Alignment: w.Alignment,
		Brand:     w.Brand,
		Champion:  w.Champion,
		ImagePath: w.ImagePath,
	}
}

func toWrestlersJSON(ws []domain.Wrestler) []wrestlerJSON {
	out := make([]wrestlerJSON, len(ws))
	for i, w := range ws {
		out[i] = toWrestlerJSON(w)
	}
	return out
}

type recordJSON struct {
	Wrestler string `json:"wrestler"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

func toRecordJSON(r domain.Record) recordJSON {
	return recordJSON{Wrestler: r.Wrestler, Wins: r.Wins, Losses: r.Losses}
}

type profileJSON struct {
	Wrestler wrestlerJSON `json:"wrestler"`
	Record   recordJSON   `json:"record"`
	Titles   []string     `json:"titles"`
}

type statsJSON struct {
	Brand  string `json:"brand"`
	Total  int    `json:"total"`
	Face   int    `json:"face"`
	Heel   int    `json:"heel"`
	Male   int    `json:"male"`
	Female int    `json:"female"`
}

type championshipJSON struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Brand         string  `json:"brand"`
	Type          string  `json:"type"`
	Gender        string  `json:"gender"`
	CurrentHolder string  `json:"current_holder"`
	WonOn         *string `json:"won_on"`
}

func toChampionshipJSON(c domain.Championship) championshipJSON {
	out := championshipJSON{
		ID:            c.ID,
		Title:         c.Title,
		Brand:         c.Brand,
		Type:          c.Type,
		Gender:        c.Gender,
		CurrentHolder: c.CurrentHolder,
	}
	if c.WonOn != nil {
		d := domain.FormatDate(*c.WonOn)
		out.WonOn = &d
	}
	return out
}

type stableJSON struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func toStableJSON(s domain.Stable) stableJSON {
	return stableJSON{ID: s.ID, Name: s.Name, Members: s.Members}
}

type entryJSON struct {
	domain.BookedMatch
	Resolved bool   `json:"resolved"`
	Winner   string `json:"winner,omitempty"`
}

type sessionJSON struct {
	ID           string      `json:"id"`
	Brand        string      `json:"brand"`
	Championship string      `json:"championship"`
	Style        string      `json:"style"`
	Total        int         `json:"total"`
	Shape        string      `json:"shape"`
	Shapes       []string    `json:"shapes"`
	Slots        []string    `json:"slots"`
	Pool         []string    `json:"pool"`
	Booked       []entryJSON `json:"booked"`
}

func toSessionJSON(id string, v booking.View) sessionJSON {
	legal := booking.Shapes(v.Format.Total)
	shapes := make([]string, len(legal))
	for i, s := range legal {
		shapes[i] = s.String()
	}
	booked := make([]entryJSON, len(v.Booked))
	for i, e := range v.Booked {
		booked[i] = entryJSON{BookedMatch: e.Match, Resolved: e.Resolved, Winner: e.Winner}
	}
	return sessionJSON{
		ID:           id,
		Brand:        v.Brand,
		Championship: v.Championship,
		Style:        v.Style,
		Total:        v.Format.Total,
		Shape:        v.Format.Shape.String(),
		Shapes:       shapes,
		Slots:        v.Slots,
		Pool:         v.Pool,
		Booked:       booked,
	}
}

type cardSummaryJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type matchDetailJSON struct {
	Number       int        `json:"number"`
	Style        string     `json:"style"`
	Championship *string    `json:"championship"`
	Teams        [][]string `json:"teams"`
	Winner       string     `json:"winner"`
	Losers       string     `json:"losers"`
}

type cardDetailsJSON struct {
	ID      int64             `json:"id"`
	Name    string            `json:"name"`
	Brand   string            `json:"brand"`
	Date    string            `json:"date"`
	Matches []matchDetailJSON `json:"matches"`
}

func toCardDetailsJSON(d domain.CardDetails) cardDetailsJSON {
	out := cardDetailsJSON{
		ID:      d.ID,
		Name:    d.Name,
		Brand:   d.Brand,
		Date:    domain.FormatDate(d.Date),
		Matches: make([]matchDetailJSON, len(d.Matches)),
	}
	for i, m := range d.Matches {
		out.Matches[i] = matchDetailJSON{
			Number:       m.Number,
			Style:        m.Style,
			Championship: m.Championship,
			Teams:        m.Teams,
			Winner:       m.Winner,
			Losers:       m.Losers,
		}
	}
	return out
}

type historyJSON struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	MatchNumber  int    `json:"match_number"`
	Winner       string `json:"winner"`
	Losers       string `json:"losers"`
	Style        string `json:"style"`
	Championship string `json:"championship"`
}

func toHistoryJSON(rows []domain.MatchHistoryEntry) []historyJSON {
	out := make([]historyJSON, len(rows))
	for i, h := range rows {
		out[i] = historyJSON{
			ID:           h.ID,
			Date:         domain.FormatDate(h.Date),
			MatchNumber:  h.MatchNumber,
			Winner:       h.Winner,
			Losers:       h.Losers,
			Style:        h.Style,
			Championship: h.Championship,
		}
	}
	return out
}

type settingsJSON struct {
	MatchStyles []string `json:"match_styles"`
	Font        string   `json:"font"`
	Fonts       []string `json:"fonts"`
}

func toSettingsJSON(doc settings.Settings, fonts []string) settingsJSON {
	return settingsJSON{MatchStyles: doc.MatchStyles, Font: doc.Font, Fonts: fonts}
}
