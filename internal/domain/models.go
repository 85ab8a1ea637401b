package domain

import (
	"time"
)

type Wrestler struct {
	ID        int64
	Name      string
	Gender    string // "Male" or "Female"
	Alignment string // "Face", "Heel" or "Both"
	Brand     string
	Champion  string
	ImagePath string // portrait blob key, empty when unset
}

// Record is keyed by wrestler name, not id.
type Record struct {
	Wrestler string
	Wins     int
	Losses   int
}

type Championship struct {
	ID            int64
	Title         string
	Brand         string
	Type          string // "Singles" or "Tag"
	Gender        string
	CurrentHolder string // names joined by " & ", empty when vacant
	WonOn         *time.Time
}

// Holders splits the holder text into individual names.
func (c Championship) Holders() []string {
	return SplitTeamLabel(c.CurrentHolder)
}

type Stable struct {
	ID      int64
	Name    string
	Members []string
}

type Card struct {
	ID      int64
	Name    string
	Brand   string
	Date    time.Time
	Matches []BookedMatch
}

// CardSummary is the listing view of a saved card.
type CardSummary struct {
	ID   int64
	Name string
}

type MatchHistoryEntry struct {
	ID           int64
	Date         time.Time
	MatchNumber  int // 1-based position within the card
	Winner       string
	Losers       string // comma joined
	Style        string
	Championship string // empty for non-title matches
}

type RosterStats struct {
	Brand  string
	Total  int
	Face   int
	Heel   int
	Male   int
	Female int
}

type WrestlerProfile struct {
	Wrestler Wrestler
	Record   Record
	Titles   []string
}

type MatchDetail struct {
	Number       int
	Style        string
	Championship *string
	Teams        [][]string
	Winner       string // "TBD" until a result exists
	Losers       string
}

type CardDetails struct {
	ID      int64
	Name    string
	Brand   string
	Date    time.Time
	Matches []MatchDetail
}
