package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const TeamSeparator = " & "

// BookedMatch is one entry of a card. Its JSON form is the persisted card_data element:
// {"teams": [[name, ...], ...], "style": "...", "championship": null | "..."}.
type BookedMatch struct {
	Teams        [][]string `json:"teams"`
	Style        string     `json:"style"`
	Championship *string    `json:"championship"`
}

// TeamLabel renders a team the way winners are identified: members joined by " & ".
func TeamLabel(team []string) string {
	return strings.Join(team, TeamSeparator)
}

// SplitTeamLabel is the inverse of TeamLabel. Empty input yields no names.
func SplitTeamLabel(label string) []string {
	if strings.TrimSpace(label) == "" {
		return nil
	}
	return strings.Split(label, TeamSeparator)
}

func (m BookedMatch) TeamLabels() []string {
	labels := make([]string, len(m.Teams))
	for i, t := range m.Teams {
		labels[i] = TeamLabel(t)
	}
	return labels
}

// Participants returns every name in team order.
func (m BookedMatch) Participants() []string {
	var out []string
	for _, t := range m.Teams {
		out = append(out, t...)
	}
	return out
}

func (m BookedMatch) ChampionshipTitle() string {
	if m.Championship == nil {
		return ""
	}
	return *m.Championship
}

// Clone deep-copies the match so callers can hand it out without sharing slices.
func (m BookedMatch) Clone() BookedMatch {
	teams := make([][]string, len(m.Teams))
	for i, t := range m.Teams {
		teams[i] = append([]string(nil), t...)
	}
	out := BookedMatch{Teams: teams, Style: m.Style}
	if m.Championship != nil {
		c := *m.Championship
		out.Championship = &c
	}
	return out
}

// Validate checks the structural invariants a match must hold once it leaves the booking engine.
func (m BookedMatch) Validate() error {
	if len(m.Teams) < 2 {
		return fmt.Errorf("%w: a match needs at least two teams", ErrMalformedCard)
	}
	seen := make(map[string]struct{})
	for ti, team := range m.Teams {
		if len(team) == 0 {
			return fmt.Errorf("%w: team %d is empty", ErrMalformedCard, ti+1)
		}
		for _, name := range team {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("%w: blank participant in team %d", ErrMalformedCard, ti+1)
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("%w: %q appears twice", ErrMalformedCard, name)
			}
			seen[name] = struct{}{}
		}
	}
	if m.Championship != nil && strings.TrimSpace(*m.Championship) == "" {
		return fmt.Errorf("%w: empty championship title", ErrMalformedCard)
	}
	return nil
}

// EncodeMatches serializes a card's match list.
func EncodeMatches(matches []BookedMatch) (string, error) {
	if matches == nil {
		matches = []BookedMatch{}
	}
	b, err := json.Marshal(matches)
	if err != nil {
		return "", fmt.Errorf("failed to encode card data: %w", err)
	}
	return string(b), nil
}

// DecodeMatches parses card_data and validates every entry; loaded data is not trusted.
func DecodeMatches(data string) ([]BookedMatch, error) {
	var matches []BookedMatch
	if err := json.Unmarshal([]byte(data), &matches); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCard, err)
	}
	for i, m := range matches {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("match %d: %w", i+1, err)
		}
	}
	if matches == nil {
		matches = []BookedMatch{}
	}
	return matches, nil
}
