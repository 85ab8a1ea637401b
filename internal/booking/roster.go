package booking

import (
	"universe-manager/internal/domain"
)

// Entrant is the part of a wrestler the engine needs for pooling and eligibility.
type Entrant struct {
	Name   string
	Brand  string
	Gender string
}

// Title is the part of a championship the engine needs.
type Title struct {
	Title  string
	Brand  string
	Gender string
	Holder string
}

// Eligible reports whether e may contend for t.
func (t Title) Eligible(e Entrant) bool {
	return e.Gender == t.Gender && (t.Brand == domain.BrandAll || e.Brand == t.Brand)
}

// Roster is an immutable snapshot of wrestlers and titles, built per operation by the caller.
type Roster struct {
	entrants map[string]Entrant
	names    []string
	titles   map[string]Title
}

func NewRoster(entrants []Entrant, titles []Title) *Roster {
	r := &Roster{
		entrants: make(map[string]Entrant, len(entrants)),
		names:    make([]string, 0, len(entrants)),
		titles:   make(map[string]Title, len(titles)),
	}
	for _, e := range entrants {
		if _, dup := r.entrants[e.Name]; dup {
			continue
		}
		r.entrants[e.Name] = e
		r.names = append(r.names, e.Name)
	}
	domain.SortNames(r.names)
	for _, t := range titles {
		r.titles[t.Title] = t
	}
	return r
}

// Names lists wrestlers admitted by the brand filter in sort order.
func (r *Roster) Names(brand string) []string {
	out := make([]string, 0, len(r.names))
	for _, n := range r.names {
		if domain.BrandAccepts(brand, r.entrants[n].Brand) {
			out = append(out, n)
		}
	}
	return out
}

func (r *Roster) Entrant(name string) (Entrant, bool) {
	e, ok := r.entrants[name]
	return e, ok
}

func (r *Roster) Title(title string) (Title, bool) {
	t, ok := r.titles[title]
	return t, ok
}

// brandAccepts applies the return-to-pool rule. Names missing from the roster only pass an "All" filter.
func (r *Roster) brandAccepts(filter, name string) bool {
	if filter == domain.BrandAll {
		return true
	}
	e, ok := r.entrants[name]
	return ok && e.Brand == filter
}
