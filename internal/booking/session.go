// Package booking holds the match pool and card-building state of one booking session.
//
// A Session owns its pool, slot selections and booked matches. Operations that need roster
// data take a *Roster snapshot from the caller; the package performs no I/O.
package booking

import (
	"fmt"
	"slices"

	"universe-manager/internal/domain"
)

// Entry is a booked match plus its in-session resolution state.
type Entry struct {
	Match    domain.BookedMatch
	Resolved bool
	Winner   string
	Winners  []string
}

// Outcome is a validated result that has not yet been applied to the session.
type Outcome struct {
	Index        int
	MatchNumber  int
	WinnerLabel  string
	Winners      []string
	Losers       []string
	Style        string
	Championship string
}

type Session struct {
	brand        string
	championship string
	style        string
	format       Format
	slots        []string
	pool         []string
	booked       []Entry
}

// NewSession starts with the "All" brand filter and a singles (2 / 1 v 1) format.
func NewSession(r *Roster) *Session {
	s := &Session{
		brand:  domain.BrandAll,
		format: Format{Total: 2, Shape: Shapes(2)[0]},
		slots:  make([]string, 2),
	}
	s.rebuildPool(r)
	return s
}

func (s *Session) Brand() string        { return s.brand }
func (s *Session) Championship() string { return s.championship }
func (s *Session) Style() string        { return s.style }

func (s *Session) Format() Format {
	return Format{Total: s.format.Total, Shape: slices.Clone(s.format.Shape)}
}

func (s *Session) Pool() []string  { return slices.Clone(s.pool) }
func (s *Session) Slots() []string { return slices.Clone(s.slots) }

func (s *Session) Booked() []Entry {
	out := make([]Entry, len(s.booked))
	for i, e := range s.booked {
		out[i] = Entry{Match: e.Match.Clone(), Resolved: e.Resolved, Winner: e.Winner, Winners: slices.Clone(e.Winners)}
	}
	return out
}

// Matches returns the booked list without resolution state, as it is archived.
func (s *Session) Matches() []domain.BookedMatch {
	out := make([]domain.BookedMatch, len(s.booked))
	for i, e := range s.booked {
		out[i] = e.Match.Clone()
	}
	return out
}

func (s *Session) InPool(name string) bool {
	return slices.Contains(s.pool, name)
}

// SetBrandFilter rebuilds the pool for brand and clears every slot.
func (s *Session) SetBrandFilter(r *Roster, brand string) error {
	brand, err := domain.OneOf("brand", brand, domain.Brands)
	if err != nil {
		return err
	}
	s.brand = brand
	if s.championship != "" {
		t, ok := r.Title(s.championship)
		if !ok || !s.titleListed(t) {
			s.championship = ""
		}
	}
	s.clearSlots()
	s.rebuildPool(r)
	return nil
}

// SetChampionship selects the title contested by the next match, or clears it when title is empty.
// Current holders are seated in the opening slots.
func (s *Session) SetChampionship(r *Roster, title string) error {
	if title == "" {
		s.championship = ""
		s.clearSlots()
		s.rebuildPool(r)
		return nil
	}
	t, ok := r.Title(title)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrChampionshipNotFound, title)
	}
	if !s.titleListed(t) {
		return fmt.Errorf("%w: %q is not a %s title", domain.ErrInvalidValue, title, s.brand)
	}

	s.championship = title
	s.clearSlots()
	s.rebuildPool(r)

	holders := domain.SplitTeamLabel(t.Holder)
	if len(holders) > s.format.Shape[0] {
		if shape, ok := shapeWithFirstTeam(len(holders)); ok {
			s.format = Format{Total: shape.Total(), Shape: shape}
			s.slots = make([]string, shape.Total())
		}
	}
	slot := 0
	for _, h := range holders {
		if slot >= len(s.slots) {
			break
		}
		if !s.InPool(h) {
			continue
		}
		s.slots[slot] = h
		s.removeFromPool(h)
		slot++
	}
	return nil
}

// SetStyle sets the style tag recorded on the next committed match.
func (s *Session) SetStyle(style string) {
	s.style = style
}

// SelectFormat exposes total slots partitioned by shape. A nil shape picks the first legal one.
// Occupants of slots beyond the new total go back to the pool.
func (s *Session) SelectFormat(total int, shape Shape) error {
	shapes := Shapes(total)
	if len(shapes) == 0 {
		return fmt.Errorf("%w: %d participants (want %d-%d)", domain.ErrIllegalShape, total, MinParticipants, MaxParticipants)
	}
	chosen := shapes[0]
	if shape != nil {
		i := slices.IndexFunc(shapes, shape.Equal)
		if i < 0 {
			return fmt.Errorf("%w: %s for %d", domain.ErrIllegalShape, shape, total)
		}
		chosen = shapes[i]
	}

	var dropped []string
	if len(s.slots) > total {
		dropped = s.slots[total:]
	}
	next := make([]string, total)
	copy(next, s.slots)
	s.slots = next
	s.format = Format{Total: total, Shape: chosen}
	for _, name := range dropped {
		if name != "" {
			s.addToPool(name)
		}
	}
	return nil
}

// AssignParticipant seats name in slot, taking it out of the pool.
func (s *Session) AssignParticipant(slot int, name string) error {
	if slot < 0 || slot >= len(s.slots) {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, slot)
	}
	if s.slots[slot] != "" {
		return fmt.Errorf("%w: slot %d holds %q", domain.ErrSlotFilled, slot, s.slots[slot])
	}
	if !s.InPool(name) {
		return fmt.Errorf("%w: %q", domain.ErrNotInPool, name)
	}
	s.slots[slot] = name
	s.removeFromPool(name)
	return nil
}

// ClearSlot empties slot and returns its occupant to the pool.
func (s *Session) ClearSlot(slot int) error {
	if slot < 0 || slot >= len(s.slots) {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, slot)
	}
	if name := s.slots[slot]; name != "" {
		s.slots[slot] = ""
		s.addToPool(name)
	}
	return nil
}

// CommitMatch books the seated participants as a new match at the end of the card.
func (s *Session) CommitMatch() (domain.BookedMatch, error) {
	for i, name := range s.slots {
		if name == "" {
			return domain.BookedMatch{}, fmt.Errorf("%w: slot %d", domain.ErrEmptySlot, i)
		}
	}
	m := domain.BookedMatch{
		Teams: s.format.Partition(s.slots),
		Style: s.style,
	}
	if s.championship != "" {
		title := s.championship
		m.Championship = &title
	}
	s.booked = append(s.booked, Entry{Match: m})
	s.slots = make([]string, s.format.Total)
	return m.Clone(), nil
}

// ReorderMatch swaps match index with its neighbor in direction (-1 up, +1 down).
// Moving past either end of the card is a no-op.
func (s *Session) ReorderMatch(index, direction int) error {
	if direction != -1 && direction != 1 {
		return domain.ErrInvalidDirection
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}
	target := index + direction
	if target < 0 || target >= len(s.booked) {
		return nil
	}
	if s.booked[index].Resolved || s.booked[target].Resolved {
		return fmt.Errorf("%w: cannot move match %d", domain.ErrMatchResolved, index+1)
	}
	s.booked[index], s.booked[target] = s.booked[target], s.booked[index]
	return nil
}

// RemoveMatch deletes an unresolved match and returns its participants to the pool.
// Matches after a resolved one stay put, since removing them would renumber a recorded result.
func (s *Session) RemoveMatch(r *Roster, index int) (domain.BookedMatch, error) {
	if err := s.checkIndex(index); err != nil {
		return domain.BookedMatch{}, err
	}
	e := s.booked[index]
	if e.Resolved {
		return domain.BookedMatch{}, fmt.Errorf("%w: cannot remove match %d", domain.ErrMatchResolved, index+1)
	}
	for i := index + 1; i < len(s.booked); i++ {
		if s.booked[i].Resolved {
			return domain.BookedMatch{}, fmt.Errorf("%w: removing match %d would renumber match %d", domain.ErrMatchResolved, index+1, i+1)
		}
	}
	s.booked = slices.Delete(s.booked, index, index+1)
	s.returnToPool(r, e.Match.Participants())
	return e.Match, nil
}

// ClearCard drops every booked match and returns all participants to the pool.
func (s *Session) ClearCard(r *Roster) {
	var names []string
	for _, e := range s.booked {
		names = append(names, e.Match.Participants()...)
	}
	s.booked = nil
	s.returnToPool(r, names)
}

// PrepareResult validates a result for match index without changing the session.
func (s *Session) PrepareResult(index int, winnerLabel string) (Outcome, error) {
	if err := s.checkIndex(index); err != nil {
		return Outcome{}, err
	}
	e := s.booked[index]
	if e.Resolved {
		return Outcome{}, fmt.Errorf("%w: match %d", domain.ErrMatchResolved, index+1)
	}

	var winners []string
	found := false
	for _, team := range e.Match.Teams {
		if domain.TeamLabel(team) == winnerLabel {
			winners = slices.Clone(team)
			found = true
			break
		}
	}
	if !found {
		return Outcome{}, fmt.Errorf("%w: %q", domain.ErrUnknownWinner, winnerLabel)
	}

	var losers []string
	for _, p := range e.Match.Participants() {
		if !slices.Contains(winners, p) {
			losers = append(losers, p)
		}
	}

	return Outcome{
		Index:        index,
		MatchNumber:  index + 1,
		WinnerLabel:  winnerLabel,
		Winners:      winners,
		Losers:       losers,
		Style:        e.Match.Style,
		Championship: e.Match.ChampionshipTitle(),
	}, nil
}

// CompleteResult marks the match resolved once the outcome has been persisted
// and sends the losers back to the pool.
func (s *Session) CompleteResult(r *Roster, o Outcome) error {
	if err := s.checkIndex(o.Index); err != nil {
		return err
	}
	if s.booked[o.Index].Resolved {
		return fmt.Errorf("%w: match %d", domain.ErrMatchResolved, o.MatchNumber)
	}
	s.booked[o.Index].Resolved = true
	s.booked[o.Index].Winner = o.WinnerLabel
	s.booked[o.Index].Winners = slices.Clone(o.Winners)
	s.returnToPool(r, o.Losers)
	return nil
}

// ReplaceBooked swaps in a loaded card wholesale. Loaded matches start unresolved.
func (s *Session) ReplaceBooked(r *Roster, matches []domain.BookedMatch) error {
	seen := make(map[string]int)
	for i, m := range matches {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("match %d: %w", i+1, err)
		}
		for _, p := range m.Participants() {
			if prev, dup := seen[p]; dup {
				return fmt.Errorf("%w: %q is booked in matches %d and %d", domain.ErrMalformedCard, p, prev, i+1)
			}
			seen[p] = i + 1
		}
	}
	s.booked = make([]Entry, len(matches))
	for i, m := range matches {
		s.booked[i] = Entry{Match: m.Clone()}
	}
	s.clearSlots()
	s.rebuildPool(r)
	return nil
}

func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= len(s.booked) {
		return fmt.Errorf("%w: index %d", domain.ErrMatchNotFound, index)
	}
	return nil
}

func (s *Session) titleListed(t Title) bool {
	return t.Brand == domain.BrandAll || domain.BrandAccepts(s.brand, t.Brand)
}

// engaged holds names that may not re-enter the pool: participants of unresolved
// matches and winners of resolved ones.
func (s *Session) engaged() map[string]struct{} {
	out := make(map[string]struct{})
	for _, e := range s.booked {
		if !e.Resolved {
			for _, p := range e.Match.Participants() {
				out[p] = struct{}{}
			}
			continue
		}
		for _, w := range e.Winners {
			out[w] = struct{}{}
		}
	}
	return out
}

func (s *Session) rebuildPool(r *Roster) {
	engaged := s.engaged()
	title := s.titleFilter(r)
	pool := make([]string, 0)
	for _, name := range r.Names(s.brand) {
		if _, busy := engaged[name]; busy {
			continue
		}
		if slices.Contains(s.slots, name) {
			continue
		}
		if !eligibleFor(r, title, name) {
			continue
		}
		pool = append(pool, name)
	}
	s.pool = pool
}

// titleFilter returns the selected championship, or nil when the pool is not title-filtered.
func (s *Session) titleFilter(r *Roster) *Title {
	if s.championship == "" {
		return nil
	}
	if t, ok := r.Title(s.championship); ok {
		return &t
	}
	return nil
}

func eligibleFor(r *Roster, title *Title, name string) bool {
	if title == nil {
		return true
	}
	e, _ := r.Entrant(name)
	return title.Eligible(e)
}

func (s *Session) returnToPool(r *Roster, names []string) {
	engaged := s.engaged()
	title := s.titleFilter(r)
	for _, name := range names {
		if _, busy := engaged[name]; busy {
			continue
		}
		if !r.brandAccepts(s.brand, name) || !eligibleFor(r, title, name) {
			continue
		}
		s.addToPool(name)
	}
}

func (s *Session) addToPool(name string) {
	if s.InPool(name) || slices.Contains(s.slots, name) {
		return
	}
	s.pool = append(s.pool, name)
	domain.SortNames(s.pool)
}

func (s *Session) removeFromPool(name string) {
	if i := slices.Index(s.pool, name); i >= 0 {
		s.pool = slices.Delete(s.pool, i, i+1)
	}
}

func (s *Session) clearSlots() {
	s.slots = make([]string, s.format.Total)
}

// View is a read-only copy of the session state.
type View struct {
	Brand        string
	Championship string
	Style        string
	Format       Format
	Slots        []string
	Pool         []string
	Booked       []Entry
}

func (s *Session) Snapshot() View {
	return View{
		Brand:        s.brand,
		Championship: s.championship,
		Style:        s.style,
		Format:       s.Format(),
		Slots:        s.Slots(),
		Pool:         s.Pool(),
		Booked:       s.Booked(),
	}
}
