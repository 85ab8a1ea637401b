package booking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universe-manager/internal/domain"
)

func raw(name, gender string) Entrant {
	return Entrant{Name: name, Brand: domain.BrandRAW, Gender: gender}
}

func aliceBob() *Roster {
	return NewRoster([]Entrant{
		raw("Alice", domain.GenderFemale),
		raw("Bob", domain.GenderMale),
	}, nil)
}

func bookAliceBob(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SelectFormat(2, nil))
	require.NoError(t, s.AssignParticipant(0, "Alice"))
	require.NoError(t, s.AssignParticipant(1, "Bob"))
	_, err := s.CommitMatch()
	require.NoError(t, err)
}

func TestCommitMatchScenario(t *testing.T) {
	r := aliceBob()
	s := NewSession(r)
	require.NoError(t, s.SetBrandFilter(r, domain.BrandRAW))
	assert.Equal(t, []string{"Alice", "Bob"}, s.Pool())

	require.NoError(t, s.SelectFormat(2, nil))
	assert.Equal(t, Shape{1, 1}, s.Format().Shape)
	require.NoError(t, s.AssignParticipant(0, "Alice"))
	require.NoError(t, s.AssignParticipant(1, "Bob"))

	m, err := s.CommitMatch()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Alice"}, {"Bob"}}, m.Teams)
	assert.Nil(t, m.Championship)

	assert.Empty(t, s.Pool())
	assert.Equal(t, []string{"", ""}, s.Slots())
	booked := s.Booked()
	require.Len(t, booked, 1)
	assert.Equal(t, [][]string{{"Alice"}, {"Bob"}}, booked[0].Match.Teams)
	assert.False(t, booked[0].Resolved)
}

func TestCommitMatchRequiresEverySlot(t *testing.T) {
	r := aliceBob()
	s := NewSession(r)
	require.NoError(t, s.AssignParticipant(0, "Alice"))

	_, err := s.CommitMatch()
	assert.ErrorIs(t, err, domain.ErrEmptySlot)
	assert.Empty(t, s.Booked())
	assert.Equal(t, []string{"Bob"}, s.Pool())
}

func TestPoolShrinksByTotal(t *testing.T) {
	var entrants []Entrant
	for i := 0; i < 10; i++ {
		entrants = append(entrants, raw(fmt.Sprintf("W%02d", i), domain.GenderMale))
	}
	r := NewRoster(entrants, nil)

	for total := MinParticipants; total <= MaxParticipants; total++ {
		for _, shape := range Shapes(total) {
			s := NewSession(r)
			require.NoError(t, s.SelectFormat(total, shape))
			require.Len(t, s.Slots(), total)

			before := len(s.Pool())
			for slot := 0; slot < total; slot++ {
				require.NoError(t, s.AssignParticipant(slot, s.Pool()[0]))
			}
			m, err := s.CommitMatch()
			require.NoError(t, err)
			assert.Equal(t, before-total, len(s.Pool()), "shape %s", shape)
			require.Len(t, m.Teams, len(shape))
			for i, team := range m.Teams {
				assert.Len(t, team, shape[i])
			}
		}
	}
}

func TestSelectFormatRejectsIllegalShape(t *testing.T) {
	s := NewSession(aliceBob())
	assert.ErrorIs(t, s.SelectFormat(9, nil), domain.ErrIllegalShape)
	assert.ErrorIs(t, s.SelectFormat(4, Shape{3, 1}), domain.ErrIllegalShape)
	assert.Equal(t, 2, s.Format().Total)
}

func TestSelectFormatReturnsDroppedOccupants(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("Alice", domain.GenderFemale),
		raw("Bob", domain.GenderMale),
		raw("Cara", domain.GenderFemale),
	}, nil)
	s := NewSession(r)
	require.NoError(t, s.SelectFormat(3, nil))
	require.NoError(t, s.AssignParticipant(0, "Alice"))
	require.NoError(t, s.AssignParticipant(2, "Cara"))

	require.NoError(t, s.SelectFormat(2, nil))
	assert.Equal(t, []string{"Alice", ""}, s.Slots())
	assert.Equal(t, []string{"Bob", "Cara"}, s.Pool())
}

func TestAssignParticipantErrors(t *testing.T) {
	s := NewSession(aliceBob())

	assert.ErrorIs(t, s.AssignParticipant(2, "Alice"), domain.ErrSlotOutOfRange)
	assert.ErrorIs(t, s.AssignParticipant(0, "Zed"), domain.ErrNotInPool)

	require.NoError(t, s.AssignParticipant(0, "Alice"))
	assert.ErrorIs(t, s.AssignParticipant(0, "Bob"), domain.ErrSlotFilled)
	assert.ErrorIs(t, s.AssignParticipant(1, "Alice"), domain.ErrNotInPool)
}

func TestClearSlot(t *testing.T) {
	s := NewSession(aliceBob())
	require.NoError(t, s.AssignParticipant(1, "Alice"))
	require.NoError(t, s.ClearSlot(1))
	assert.Equal(t, []string{"Alice", "Bob"}, s.Pool())
	assert.ErrorIs(t, s.ClearSlot(5), domain.ErrSlotOutOfRange)
}

func TestPoolSortOrder(t *testing.T) {
	r := NewRoster([]Entrant{
		raw(`"The Fiend"`, domain.GenderMale),
		raw("bob", domain.GenderMale),
		raw("Alice", domain.GenderFemale),
		raw("'Zed'", domain.GenderMale),
	}, nil)
	s := NewSession(r)
	assert.Equal(t, []string{"Alice", "bob", `"The Fiend"`, "'Zed'"}, s.Pool())
}

func TestRemoveMatchHonorsBrandFilter(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("Alice", domain.GenderFemale),
		{Name: "Bob", Brand: domain.BrandSmackDown, Gender: domain.GenderMale},
	}, nil)
	s := NewSession(r)
	bookAliceBob(t, s)

	require.NoError(t, s.SetBrandFilter(r, domain.BrandRAW))
	assert.Empty(t, s.Pool())

	removed, err := s.RemoveMatch(r, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, removed.Participants())
	assert.Equal(t, []string{"Alice"}, s.Pool())
	assert.Empty(t, s.Booked())

	_, err = s.RemoveMatch(r, 0)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestClearCardReturnsEveryone(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("Alice", domain.GenderFemale),
		raw("Bob", domain.GenderMale),
		raw("Cara", domain.GenderFemale),
		raw("Dan", domain.GenderMale),
	}, nil)
	s := NewSession(r)
	for _, pair := range [][2]string{{"Alice", "Bob"}, {"Cara", "Dan"}} {
		require.NoError(t, s.AssignParticipant(0, pair[0]))
		require.NoError(t, s.AssignParticipant(1, pair[1]))
		_, err := s.CommitMatch()
		require.NoError(t, err)
	}
	assert.Empty(t, s.Pool())

	s.ClearCard(r)
	assert.Empty(t, s.Booked())
	assert.Equal(t, []string{"Alice", "Bob", "Cara", "Dan"}, s.Pool())
}

func TestRecordResultFlow(t *testing.T) {
	r := aliceBob()
	s := NewSession(r)
	bookAliceBob(t, s)

	_, err := s.PrepareResult(0, "Carol")
	assert.ErrorIs(t, err, domain.ErrUnknownWinner)
	assert.False(t, s.Booked()[0].Resolved)

	o, err := s.PrepareResult(0, "Alice")
	require.NoError(t, err)
	assert.Equal(t, 1, o.MatchNumber)
	assert.Equal(t, []string{"Alice"}, o.Winners)
	assert.Equal(t, []string{"Bob"}, o.Losers)
	assert.Empty(t, o.Championship)

	require.NoError(t, s.CompleteResult(r, o))
	entry := s.Booked()[0]
	assert.True(t, entry.Resolved)
	assert.Equal(t, "Alice", entry.Winner)
	assert.Equal(t, []string{"Bob"}, s.Pool())

	_, err = s.PrepareResult(0, "Alice")
	assert.ErrorIs(t, err, domain.ErrMatchResolved)
	assert.ErrorIs(t, s.CompleteResult(r, o), domain.ErrMatchResolved)

	_, err = s.RemoveMatch(r, 0)
	assert.ErrorIs(t, err, domain.ErrMatchResolved)

	_, err = s.PrepareResult(3, "Alice")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestResolvedLosersRespectBrandFilter(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("Alice", domain.GenderFemale),
		{Name: "Bob", Brand: domain.BrandNXT, Gender: domain.GenderMale},
	}, nil)
	s := NewSession(r)
	bookAliceBob(t, s)
	require.NoError(t, s.SetBrandFilter(r, domain.BrandRAW))

	o, err := s.PrepareResult(0, "Alice")
	require.NoError(t, err)
	require.NoError(t, s.CompleteResult(r, o))
	assert.Empty(t, s.Pool())

	// winners of resolved matches stay engaged across filter changes
	require.NoError(t, s.SetBrandFilter(r, domain.BrandAll))
	assert.Equal(t, []string{"Bob"}, s.Pool())
}

func TestTagTeamResult(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("A", domain.GenderMale), raw("B", domain.GenderMale),
		raw("C", domain.GenderMale), raw("D", domain.GenderMale),
	}, nil)
	s := NewSession(r)
	require.NoError(t, s.SelectFormat(4, Shape{2, 2}))
	for i, n := range []string{"A", "B", "C", "D"} {
		require.NoError(t, s.AssignParticipant(i, n))
	}
	_, err := s.CommitMatch()
	require.NoError(t, err)

	o, err := s.PrepareResult(0, "C & D")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, o.Winners)
	assert.Equal(t, []string{"A", "B"}, o.Losers)

	_, err = s.PrepareResult(0, "D & C")
	assert.ErrorIs(t, err, domain.ErrUnknownWinner)
}

func TestReorderMatch(t *testing.T) {
	var entrants []Entrant
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		entrants = append(entrants, raw(n, domain.GenderMale))
	}
	r := NewRoster(entrants, nil)
	s := NewSession(r)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.AssignParticipant(0, s.Pool()[0]))
		require.NoError(t, s.AssignParticipant(1, s.Pool()[0]))
		_, err := s.CommitMatch()
		require.NoError(t, err)
	}
	first := func() string { return s.Booked()[0].Match.Teams[0][0] }

	require.NoError(t, s.ReorderMatch(0, -1))
	assert.Equal(t, "A", first())

	require.NoError(t, s.ReorderMatch(0, 1))
	assert.Equal(t, "C", first())
	assert.Equal(t, "A", s.Booked()[1].Match.Teams[0][0])

	require.NoError(t, s.ReorderMatch(2, 1))
	assert.Equal(t, "E", s.Booked()[2].Match.Teams[0][0])

	assert.ErrorIs(t, s.ReorderMatch(0, 2), domain.ErrInvalidDirection)
	assert.ErrorIs(t, s.ReorderMatch(5, 1), domain.ErrMatchNotFound)

	o, err := s.PrepareResult(1, "A")
	require.NoError(t, err)
	require.NoError(t, s.CompleteResult(r, o))
	assert.ErrorIs(t, s.ReorderMatch(0, 1), domain.ErrMatchResolved)
	assert.ErrorIs(t, s.ReorderMatch(2, -1), domain.ErrMatchResolved)
}

func TestSetChampionshipPrefillsHolders(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("A", domain.GenderMale), raw("B", domain.GenderMale),
		raw("C", domain.GenderMale), raw("D", domain.GenderMale),
		raw("Eve", domain.GenderFemale),
		{Name: "Finn", Brand: domain.BrandNXT, Gender: domain.GenderMale},
	}, []Title{
		{Title: "RAW Tag Titles", Brand: domain.BrandRAW, Gender: domain.GenderMale, Holder: "B & A"},
		{Title: "Women's Title", Brand: domain.BrandAll, Gender: domain.GenderFemale, Holder: "Eve"},
		{Title: "NXT Title", Brand: domain.BrandNXT, Gender: domain.GenderMale},
	})
	s := NewSession(r)

	require.NoError(t, s.SetChampionship(r, "RAW Tag Titles"))
	assert.Equal(t, Shape{2, 2}, s.Format().Shape)
	assert.Equal(t, []string{"B", "A", "", ""}, s.Slots())
	assert.Equal(t, []string{"C", "D"}, s.Pool())

	require.NoError(t, s.AssignParticipant(2, "C"))
	require.NoError(t, s.AssignParticipant(3, "D"))
	m, err := s.CommitMatch()
	require.NoError(t, err)
	require.NotNil(t, m.Championship)
	assert.Equal(t, "RAW Tag Titles", *m.Championship)
	assert.Equal(t, [][]string{{"B", "A"}, {"C", "D"}}, m.Teams)

	require.NoError(t, s.SetChampionship(r, "Women's Title"))
	assert.Equal(t, []string{"Eve", "", "", ""}, s.Slots())
	assert.Empty(t, s.Pool())

	require.NoError(t, s.SetChampionship(r, ""))
	assert.Equal(t, "", s.Championship())
	assert.Equal(t, []string{"Eve", "Finn"}, s.Pool())

	assert.ErrorIs(t, s.SetChampionship(r, "Hardcore Title"), domain.ErrChampionshipNotFound)
}

func TestBrandFilterDropsUnlistedChampionship(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("A", domain.GenderMale),
		{Name: "Finn", Brand: domain.BrandNXT, Gender: domain.GenderMale},
	}, []Title{
		{Title: "NXT Title", Brand: domain.BrandNXT, Gender: domain.GenderMale},
	})
	s := NewSession(r)
	require.NoError(t, s.SetChampionship(r, "NXT Title"))
	assert.Equal(t, []string{"Finn"}, s.Pool())

	require.NoError(t, s.SetBrandFilter(r, domain.BrandRAW))
	assert.Equal(t, "", s.Championship())
	assert.Equal(t, []string{"A"}, s.Pool())

	assert.ErrorIs(t, s.SetChampionship(r, "NXT Title"), domain.ErrInvalidValue)
	assert.ErrorIs(t, s.SetBrandFilter(r, "AEW"), domain.ErrInvalidValue)
}

func TestReplaceBooked(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("Alice", domain.GenderFemale),
		raw("Bob", domain.GenderMale),
		raw("Cara", domain.GenderFemale),
	}, nil)
	s := NewSession(r)
	require.NoError(t, s.AssignParticipant(0, "Cara"))

	title := "Women's Title"
	loaded := []domain.BookedMatch{{
		Teams:        [][]string{{"Alice"}, {"Bob"}},
		Style:        "Ladder",
		Championship: &title,
	}}
	require.NoError(t, s.ReplaceBooked(r, loaded))
	assert.Equal(t, loaded, s.Matches())
	assert.Equal(t, []string{"", ""}, s.Slots())
	assert.Equal(t, []string{"Cara"}, s.Pool())

	dup := []domain.BookedMatch{
		{Teams: [][]string{{"Alice"}, {"Bob"}}},
		{Teams: [][]string{{"Alice"}, {"Cara"}}},
	}
	assert.ErrorIs(t, s.ReplaceBooked(r, dup), domain.ErrMalformedCard)
	assert.Len(t, s.Matches(), 1)
}

func TestSnapshotIsDetached(t *testing.T) {
	r := aliceBob()
	s := NewSession(r)
	bookAliceBob(t, s)

	v := s.Snapshot()
	v.Booked[0].Match.Teams[0][0] = "Mallory"
	v.Pool = append(v.Pool, "Mallory")
	assert.Equal(t, "Alice", s.Booked()[0].Match.Teams[0][0])
	assert.Empty(t, s.Pool())
	assert.Equal(t, domain.BrandAll, v.Brand)
}

func TestRemoveMatchKeepsResolvedNumbers(t *testing.T) {
	var entrants []Entrant
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		entrants = append(entrants, raw(n, domain.GenderMale))
	}
	r := NewRoster(entrants, nil)
	s := NewSession(r)
	for _, pair := range [][2]string{{"A", "B"}, {"C", "D"}, {"E", "F"}} {
		require.NoError(t, s.AssignParticipant(0, pair[0]))
		require.NoError(t, s.AssignParticipant(1, pair[1]))
		_, err := s.CommitMatch()
		require.NoError(t, err)
	}

	o, err := s.PrepareResult(1, "C")
	require.NoError(t, err)
	require.NoError(t, s.CompleteResult(r, o))

	_, err = s.RemoveMatch(r, 0)
	assert.ErrorIs(t, err, domain.ErrMatchResolved)
	require.Len(t, s.Booked(), 3)
	assert.Equal(t, "C", s.Booked()[1].Winner)

	o, err = s.PrepareResult(2, "E")
	require.NoError(t, err)
	assert.Equal(t, 3, o.MatchNumber)

	_, err = s.RemoveMatch(r, 2)
	require.NoError(t, err)
	assert.Len(t, s.Booked(), 2)
}

func TestReturnedParticipantsRespectTitleFilter(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("A", domain.GenderMale), raw("B", domain.GenderMale),
		raw("W1", domain.GenderFemale), raw("W2", domain.GenderFemale),
	}, []Title{
		{Title: "Women's Title", Brand: domain.BrandAll, Gender: domain.GenderFemale},
	})
	s := NewSession(r)
	require.NoError(t, s.AssignParticipant(0, "A"))
	require.NoError(t, s.AssignParticipant(1, "B"))
	_, err := s.CommitMatch()
	require.NoError(t, err)

	require.NoError(t, s.SetChampionship(r, "Women's Title"))
	assert.Equal(t, []string{"W1", "W2"}, s.Pool())

	_, err = s.RemoveMatch(r, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"W1", "W2"}, s.Pool())
	assert.ErrorIs(t, s.AssignParticipant(0, "A"), domain.ErrNotInPool)

	require.NoError(t, s.SetChampionship(r, ""))
	assert.Equal(t, []string{"A", "B", "W1", "W2"}, s.Pool())
}

func TestResolvedWinnerStaysEngagedByName(t *testing.T) {
	r := NewRoster([]Entrant{
		raw("Tom & Jerry", domain.GenderMale),
		raw("G", domain.GenderMale),
	}, nil)
	s := NewSession(r)
	require.NoError(t, s.AssignParticipant(0, "Tom & Jerry"))
	require.NoError(t, s.AssignParticipant(1, "G"))
	_, err := s.CommitMatch()
	require.NoError(t, err)

	o, err := s.PrepareResult(0, "Tom & Jerry")
	require.NoError(t, err)
	require.NoError(t, s.CompleteResult(r, o))
	assert.Equal(t, []string{"Tom & Jerry"}, s.Booked()[0].Winners)

	require.NoError(t, s.SetBrandFilter(r, domain.BrandRAW))
	assert.Equal(t, []string{"G"}, s.Pool())
}
