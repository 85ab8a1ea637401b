package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"universe-manager/internal/database"
	"universe-manager/internal/db"
	"universe-manager/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repos struct {
	sql          *sql.DB
	wrestlers    *WrestlerRepository
	records      *RecordRepository
	championship *ChampionshipRepository
	stables      *StableRepository
	cards        *CardRepository
	history      *HistoryRepository
	results      *ResultRepository
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	sqlDB, err := database.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	log := zerolog.Nop()
	return repos{
		sql:          sqlDB,
		wrestlers:    NewWrestlerRepository(sqlDB, q, log),
		records:      NewRecordRepository(sqlDB, q, log),
		championship: NewChampionshipRepository(sqlDB, q, log),
		stables:      NewStableRepository(sqlDB, q, log),
		cards:        NewCardRepository(sqlDB, q, log),
		history:      NewHistoryRepository(sqlDB, q, log),
		results:      NewResultRepository(sqlDB, q, log),
	}
}

func addWrestler(t *testing.T, r repos, name, gender, brand string) int64 {
	t.Helper()
	id, err := r.wrestlers.Create(context.Background(), &domain.Wrestler{
		Name: name, Gender: gender, Alignment: domain.AlignmentFace, Brand: brand,
	})
	require.NoError(t, err)
	return id
}

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWrestlerCreateRejectsDuplicateName(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	addWrestler(t, r, "Alice", domain.GenderFemale, domain.BrandRAW)

	_, err := r.wrestlers.Create(ctx, &domain.Wrestler{
		Name: "Alice", Gender: domain.GenderMale, Alignment: domain.AlignmentHeel, Brand: domain.BrandNXT,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateWrestler)

	all, err := r.wrestlers.List(ctx, domain.BrandAll)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.GenderFemale, all[0].Gender)
}

func TestWrestlerListSortsAndFilters(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	addWrestler(t, r, `"Zed"`, domain.GenderMale, domain.BrandRAW)
	addWrestler(t, r, "bob", domain.GenderMale, domain.BrandNXT)
	addWrestler(t, r, "Alice", domain.GenderFemale, domain.BrandRAW)

	all, err := r.wrestlers.List(ctx, domain.BrandAll)
	require.NoError(t, err)
	var names []string
	for _, w := range all {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"Alice", "bob", `"Zed"`}, names)

	rawOnly, err := r.wrestlers.List(ctx, domain.BrandRAW)
	require.NoError(t, err)
	assert.Len(t, rawOnly, 2)

	stats, err := r.wrestlers.Stats(ctx, domain.BrandRAW)
	require.NoError(t, err)
	assert.Equal(t, domain.RosterStats{Brand: domain.BrandRAW, Total: 2, Face: 2, Male: 1, Female: 1}, stats)

	empty, err := r.wrestlers.Stats(ctx, domain.BrandSmackDown)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
}

func TestWrestlerRenameMovesRecord(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	aliceID := addWrestler(t, r, "Alice", domain.GenderFemale, domain.BrandRAW)
	addWrestler(t, r, "Bob", domain.GenderMale, domain.BrandRAW)

	require.NoError(t, r.results.Record(ctx, Result{
		Date: day("2024-03-01"), MatchNumber: 1, WinnerLabel: "Alice",
		Winners: []string{"Alice"}, Losers: []string{"Bob"},
	}))

	w, err := r.wrestlers.Get(ctx, aliceID)
	require.NoError(t, err)
	w.Name = "Alicia"
	require.NoError(t, r.wrestlers.Update(ctx, w))

	rec, err := r.records.Get(ctx, "Alicia")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Wins)
	old, err := r.records.Get(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, 0, old.Wins)

	history, err := r.history.ListByDate(ctx, day("2024-03-01"))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Alice", history[0].Winner)

	w.Name = "Bob"
	assert.ErrorIs(t, r.wrestlers.Update(ctx, w), domain.ErrDuplicateWrestler)

	w.ID = 999
	assert.ErrorIs(t, r.wrestlers.Update(ctx, w), domain.ErrWrestlerNotFound)
}

func TestWrestlerDeleteAndImage(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	id := addWrestler(t, r, "Alice", domain.GenderFemale, domain.BrandRAW)

	require.NoError(t, r.wrestlers.SetImage(ctx, "Alice", "alice.png"))
	w, err := r.wrestlers.GetByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice.png", w.ImagePath)
	assert.ErrorIs(t, r.wrestlers.SetImage(ctx, "Nobody", "x.png"), domain.ErrWrestlerNotFound)

	require.NoError(t, r.wrestlers.Delete(ctx, id))
	assert.ErrorIs(t, r.wrestlers.Delete(ctx, id), domain.ErrWrestlerNotFound)
	_, err = r.wrestlers.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrWrestlerNotFound)
}

func TestResultRecordScenario(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	addWrestler(t, r, "Alice", domain.GenderFemale, domain.BrandRAW)
	addWrestler(t, r, "Bob", domain.GenderMale, domain.BrandRAW)

	require.NoError(t, r.results.Record(ctx, Result{
		Date: day("2024-03-01"), MatchNumber: 1, WinnerLabel: "Alice",
		Winners: []string{"Alice"}, Losers: []string{"Bob"}, Style: "Ladder",
	}))

	alice, err := r.records.Get(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, domain.Record{Wrestler: "Alice", Wins: 1, Losses: 0}, alice)
	bob, err := r.records.Get(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, domain.Record{Wrestler: "Bob", Wins: 0, Losses: 1}, bob)

	history, err := r.history.ListByDate(ctx, day("2024-03-01"))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].MatchNumber)
	assert.Equal(t, "Alice", history[0].Winner)
	assert.Equal(t, "Bob", history[0].Losers)
	assert.Equal(t, "Ladder", history[0].Style)
	assert.Empty(t, history[0].Championship)
}

func TestResultCrownsFirstWinner(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	_, err := r.championship.Create(ctx, &domain.Championship{
		Title: "Tag Titles", Brand: domain.BrandRAW, Type: domain.TitleTag, Gender: domain.GenderMale,
	})
	require.NoError(t, err)

	require.NoError(t, r.results.Record(ctx, Result{
		Date: day("2024-05-10"), MatchNumber: 2, WinnerLabel: "A & B",
		Winners: []string{"A", "B"}, Losers: []string{"C", "D"}, Championship: "Tag Titles",
	}))

	c, err := r.championship.GetByTitle(ctx, "Tag Titles")
	require.NoError(t, err)
	assert.Equal(t, "A", c.CurrentHolder)
	require.NotNil(t, c.WonOn)
	assert.Equal(t, "2024-05-10", domain.FormatDate(*c.WonOn))

	history, err := r.history.ListByDate(ctx, day("2024-05-10"))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "C,D", history[0].Losers)
	assert.Equal(t, "Tag Titles", history[0].Championship)

	records, err := r.records.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, 1, records[0].Wins)

	n, err := r.records.Reset(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	b, err := r.records.Get(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, 0, b.Wins)
}

func TestChampionshipLifecycle(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	c := &domain.Championship{Title: "World Title", Brand: domain.BrandAll, Type: domain.TitleSingles, Gender: domain.GenderMale}
	_, err := r.championship.Create(ctx, c)
	require.NoError(t, err)
	_, err = r.championship.Create(ctx, c)
	assert.ErrorIs(t, err, domain.ErrDuplicateChampionship)

	won := day("2024-01-01")
	require.NoError(t, r.championship.SetHolder(ctx, "World Title", "Bob", &won))
	held, err := r.championship.HeldBy(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, held, 1)

	require.NoError(t, r.championship.Rename(ctx, "World Title", "Universal Title"))
	_, err = r.championship.GetByTitle(ctx, "World Title")
	assert.ErrorIs(t, err, domain.ErrChampionshipNotFound)
	assert.ErrorIs(t, r.championship.Rename(ctx, "World Title", "X"), domain.ErrChampionshipNotFound)

	require.NoError(t, r.championship.SetHolder(ctx, "Universal Title", "", nil))
	got, err := r.championship.GetByTitle(ctx, "Universal Title")
	require.NoError(t, err)
	assert.Empty(t, got.CurrentHolder)
	assert.Nil(t, got.WonOn)

	require.NoError(t, r.championship.Delete(ctx, "Universal Title"))
	assert.ErrorIs(t, r.championship.Delete(ctx, "Universal Title"), domain.ErrChampionshipNotFound)
}

func TestStableRoundTrip(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	id, err := r.stables.Create(ctx, &domain.Stable{Name: "The Shield", Members: []string{"Seth", "Roman", "Dean"}})
	require.NoError(t, err)

	s, err := r.stables.GetByName(ctx, "The Shield")
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, []string{"Seth", "Roman", "Dean"}, s.Members)

	s.Members = []string{"Seth", "Roman"}
	require.NoError(t, r.stables.Update(ctx, s))
	list, err := r.stables.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"Seth", "Roman"}, list[0].Members)

	require.NoError(t, r.stables.Delete(ctx, "The Shield"))
	assert.ErrorIs(t, r.stables.Delete(ctx, "The Shield"), domain.ErrStableNotFound)
}

func TestCardRoundTrip(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	title := "Women's Title"
	matches := []domain.BookedMatch{
		{Teams: [][]string{{"Alice"}, {"Bob"}}, Style: "Ladder"},
		{Teams: [][]string{{"A", "B"}, {"C", "D"}}, Championship: &title},
	}
	date := day("2024-03-01")

	id, err := r.cards.Create(ctx, &domain.Card{Name: "RAW - March 01 2024", Brand: domain.BrandRAW, Date: date, Matches: matches})
	require.NoError(t, err)
	_, err = r.cards.Create(ctx, &domain.Card{Name: "after party", Brand: domain.BrandRAW, Date: date})
	require.NoError(t, err)

	card, err := r.cards.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, matches, card.Matches)
	assert.Equal(t, date, card.Date)

	list, err := r.cards.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "after party", list[0].Name)

	dates, err := r.cards.Dates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date}, dates)

	require.NoError(t, r.cards.Delete(ctx, id))
	_, err = r.cards.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
	assert.ErrorIs(t, r.cards.Delete(ctx, id), domain.ErrCardNotFound)
}

func TestCardGetRejectsMalformedData(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	res, err := r.sql.Exec(`INSERT INTO cards (name, brand, card_date, card_data) VALUES ('bad', 'RAW', '2024-03-01', '[{"teams":[["Solo"]],"style":"","championship":null}]')`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = r.cards.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrMalformedCard)
}

func TestHistoryReset(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	require.NoError(t, r.results.Record(ctx, Result{
		Date: day("2024-03-01"), MatchNumber: 1, WinnerLabel: "Alice",
		Winners: []string{"Alice"}, Losers: []string{"Bob"},
	}))

	n, err := r.history.Reset(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	history, err := r.history.ListByDate(ctx, day("2024-03-01"))
	require.NoError(t, err)
	assert.Empty(t, history)
}
