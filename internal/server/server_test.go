package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universe-manager/internal/api"
	"universe-manager/internal/database"
	"universe-manager/internal/db"
	"universe-manager/internal/metrics"
	"universe-manager/internal/middleware"
	"universe-manager/internal/portrait"
	"universe-manager/internal/repository"
	"universe-manager/internal/service"
	"universe-manager/internal/settings"
)

type noFetch struct{}

func (noFetch) Fetch(context.Context, string) (*api.Image, error) {
	return nil, api.ErrFetchFailed
}

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	sqlDB, err := database.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	log := zerolog.Nop()
	q := db.New(sqlDB)
	wrestlers := repository.NewWrestlerRepository(sqlDB, q, log)
	records := repository.NewRecordRepository(sqlDB, q, log)
	titles := repository.NewChampionshipRepository(sqlDB, q, log)

	doc, err := settings.Open(filepath.Join(t.TempDir(), "settings.toml"), log)
	require.NoError(t, err)
	blobs, err := portrait.NewFS(t.TempDir())
	require.NoError(t, err)

	m := metrics.New()
	hub := NewHub(log)
	roster := service.NewRosterService(wrestlers, records, titles, hub, log)
	cards := service.NewCardService(repository.NewCardRepository(sqlDB, q, log), repository.NewHistoryRepository(sqlDB, q, log), hub, log)
	srv := New(
		roster,
		service.NewChampionshipService(titles, wrestlers, hub, log),
		service.NewStableService(repository.NewStableRepository(sqlDB, q, log), hub, log),
		service.NewBookingService(wrestlers, titles, repository.NewResultRepository(sqlDB, q, log), cards, doc, m, hub, log),
		cards,
		service.NewSettingsService(doc, hub, log),
		service.NewPortraitService(blobs, noFetch{}, roster, m, log),
		hub,
		m,
		log,
	)
	return srv, srv.Routes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func addWrestler(t *testing.T, h http.Handler, name, gender string) {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/wrestlers", map[string]string{
		"name": name, "gender": gender, "alignment": "Face", "brand": "RAW",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "universe_http_requests_total")
}

func TestWrestlerErrorsMapToStatus(t *testing.T) {
	_, h := newTestServer(t)
	addWrestler(t, h, "Alice", "Female")

	rec := do(t, h, http.MethodPost, "/api/wrestlers", map[string]string{
		"name": "Alice", "gender": "Female", "alignment": "Face", "brand": "RAW",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decode[errorBody](t, rec)
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), body.RequestID)

	rec = do(t, h, http.MethodPost, "/api/wrestlers", map[string]string{"name": "Bob"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/wrestlers", map[string]any{"name": "Bob", "extra": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/wrestlers/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/wrestlers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/wrestlers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]wrestlerJSON](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].Name)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	_, h := newTestServer(t)
	addWrestler(t, h, "Alice", "Female")
	addWrestler(t, h, "Bob", "Male")

	rec := do(t, h, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	sess := decode[sessionJSON](t, rec)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, "1 v 1", sess.Shape)
	base := "/api/sessions/" + sess.ID

	rec = do(t, h, http.MethodPut, base+"/slots/0", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, h, http.MethodPut, base+"/slots/0", map[string]string{"name": "Bob"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPut, base+"/slots/1", map[string]string{"name": "Bob"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/matches", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sess = decode[sessionJSON](t, rec)
	require.Len(t, sess.Booked, 1)
	assert.Equal(t, [][]string{{"Alice"}, {"Bob"}}, sess.Booked[0].Teams)

	rec = do(t, h, http.MethodPost, base+"/cards", map[string]string{"name": "Monday Night", "date": "2024-03-09"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cardID := decode[map[string]int64](t, rec)["id"]

	rec = do(t, h, http.MethodPost, base+"/matches/0/result", map[string]string{"winner": "Alice", "date": "2024-03-09"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sess = decode[sessionJSON](t, rec)
	assert.True(t, sess.Booked[0].Resolved)
	assert.Equal(t, []string{"Bob"}, sess.Pool)

	rec = do(t, h, http.MethodPost, base+"/matches/0/result", map[string]string{"winner": "Alice", "date": "2024-03-09"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/cards/"+strconv.FormatInt(cardID, 10), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	details := decode[cardDetailsJSON](t, rec)
	require.Len(t, details.Matches, 1)
	assert.Equal(t, "Alice", details.Matches[0].Winner)
	assert.Equal(t, "Bob", details.Matches[0].Losers)

	rec = do(t, h, http.MethodGet, "/api/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]recordJSON](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/api/history?date=2024-03-09", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]historyJSON](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/api/history?date=March", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionFormatAndStyle(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/sessions", nil)
	base := "/api/sessions/" + decode[sessionJSON](t, rec).ID

	rec = do(t, h, http.MethodPut, base+"/format", map[string]any{"total": 4, "shape": "2 v 2"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sess := decode[sessionJSON](t, rec)
	assert.Equal(t, "2 v 2", sess.Shape)
	assert.Equal(t, []string{"1 v 1 v 1 v 1", "2 v 2", "1 v 3"}, sess.Shapes)

	rec = do(t, h, http.MethodPut, base+"/format", map[string]any{"total": 4, "shape": "3 v 1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, base+"/style", map[string]string{"style": "Ladder"})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPut, base+"/style", map[string]string{"style": "Lumberjack"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChampionshipRoutes(t *testing.T) {
	_, h := newTestServer(t)
	addWrestler(t, h, "Alice", "Female")

	rec := do(t, h, http.MethodPost, "/api/championships", map[string]string{
		"title": "Women's Title", "brand": "RAW", "type": "Singles", "gender": "Female",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/championships/Women%27s%20Title/holder", map[string]any{
		"holders": []string{"Alice"}, "date": "2024-01-02",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c := decode[championshipJSON](t, rec)
	assert.Equal(t, "Alice", c.CurrentHolder)
	require.NotNil(t, c.WonOn)
	assert.Equal(t, "2024-01-02", *c.WonOn)

	rec = do(t, h, http.MethodGet, "/api/championships/Women%27s%20Title/eligible", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]wrestlerJSON](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/api/wrestlers/by-name/Alice/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Women's Title"}, decode[profileJSON](t, rec).Titles)

	rec = do(t, h, http.MethodDelete, "/api/championships/Women%27s%20Title/holder", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodDelete, "/api/championships/Missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettingsRoutes(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/settings/styles", map[string]string{"style": "Cage"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[settingsJSON](t, rec).MatchStyles, "Cage")

	rec = do(t, h, http.MethodPut, "/api/settings/font", map[string]string{"font": "Papyrus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/settings/styles", map[string]string{"style": "Nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPortraitRoutes(t *testing.T) {
	_, h := newTestServer(t)
	addWrestler(t, h, "Alice", "Female")

	req := httptest.NewRequest(http.MethodPut, "/api/wrestlers/by-name/Alice/portrait?filename=a.png", bytes.NewReader([]byte("png")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "alice.png", decode[wrestlerJSON](t, rec).ImagePath)

	rec = do(t, h, http.MethodGet, "/api/wrestlers/by-name/Alice/portrait", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodPost, "/api/wrestlers/by-name/Alice/portrait/import", map[string]string{"url": "https://x.test/a.png"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
