package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokecasino/events"
	"pokecasino/games"
	"pokecasino/models"
	"pokecasino/repository/memstore"
	"pokecasino/service"
)

// fixedDirectory serves a canned snapshot so tests never hit the network
type fixedDirectory struct{}

func (fixedDirectory) Fetch(ctx context.Context, id int) (*models.PokemonInfo, error) {
	return &models.PokemonInfo{
		ID:     id,
		Name:   "pikachu",
		Height: 0.4,
		Weight: 6.0,
		Types:  []string{"electric"},
	}, nil
}

// newTestServer wires the full service stack over the in-memory store with a
// deterministic game engine.
func newTestServer(t *testing.T, seed int64) *httptest.Server {
	t.Helper()

	factory := memstore.NewUnitOfWorkFactory(memstore.NewStore(), events.NewBus())

	server := NewServer(
		service.NewUserService(factory),
		service.NewGamblingService(factory, games.NewEngineWithSeed(seed)),
		service.NewPokemonService(factory, fixedDirectory{}),
		service.NewTournamentService(factory),
		service.NewStatsService(factory),
		service.NewGamblingLogService(factory),
	)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func createTestUser(t *testing.T, baseURL, username string) *models.User {
	t.Helper()
	resp := postJSON(t, baseURL+"/api/users", map[string]any{"username": username})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user models.User
	decodeInto(t, resp, &user)
	return &user
}

func TestAPI_Health(t *testing.T) {
	ts := newTestServer(t, 1)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeInto(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_CreateUser_DefaultBalance(t *testing.T) {
	ts := newTestServer(t, 1)

	user := createTestUser(t, ts.URL, "ash")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ash", user.Username)
	assert.Equal(t, int64(1000), user.PokecoinBalance)
}

func TestAPI_CreateUser_Duplicate(t *testing.T) {
	ts := newTestServer(t, 1)
	createTestUser(t, ts.URL, "ash")

	resp := postJSON(t, ts.URL+"/api/users", map[string]any{"username": "ash"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decodeInto(t, resp, &body)
	assert.NotEmpty(t, body["message"])
}

func TestAPI_GetUser_NotFound(t *testing.T) {
	ts := newTestServer(t, 1)

	resp, err := http.Get(ts.URL + "/api/users/does-not-exist")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	decodeInto(t, resp, &body)
	assert.NotEmpty(t, body["message"])
}

func TestAPI_WinningCoinflipSettlesBalance(t *testing.T) {
	const seed = 42

	// Replay the seed to learn which side the first flip lands on, then bet
	// on that side against an identically seeded server.
	probe := games.NewEngineWithSeed(seed)
	first, err := probe.Play(models.GameTypeCoinflip, 100, games.CoinHeads)
	require.NoError(t, err)
	winningSide := first.GameData["outcome"].(string)

	ts := newTestServer(t, seed)
	user := createTestUser(t, ts.URL, "ash")

	resp := postJSON(t, ts.URL+"/api/gambling/play", map[string]any{
		"userId":   user.ID,
		"gameType": "coinflip",
		"bet":      100,
		"choice":   winningSide,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var outcome models.PlayOutcome
	decodeInto(t, resp, &outcome)
	assert.Equal(t, models.GameResultWin, outcome.Record.Result)
	assert.Equal(t, int64(200), outcome.Record.Payout)
	assert.Equal(t, int64(1100), outcome.NewBalance)

	// The win is a net +100 on the lifetime totals
	var fresh models.User
	getResp, err := http.Get(ts.URL + "/api/users/" + user.ID)
	require.NoError(t, err)
	decodeInto(t, getResp, &fresh)
	assert.Equal(t, int64(1100), fresh.PokecoinBalance)
	assert.Equal(t, int64(100), fresh.TotalEarned)
	assert.Equal(t, int64(0), fresh.TotalSpent)

	history, err := http.Get(ts.URL + "/api/gambling/history/" + user.ID)
	require.NoError(t, err)
	var records []*models.GameRecord
	decodeInto(t, history, &records)
	require.Len(t, records, 1)
	assert.Equal(t, models.GameTypeCoinflip, records[0].GameType)
}

func TestAPI_Play_InsufficientBalance(t *testing.T) {
	ts := newTestServer(t, 1)
	user := createTestUser(t, ts.URL, "ash")

	resp := postJSON(t, ts.URL+"/api/gambling/play", map[string]any{
		"userId":   user.ID,
		"gameType": "slots",
		"bet":      5000,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decodeInto(t, resp, &body)
	assert.NotEmpty(t, body["message"])
}

func TestAPI_Play_UnknownGame(t *testing.T) {
	ts := newTestServer(t, 1)
	user := createTestUser(t, ts.URL, "ash")

	resp := postJSON(t, ts.URL+"/api/gambling/play", map[string]any{
		"userId":   user.ID,
		"gameType": "poker",
		"bet":      100,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_TournamentLifecycle(t *testing.T) {
	ts := newTestServer(t, 1)

	resp := postJSON(t, ts.URL+"/api/tournaments", map[string]any{
		"name": "battle royale",
		"size": 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tournament models.Tournament
	decodeInto(t, resp, &tournament)
	assert.Equal(t, models.TournamentStatusRegistration, tournament.Status)

	// Fill the bracket
	var last *models.User
	for i := 0; i < 4; i++ {
		user := createTestUser(t, ts.URL, fmt.Sprintf("player%d", i))
		joinResp := postJSON(t, ts.URL+"/api/tournaments/"+tournament.ID+"/join", map[string]any{"userId": user.ID})
		require.Equal(t, http.StatusOK, joinResp.StatusCode)
		joinResp.Body.Close()
		last = user
	}

	// A fifth entrant bounces off the full bracket
	extra := createTestUser(t, ts.URL, "latecomer")
	fullResp := postJSON(t, ts.URL+"/api/tournaments/"+tournament.ID+"/join", map[string]any{"userId": extra.ID})
	assert.Equal(t, http.StatusBadRequest, fullResp.StatusCode)
	var body map[string]string
	decodeInto(t, fullResp, &body)
	assert.NotEmpty(t, body["message"])

	// Start and complete with an explicit winner
	startResp := postJSON(t, ts.URL+"/api/tournaments/"+tournament.ID+"/start", map[string]any{"winnerId": last.ID})
	require.Equal(t, http.StatusOK, startResp.StatusCode)
	var completed models.Tournament
	decodeInto(t, startResp, &completed)
	assert.Equal(t, models.TournamentStatusCompleted, completed.Status)
	require.NotNil(t, completed.WinnerID)
	assert.Equal(t, last.ID, *completed.WinnerID)
}

func TestAPI_ListTournaments_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t, 1)

	resp, err := http.Get(ts.URL + "/api/tournaments")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var tournaments []*models.Tournament
	decodeInto(t, resp, &tournaments)
	assert.NotNil(t, tournaments)
	assert.Empty(t, tournaments)
}

func TestAPI_PokemonRoll(t *testing.T) {
	ts := newTestServer(t, 1)
	user := createTestUser(t, ts.URL, "ash")

	resp := postJSON(t, ts.URL+"/api/pokemon/roll", map[string]any{
		"userId":      user.ID,
		"pokemonId":   25,
		"pokemonName": "pikachu",
		"pokemonData": map[string]any{"types": []string{"electric"}},
		"cost":        100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var roll models.PokemonRoll
	decodeInto(t, resp, &roll)
	assert.Equal(t, 25, roll.PokemonID)

	var fresh models.User
	getResp, err := http.Get(ts.URL + "/api/users/" + user.ID)
	require.NoError(t, err)
	decodeInto(t, getResp, &fresh)
	assert.Equal(t, int64(900), fresh.PokecoinBalance)

	histResp, err := http.Get(ts.URL + "/api/pokemon/rolls/" + user.ID)
	require.NoError(t, err)
	var rolls []*models.PokemonRoll
	decodeInto(t, histResp, &rolls)
	require.Len(t, rolls, 1)
	assert.Equal(t, "pikachu", rolls[0].PokemonName)
}

func TestAPI_GamblingLogsAndLeaderboards(t *testing.T) {
	ts := newTestServer(t, 1)
	winner := createTestUser(t, ts.URL, "ash")
	loser := createTestUser(t, ts.URL, "gary")

	logResp := postJSON(t, ts.URL+"/api/gambling/logs", map[string]any{
		"winnerId": winner.ID,
		"loserId":  loser.ID,
		"loggedBy": winner.ID,
	})
	require.Equal(t, http.StatusCreated, logResp.StatusCode)
	logResp.Body.Close()

	recentResp, err := http.Get(ts.URL + "/api/gambling/logs?limit=5")
	require.NoError(t, err)
	var logs []*models.GamblingLog
	decodeInto(t, recentResp, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, winner.ID, logs[0].WinnerID)

	wealthResp, err := http.Get(ts.URL + "/api/leaderboard/wealth")
	require.NoError(t, err)
	var wealth []*models.User
	decodeInto(t, wealthResp, &wealth)
	require.Len(t, wealth, 2)
	assert.Equal(t, int64(1000), wealth[0].PokecoinBalance)
}

func TestAPI_AdminAdjustBalance(t *testing.T) {
	ts := newTestServer(t, 1)
	user := createTestUser(t, ts.URL, "ash")

	resp := postJSON(t, ts.URL+"/api/admin/users/"+user.ID+"/balance", map[string]any{"amount": 500})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	decodeInto(t, resp, &updated)
	assert.Equal(t, int64(1500), updated.PokecoinBalance)
}

func TestAPI_InvalidJSONBody(t *testing.T) {
	ts := newTestServer(t, 1)

	resp, err := http.Post(ts.URL+"/api/users", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decodeInto(t, resp, &body)
	assert.Equal(t, "invalid request body", body["message"])
}
