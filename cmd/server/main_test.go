package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/config"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/engine"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/model"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/service"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/testutil"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Default()
	gs := service.NewGameService(service.NewGameManager(nil), nil)
	return NewApp(cfg, gs)
}

func do(t *testing.T, app *fiber.App, method, path, player, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	testutil.AssertNoError(t, err)
	return resp.StatusCode, out
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/game/create", "alice", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	var created struct {
		GameID string `json:"game_id"`
	}
	testutil.AssertNoError(t, json.Unmarshal(body, &created))
	return created.GameID
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp(t)
	status, _ := do(t, app, http.MethodPost, "/api/game/create", "", "")
	testutil.AssertEqual(t, status, http.StatusUnauthorized)

	status, _ = do(t, app, http.MethodPost, "/api/game/create", strings.Repeat("x", 65), "")
	testutil.AssertEqual(t, status, http.StatusBadRequest, "overlong player ID")
}

func TestClickFlow(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	for _, p := range []string{"alice", "bob"} {
		status, _ := do(t, app, http.MethodPost, "/api/game/join/"+id, p, "")
		testutil.AssertEqual(t, status, http.StatusOK, "join %s", p)
	}

	status, body := do(t, app, http.MethodPost, "/api/game/"+id+"/click", "alice", `{"row":6,"col":4}`)
	testutil.AssertEqual(t, status, http.StatusOK)

	status, body = do(t, app, http.MethodGet, "/api/game/"+id+"/moves", "alice", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	var moves []struct {
		To engine.Coordinate `json:"to"`
	}
	testutil.AssertNoError(t, json.Unmarshal(body, &moves))
	testutil.AssertEqual(t, len(moves), 2)

	status, body = do(t, app, http.MethodPost, "/api/game/"+id+"/click", "alice", `{"row":4,"col":4}`)
	testutil.AssertEqual(t, status, http.StatusOK)
	var view struct {
		ToMove engine.Color         `json:"toMove"`
		State  engine.GameState     `json:"state"`
		Board  [][]*model.PieceView `json:"board"`
	}
	testutil.AssertNoError(t, json.Unmarshal(body, &view))
	testutil.AssertEqual(t, view.ToMove, engine.Black)
	testutil.AssertEqual(t, view.State, engine.Ongoing)
	testutil.AssertEqual(t, *view.Board[4][4], model.PieceView{Type: engine.Pawn, Color: engine.White})

	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/click", "alice", `{"row":6,"col":3}`)
	testutil.AssertEqual(t, status, http.StatusConflict, "clicking out of turn")
}

func TestErrorStatuses(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodGet, "/api/game/missing", "alice", "")
	testutil.AssertEqual(t, status, http.StatusNotFound)

	id := createGame(t, app)
	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/click", "carol", `{"row":6,"col":4}`)
	testutil.AssertEqual(t, status, http.StatusForbidden)

	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/click", "alice", `not json`)
	testutil.AssertEqual(t, status, http.StatusBadRequest)

	status, _ = do(t, app, http.MethodGet, "/api/archive/missing", "alice", "")
	testutil.AssertEqual(t, status, http.StatusNotFound)

	status, _ = do(t, app, http.MethodGet, "/ws/game/"+id, "alice", "")
	testutil.AssertEqual(t, status, http.StatusUpgradeRequired)
}

func TestMatchmakingQueue(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	status, _ = do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", "")
	testutil.AssertEqual(t, status, http.StatusConflict)
	status, _ = do(t, app, http.MethodDelete, "/api/game/matchmaking", "alice", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	status, _ = do(t, app, http.MethodDelete, "/api/game/matchmaking", "alice", "")
	testutil.AssertEqual(t, status, http.StatusNotFound)
}
