package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/service"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/testutil"
	"github.com/gofiber/fiber/v2"
)

func TestPlayerIDOf(t *testing.T) {
	tests := []struct {
		name   string
		local  interface{}
		wantID string
		wantOK bool
	}{
		{"set", "alice", "alice", true},
		{"missing", nil, "", false},
		{"empty", "", "", false},
		{"wrong type", 42, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := playerIDOf(tt.local)
			testutil.AssertEqual(t, ok, tt.wantOK)
			if ok {
				testutil.AssertEqual(t, id, tt.wantID)
			}
		})
	}
}

func TestHandlersWithoutPlayerID(t *testing.T) {
	gc := NewGameController(service.NewGameService(service.NewGameManager(nil), nil))
	app := fiber.New()
	app.Post("/join/:gameId", gc.JoinGame)
	app.Post("/matchmaking", gc.JoinMatchmaking)
	app.Delete("/matchmaking", gc.LeaveMatchmaking)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/join/g1"},
		{http.MethodPost, "/matchmaking"},
		{http.MethodDelete, "/matchmaking"},
	} {
		resp, err := app.Test(httptest.NewRequest(route.method, route.path, nil), -1)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, resp.StatusCode, http.StatusUnauthorized, "%s %s", route.method, route.path)
		resp.Body.Close()
	}
}
