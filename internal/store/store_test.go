package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/engine"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/model"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.sqlite"))
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func foolsMate() model.Result {
	moves, _ := model.ParseMoves("6555 1434 6646 0347")
	return model.Result{
		GameID: "fools-mate",
		White:  "alice",
		Black:  "bob",
		State:  engine.Checkmate,
		Winner: engine.Black,
		Moves:  moves,
	}
}

func TestInsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := foolsMate()
	testutil.AssertNoError(t, s.InsertFinishedGame(ctx, want))

	got, err := s.GetFinishedGame(ctx, want.GameID)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, want)

	if err := s.InsertFinishedGame(ctx, want); err == nil {
		t.Error("duplicate insert succeeded")
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetFinishedGame(context.Background(), "nope")
	testutil.AssertErrorIs(t, err, model.ErrGameNotFound)
}

func TestListFinishedGames(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := foolsMate()
	second := foolsMate()
	second.GameID = "stalemate"
	second.State = engine.Stalemate
	second.Winner = engine.NoColor
	testutil.AssertNoError(t, s.InsertFinishedGame(ctx, first))
	testutil.AssertNoError(t, s.InsertFinishedGame(ctx, second))

	got, err := s.ListFinishedGames(ctx, 10)
	testutil.AssertNoError(t, err)
	if len(got) != 2 {
		t.Fatalf("len = %d; want 2", len(got))
	}
	testutil.AssertEqual(t, got[0].GameID, "stalemate")
	testutil.AssertEqual(t, got[0].Score(), "1/2-1/2")

	got, err = s.ListFinishedGames(ctx, 1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got), 1)
}
