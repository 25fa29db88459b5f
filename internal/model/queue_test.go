package model

import (
	"testing"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/testutil"
)

func TestQueue(t *testing.T) {
	q := NewQueue()

	if _, _, ok := q.GetNextPair(); ok {
		t.Fatal("GetNextPair on empty queue returned a pair")
	}

	testutil.AssertNoError(t, q.AddPlayer(Player{ID: "a"}))
	testutil.AssertErrorIs(t, q.AddPlayer(Player{ID: "a"}), ErrAlreadyQueued)
	testutil.AssertNoError(t, q.AddPlayer(Player{ID: "b"}))
	testutil.AssertNoError(t, q.AddPlayer(Player{ID: "c"}))
	testutil.AssertEqual(t, q.Size(), 3)

	p1, p2, ok := q.GetNextPair()
	if !ok {
		t.Fatal("GetNextPair returned no pair")
	}
	testutil.AssertEqual(t, []string{p1.ID, p2.ID}, []string{"a", "b"})

	if !q.Remove("c") || q.Remove("c") {
		t.Error("Remove did not report membership correctly")
	}
	testutil.AssertEqual(t, q.Size(), 0)
}
