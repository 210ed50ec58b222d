// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/dayfinder/models"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	st, err := Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return st
}

func yesNo(days []string, yesDay string) map[string]models.VoteType {
	m := make(map[string]models.VoteType, len(days))
	for _, d := range days {
		if d == yesDay {
			m[d] = models.VoteYes
		} else {
			m[d] = models.VoteNo
		}
	}
	return m
}

func TestCreateAndGetEvent(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer st.Close()

	ev, err := st.CreateEvent("Movie night", "Which evening works?", []string{"2024-03-01", "2024-03-02"}, true, 42)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if ev.ID == "" {
		t.Fatal("Expected a generated event ID")
	}

	got, err := st.GetEvent(ev.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.Title != "Movie night" || got.OwnerID != 42 {
		t.Errorf("Unexpected event: %+v", got)
	}

	if _, err := st.GetEvent("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCreateEventValidation(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer st.Close()

	if _, err := st.CreateEvent("Empty", "", nil, false, 1); !errors.Is(err, models.ErrNoDays) {
		t.Errorf("Expected ErrNoDays, got %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("Rejected create must not register an event, store has %d", st.Len())
	}
}

func TestEventsSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st := openTestStore(t, path)
	ev, err := st.CreateEvent("Offsite", "", []string{"2024-05-10", "2024-05-11"}, false, 7)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if _, _, err := st.SubmitVote(ev.ID, 100, "Alice", yesNo(ev.Days, "2024-05-10")); err != nil {
		t.Fatalf("SubmitVote failed: %v", err)
	}
	st.Close()

	// Reopen against the same file: the full state must come back.
	st2 := openTestStore(t, path)
	defer st2.Close()

	if st2.Len() != 1 {
		t.Fatalf("Expected 1 event after restart, got %d", st2.Len())
	}
	got, err := st2.GetEvent(ev.ID)
	if err != nil {
		t.Fatalf("GetEvent after restart failed: %v", err)
	}
	if got.Title != "Offsite" || len(got.Votes) != 1 {
		t.Errorf("Restored event lost data: %+v", got)
	}
	if got.Votes[0].UserID != 100 || got.Votes[0].Choices["2024-05-10"] != models.VoteYes {
		t.Errorf("Restored vote lost data: %+v", got.Votes[0])
	}
}

func TestSubmitVoteUpsert(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer st.Close()

	ev, _ := st.CreateEvent("Dinner", "", []string{"d1", "d2"}, false, 1)

	created, changed, err := st.SubmitVote(ev.ID, 5, "Bob", map[string]models.VoteType{"d1": models.VoteYes, "d2": models.VoteNo})
	if err != nil || !created || !changed {
		t.Fatalf("First submit: created=%v changed=%v err=%v", created, changed, err)
	}

	created, changed, err = st.SubmitVote(ev.ID, 5, "Bob", map[string]models.VoteType{"d1": models.VoteYes, "d2": models.VoteNo})
	if err != nil || created || changed {
		t.Fatalf("Identical resubmit: created=%v changed=%v err=%v", created, changed, err)
	}

	created, changed, err = st.SubmitVote(ev.ID, 5, "Bob", map[string]models.VoteType{"d1": models.VoteNo, "d2": models.VoteYes})
	if err != nil || created || !changed {
		t.Fatalf("Edit: created=%v changed=%v err=%v", created, changed, err)
	}

	got, _ := st.GetEvent(ev.ID)
	if len(got.Votes) != 1 {
		t.Errorf("Expected 1 vote record, got %d", len(got.Votes))
	}

	if _, _, err := st.SubmitVote("missing", 5, "Bob", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing event, got %v", err)
	}
}

func TestDeleteEventAuthorization(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer st.Close()

	ev, _ := st.CreateEvent("To delete", "", []string{"d1"}, false, 10)

	// Non-owner must be rejected and the event must remain.
	if _, err := st.DeleteEvent(ev.ID, 11); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Expected ErrNotOwner, got %v", err)
	}
	if _, err := st.GetEvent(ev.ID); err != nil {
		t.Errorf("Event disappeared after rejected delete: %v", err)
	}

	deleted, err := st.DeleteEvent(ev.ID, 10)
	if err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}
	if deleted.Title != "To delete" {
		t.Errorf("Delete returned wrong event: %+v", deleted)
	}
	if _, err := st.GetEvent(ev.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if _, err := st.DeleteEvent(ev.ID, 10); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for double delete, got %v", err)
	}
}

func TestDeleteRemovesFromDurableStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st := openTestStore(t, path)
	ev, _ := st.CreateEvent("Gone", "", []string{"d1"}, false, 1)
	if _, err := st.DeleteEvent(ev.ID, 1); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	st.Close()

	st2 := openTestStore(t, path)
	defer st2.Close()
	if st2.Len() != 0 {
		t.Errorf("Deleted event reappeared after restart, store has %d", st2.Len())
	}
}

func TestEventsByOwnerOrdering(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer st.Close()

	var ids []string
	for i := 0; i < 3; i++ {
		ev, err := st.CreateEvent("Poll", "", []string{"d1"}, false, 50)
		if err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		ids = append(ids, ev.ID)
		time.Sleep(2 * time.Millisecond) // distinct created_at
	}
	if _, err := st.CreateEvent("Other owner", "", []string{"d1"}, false, 51); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	events := st.EventsByOwner(50)
	if len(events) != 3 {
		t.Fatalf("Expected 3 events for owner, got %d", len(events))
	}
	gotIDs := []string{events[0].ID, events[1].ID, events[2].ID}
	wantIDs := []string{ids[2], ids[1], ids[0]}
	if !slices.Equal(gotIDs, wantIDs) {
		t.Errorf("Expected newest-first %v, got %v", wantIDs, gotIDs)
	}

	if got := st.EventsByOwner(99); len(got) != 0 {
		t.Errorf("Expected no events for unknown owner, got %d", len(got))
	}
}

func TestGetEventReturnsCopy(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer st.Close()

	ev, _ := st.CreateEvent("Copy check", "", []string{"d1"}, false, 1)

	snapshot, _ := st.GetEvent(ev.ID)
	if _, _, err := st.SubmitVote(ev.ID, 2, "Bob", map[string]models.VoteType{"d1": models.VoteYes}); err != nil {
		t.Fatalf("SubmitVote failed: %v", err)
	}

	if len(snapshot.Votes) != 0 {
		t.Errorf("Snapshot mutated by later submission, has %d votes", len(snapshot.Votes))
	}
}
