// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/danielhkuo/dayfinder/db"
	"github.com/danielhkuo/dayfinder/models"
)

var (
	ErrNotFound = errors.New("event not found")
	ErrNotOwner = errors.New("requester does not own this event")
)

// Store is the process-wide collection of events. The in-memory map is
// authoritative for all reads; every mutation is written through to the
// backing database before the operation returns, so state survives
// restarts. A single mutex serializes the whole read-modify-write of each
// mutation; without it two interleaved submissions for the same
// (event, user) could both miss the existing record and both append.
type Store struct {
	mu     sync.Mutex
	events map[string]*models.Event
	conn   *sql.DB
}

// Open connects to the backing database, ensures the schema, and loads
// every persisted event into memory. A load failure is returned as an
// error because serving with unknown state consistency is not safe.
func Open(driver, dsn string) (*Store, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	s := &Store{events: make(map[string]*models.Event), conn: conn}
	if err := s.load(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("load events: %w", err)
	}
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.conn.Query(`SELECT id, payload FROM event`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return err
		}
		var ev models.Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("decode event %s: %w", id, err)
		}
		s.events[id] = &ev
	}
	return rows.Err()
}

// persist writes one event through to the database. Callers hold s.mu.
func (s *Store) persist(ev *models.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", ev.ID, err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO event (id, owner_id, created_at, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload
	`, ev.ID, ev.OwnerID, ev.CreatedAt, payload)
	if err != nil {
		return fmt.Errorf("persist event %s: %w", ev.ID, err)
	}
	return nil
}

// CreateEvent registers a new event. Validation failures return a nil
// event. A failed durable write returns the event together with the
// error: the in-memory store already holds it, and the caller decides
// how to warn the user.
func (s *Store) CreateEvent(title, description string, days []string, notify bool, ownerID int64) (*models.Event, error) {
	ev, err := models.NewEvent(title, description, days, notify, ownerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.ID] = ev
	if err := s.persist(ev); err != nil {
		return ev, err
	}
	return ev, nil
}

// SubmitVote records or edits a user's vote on an event. The lookup,
// mutate-or-append, and durable write all happen under the store lock so
// a user can never end up with two records. The created and changed flags
// mirror models.Event.SubmitVote; a persistence error is returned after
// the in-memory mutation with the flags intact.
func (s *Store) SubmitVote(eventID string, userID int64, userName string, choices map[string]models.VoteType) (created, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return false, false, ErrNotFound
	}
	created, changed, err = ev.SubmitVote(userID, userName, choices)
	if err != nil {
		return false, false, err
	}
	if perr := s.persist(ev); perr != nil {
		return created, changed, perr
	}
	return created, changed, nil
}

// DeleteEvent removes an event and all its votes. Only the owner may
// delete; this is the sole path by which votes are destroyed. The removed
// event is returned so callers can reference its title afterwards.
func (s *Store) DeleteEvent(eventID string, requesterID int64) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return nil, ErrNotFound
	}
	if ev.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	delete(s.events, eventID)
	if _, err := s.conn.Exec(`DELETE FROM event WHERE id = $1`, eventID); err != nil {
		return ev, fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return ev, nil
}

// GetEvent returns a deep copy of the event, so readers never observe a
// concurrent mutation.
func (s *Store) GetEvent(id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ev.Clone(), nil
}

// EventsByOwner returns copies of the owner's events, newest first.
func (s *Store) EventsByOwner(ownerID int64) []*models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Event
	for _, ev := range s.events {
		if ev.OwnerID == ownerID {
			out = append(out, ev.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *models.Event) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// Dump returns a copy of every event, keyed by ID. Admin use only.
func (s *Store) Dump() map[string]*models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*models.Event, len(s.events))
	for id, ev := range s.events {
		out[id] = ev.Clone()
	}
	return out
}

// Len reports the number of events currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// Close closes the backing database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
