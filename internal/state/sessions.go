package state

import (
	"sort"
	"sync"
	"time"

	"playpoint/internal/domain/session"

	"github.com/google/uuid"
)

// SessionStore owns every active session. All mutation goes through its
// methods; callers only ever see value snapshots, so a slow reader can
// never observe a half-applied update. Station-level serialization of
// commands is the coordinator's job (keylock); the store's own mutex only
// guards map integrity.
type SessionStore struct {
	mu     sync.RWMutex
	active map[uuid.UUID]*session.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		active: make(map[uuid.UUID]*session.Session),
	}
}

type StartSessionParams struct {
	StationID    uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	GameName     string
	Mode         session.BillingMode
	Pricing      session.Pricing
	BookingID    *uuid.UUID
}

// Start creates and registers a session for the station. Fails with
// ErrStationOccupied when the station already hosts one: the core
// invariant, at most one active session per station.
func (s *SessionStore) Start(p StartSessionParams, now time.Time) (session.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[p.StationID]; ok {
		return session.Snapshot{}, ErrStationOccupied
	}

	sess, err := session.NewSession(
		p.StationID, p.CustomerID,
		p.CustomerName, p.GameName,
		p.Mode, p.Pricing, p.BookingID, now,
	)
	if err != nil {
		return session.Snapshot{}, err
	}

	s.active[p.StationID] = sess
	return sess.Snapshot(now), nil
}

// End removes the station's session and returns its final snapshot with
// cost frozen at now.
func (s *SessionStore) End(stationID uuid.UUID, reason session.EndReason, now time.Time) (session.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.active[stationID]
	if !ok {
		return session.Snapshot{}, ErrNoActiveSession
	}

	delete(s.active, stationID)
	return sess.EndedSnapshot(reason, now), nil
}

// AddGame increments the game count of the station's per-game session.
func (s *SessionStore) AddGame(stationID uuid.UUID, now time.Time) (session.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.active[stationID]
	if !ok {
		return session.Snapshot{}, ErrNoActiveSession
	}
	if err := sess.AddGame(); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(now), nil
}

// CurrentCost is a pure read of the accrued cost at now.
func (s *SessionStore) CurrentCost(stationID uuid.UUID, now time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.active[stationID]
	if !ok {
		return 0, ErrNoActiveSession
	}
	return sess.Bill(now), nil
}

func (s *SessionStore) Get(stationID uuid.UUID, now time.Time) (session.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.active[stationID]
	if !ok {
		return session.Snapshot{}, false
	}
	return sess.Snapshot(now), true
}

func (s *SessionStore) Occupied(stationID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[stationID]
	return ok
}

// List returns snapshots of every active session, ordered by start time.
func (s *SessionStore) List(now time.Time) []session.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]session.Snapshot, 0, len(s.active))
	for _, sess := range s.active {
		out = append(out, sess.Snapshot(now))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}
