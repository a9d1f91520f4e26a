// Package state holds the in-memory authoritative stores of the engine:
// active sessions, the booking ledger, the transaction book and the station
// registry. Rows in the database are archival copies; these maps are the
// source of truth while the process runs.
package state

import "errors"

var (
	ErrStationOccupied     = errors.New("station already has an active session")
	ErrNoActiveSession     = errors.New("station has no active session")
	ErrOverlapConflict     = errors.New("booking overlaps an existing booking")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrStationNotFound     = errors.New("station not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnmatchedReference  = errors.New("no pending transaction matches reference")
)
