package queries

import (
	"context"
	"errors"
	"time"

	"playpoint/internal/pkg/clock"
	"playpoint/internal/state"

	"github.com/google/uuid"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type PaymentQueries interface {
	Get(ctx context.Context, id uuid.UUID) (TransactionView, error)
	// ListOverdue surfaces transactions pending beyond the alert window for
	// manual reconciliation. They are never auto-failed.
	ListOverdue(ctx context.Context) []TransactionView
}

type paymentQueriesImpl struct {
	txBook *state.TransactionBook
	clock  clock.Clock
	window time.Duration
}

func NewPaymentQueries(txBook *state.TransactionBook, clk clock.Clock, pendingAlertAfter time.Duration) PaymentQueries {
	return &paymentQueriesImpl{txBook: txBook, clock: clk, window: pendingAlertAfter}
}

func (q *paymentQueriesImpl) Get(_ context.Context, id uuid.UUID) (TransactionView, error) {
	snap, err := q.txBook.Get(id)
	if err != nil {
		return TransactionView{}, ErrTransactionNotFound
	}
	return TransactionViewFromSnapshot(snap, q.clock.Now()), nil
}

func (q *paymentQueriesImpl) ListOverdue(_ context.Context) []TransactionView {
	now := q.clock.Now()
	snaps := q.txBook.ListOverdue(now, q.window)
	out := make([]TransactionView, len(snaps))
	for i, snap := range snaps {
		out[i] = TransactionViewFromSnapshot(snap, now)
	}
	return out
}
