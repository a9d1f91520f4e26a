package state

import (
	"sort"
	"sync"
	"time"

	"playpoint/internal/domain/payment"

	"github.com/google/uuid"
)

// TransactionBook indexes transactions by id and by every reference a
// provider confirmation might carry (outbound request id or the provider's
// own external reference). Confirmations for terminal transactions are
// replays, not errors: providers redeliver.
type TransactionBook struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*payment.Transaction
	byRef map[string]uuid.UUID
}

func NewTransactionBook() *TransactionBook {
	return &TransactionBook{
		byID:  make(map[uuid.UUID]*payment.Transaction),
		byRef: make(map[string]uuid.UUID),
	}
}

func (tb *TransactionBook) Add(t *payment.Transaction) payment.Snapshot {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.byID[t.ID()] = t
	return t.Snapshot()
}

// AttachProviderRequest records the provider-assigned request id so the
// asynchronous confirmation can be matched later.
func (tb *TransactionBook) AttachProviderRequest(txID uuid.UUID, requestID string) (payment.Snapshot, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	t, ok := tb.byID[txID]
	if !ok {
		return payment.Snapshot{}, ErrTransactionNotFound
	}
	if err := t.AttachProviderRequest(requestID); err != nil {
		return payment.Snapshot{}, err
	}
	tb.byRef[requestID] = txID
	return t.Snapshot(), nil
}

// ConfirmResult reports the outcome of a reconciliation attempt. Replayed
// is true when the transaction was already terminal; the caller treats that
// as a no-op and must not emit events or archive again.
type ConfirmResult struct {
	Transaction payment.Snapshot
	Replayed    bool
}

// Confirm matches an inbound provider confirmation to a transaction by
// reference. An unmatched reference is surfaced as ErrUnmatchedReference —
// it represents money movement with no home and must never be dropped
// silently.
func (tb *TransactionBook) Confirm(ref string, outcome payment.Outcome, now time.Time) (ConfirmResult, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	t := tb.lookupLocked(ref)
	if t == nil {
		return ConfirmResult{}, ErrUnmatchedReference
	}

	if t.IsTerminal() {
		return ConfirmResult{Transaction: t.Snapshot(), Replayed: true}, nil
	}

	if err := t.Settle(outcome, ref, now); err != nil {
		return ConfirmResult{}, err
	}
	tb.byRef[ref] = t.ID()
	return ConfirmResult{Transaction: t.Snapshot()}, nil
}

// Void settles a still-pending transaction as failed without a provider
// reference. A session cancelled before payment keeps no claim on the
// customer; a provider confirmation arriving later replays as a no-op.
func (tb *TransactionBook) Void(id uuid.UUID, now time.Time) (payment.Snapshot, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	t, ok := tb.byID[id]
	if !ok {
		return payment.Snapshot{}, ErrTransactionNotFound
	}
	if err := t.Settle(payment.OutcomeFailure, "", now); err != nil {
		return payment.Snapshot{}, err
	}
	return t.Snapshot(), nil
}

// lookupLocked resolves a reference against the request-id index first,
// then against a transaction id in string form (cash-register callbacks
// echo our own id).
func (tb *TransactionBook) lookupLocked(ref string) *payment.Transaction {
	if id, ok := tb.byRef[ref]; ok {
		return tb.byID[id]
	}
	if id, err := uuid.Parse(ref); err == nil {
		if t, ok := tb.byID[id]; ok {
			return t
		}
	}
	return nil
}

func (tb *TransactionBook) Get(id uuid.UUID) (payment.Snapshot, error) {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	t, ok := tb.byID[id]
	if !ok {
		return payment.Snapshot{}, ErrTransactionNotFound
	}
	return t.Snapshot(), nil
}

// ListOverdue returns transactions still pending after the alert window.
// They are surfaced for manual follow-up, never auto-failed: a delayed
// provider confirmation after an auto-fail would double-charge.
func (tb *TransactionBook) ListOverdue(now time.Time, window time.Duration) []payment.Snapshot {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	var out []payment.Snapshot
	for _, t := range tb.byID {
		if t.Status() == payment.StatusPending && now.Sub(t.CreatedAt()) > window {
			out = append(out, t.Snapshot())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
