package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidMethod  = errors.New("invalid payment method")
	ErrInvalidAmount  = errors.New("amount cannot be negative")
	ErrAlreadySettled = errors.New("transaction already settled")
	ErrNotPending     = errors.New("transaction is not pending")
)

// Method is the typed payment channel. The provider is a first-class field
// on the transaction; it is never re-derived from reference strings after
// ingestion.
type Method string

const (
	MethodCash   Method = "cash"
	MethodMpesa  Method = "mpesa"
	MethodAirtel Method = "airtel"
)

func (m Method) IsValid() bool {
	return m == MethodCash || m == MethodMpesa || m == MethodAirtel
}

// IsMobile reports whether settlement depends on an asynchronous provider
// confirmation.
func (m Method) IsMobile() bool {
	return m == MethodMpesa || m == MethodAirtel
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

func (o Outcome) IsValid() bool {
	return o == OutcomeSuccess || o == OutcomeFailure
}

// ParseLegacyRef maps a bare reference string to a method using the
// historical prefix convention ("MPESA-...", "AIRTEL-..."). Only the
// callback ingress uses it, and only when the caller did not identify the
// provider; an empty reference means cash. Unknown prefixes are rejected
// rather than guessed.
func ParseLegacyRef(ref string) (Method, bool) {
	switch {
	case ref == "":
		return MethodCash, true
	case strings.HasPrefix(ref, "MPESA-"):
		return MethodMpesa, true
	case strings.HasPrefix(ref, "AIRTEL-"):
		return MethodAirtel, true
	default:
		return "", false
	}
}

// Transaction is the monetary record produced when a session ends or a
// payment is initiated. Pending transactions move to a terminal status only
// through reconciliation.
type Transaction struct {
	id                uuid.UUID
	sessionID         uuid.UUID
	stationID         uuid.UUID
	amountCents       int64
	method            Method
	externalRef       *string
	providerRequestID *string
	status            Status
	createdAt         time.Time
	settledAt         *time.Time
}

// NewTransaction creates the settlement record for an ended session. Cash
// settles immediately; mobile methods stay pending until the provider
// confirms.
func NewTransaction(sessionID, stationID uuid.UUID, amountCents int64, method Method, now time.Time) (*Transaction, error) {
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}
	if amountCents < 0 {
		return nil, ErrInvalidAmount
	}

	t := &Transaction{
		id:          uuid.New(),
		sessionID:   sessionID,
		stationID:   stationID,
		amountCents: amountCents,
		method:      method,
		status:      StatusPending,
		createdAt:   now,
	}
	if method == MethodCash {
		settled := now
		t.status = StatusCompleted
		t.settledAt = &settled
	}
	return t, nil
}

// AttachProviderRequest records the outbound request id returned by the
// provider so the later confirmation can be matched.
func (t *Transaction) AttachProviderRequest(requestID string) error {
	if t.status != StatusPending {
		return ErrNotPending
	}
	t.providerRequestID = &requestID
	return nil
}

// Settle applies a provider outcome. Settling an already-terminal
// transaction is an error here; the reconciler turns that into an
// idempotent no-op because providers redeliver confirmations.
func (t *Transaction) Settle(outcome Outcome, externalRef string, now time.Time) error {
	if t.IsTerminal() {
		return ErrAlreadySettled
	}
	if externalRef != "" {
		t.externalRef = &externalRef
	}
	if outcome == OutcomeSuccess {
		t.status = StatusCompleted
	} else {
		t.status = StatusFailed
	}
	t.settledAt = &now
	return nil
}

func (t *Transaction) IsTerminal() bool {
	return t.status == StatusCompleted || t.status == StatusFailed
}

func (t *Transaction) ID() uuid.UUID              { return t.id }
func (t *Transaction) SessionID() uuid.UUID       { return t.sessionID }
func (t *Transaction) Status() Status             { return t.status }
func (t *Transaction) Method() Method             { return t.method }
func (t *Transaction) ProviderRequestID() *string { return t.providerRequestID }
func (t *Transaction) CreatedAt() time.Time       { return t.createdAt }

type Snapshot struct {
	ID                uuid.UUID
	SessionID         uuid.UUID
	StationID         uuid.UUID
	AmountCents       int64
	Method            Method
	ExternalRef       *string
	ProviderRequestID *string
	Status            Status
	CreatedAt         time.Time
	SettledAt         *time.Time
}

func (t *Transaction) Snapshot() Snapshot {
	return Snapshot{
		ID:                t.id,
		SessionID:         t.sessionID,
		StationID:         t.stationID,
		AmountCents:       t.amountCents,
		Method:            t.method,
		ExternalRef:       t.externalRef,
		ProviderRequestID: t.providerRequestID,
		Status:            t.status,
		CreatedAt:         t.createdAt,
		SettledAt:         t.settledAt,
	}
}
