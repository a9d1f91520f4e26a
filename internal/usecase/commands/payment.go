package commands

import (
	"context"
	"errors"
	"log/slog"

	"playpoint/internal/domain/payment"
	"playpoint/internal/events"
	"playpoint/internal/pkg/clock"
	"playpoint/internal/pkg/errs"
	"playpoint/internal/state"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound = errs.New("transaction not found")
	ErrUnmatchedReference  = errs.New("unmatched payment reference")
	ErrPaymentNotPending   = errs.New("transaction is not pending")
	ErrInvalidOutcome      = errs.New("invalid payment outcome")
)

type PaymentCommands interface {
	// Initiate records the provider-assigned request id of an outbound
	// payment request so the asynchronous confirmation can be matched.
	Initiate(ctx context.Context, txID uuid.UUID, providerRequestID string) (payment.Snapshot, error)
	// Confirm reconciles an inbound provider confirmation by reference.
	Confirm(ctx context.Context, externalRef string, outcome payment.Outcome) (payment.Snapshot, error)
}

type paymentCommandsImpl struct {
	txBook       *state.TransactionBook
	hub          Publisher
	transactions TransactionArchive
	clock        clock.Clock
	logger       *slog.Logger
}

func NewPaymentCommands(
	txBook *state.TransactionBook,
	hub Publisher,
	transactions TransactionArchive,
	clk clock.Clock,
	logger *slog.Logger,
) PaymentCommands {
	return &paymentCommandsImpl{
		txBook:       txBook,
		hub:          hub,
		transactions: transactions,
		clock:        clk,
		logger:       logger,
	}
}

func (c *paymentCommandsImpl) Initiate(ctx context.Context, txID uuid.UUID, providerRequestID string) (payment.Snapshot, error) {
	snap, err := c.txBook.AttachProviderRequest(txID, providerRequestID)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrTransactionNotFound):
			return payment.Snapshot{}, ErrTransactionNotFound
		case errors.Is(err, payment.ErrNotPending):
			return payment.Snapshot{}, errs.Mark(err, ErrPaymentNotPending)
		default:
			return payment.Snapshot{}, err
		}
	}

	if err := c.transactions.SaveTransaction(ctx, snap); err != nil {
		c.logger.Error("failed to archive transaction", "transaction_id", snap.ID, "error", err)
	}

	c.logger.Info("payment initiated",
		"transaction_id", snap.ID,
		"method", string(snap.Method),
		"provider_request_id", providerRequestID,
	)
	c.hub.Publish(events.PaymentInitiated{Transaction: snap, OccurredAt: c.clock.Now()})
	return snap, nil
}

func (c *paymentCommandsImpl) Confirm(ctx context.Context, externalRef string, outcome payment.Outcome) (payment.Snapshot, error) {
	if !outcome.IsValid() {
		return payment.Snapshot{}, ErrInvalidOutcome
	}

	res, err := c.txBook.Confirm(externalRef, outcome, c.clock.Now())
	if err != nil {
		if errors.Is(err, state.ErrUnmatchedReference) {
			// Real money moved somewhere we cannot place. Loud, never silent.
			c.logger.Error("unmatched payment confirmation",
				"external_ref", externalRef,
				"outcome", string(outcome),
			)
			return payment.Snapshot{}, ErrUnmatchedReference
		}
		return payment.Snapshot{}, err
	}

	if res.Replayed {
		// Providers redeliver confirmations; a terminal transaction stays
		// as it is and no event is emitted.
		c.logger.Info("duplicate payment confirmation ignored",
			"transaction_id", res.Transaction.ID,
			"external_ref", externalRef,
		)
		return res.Transaction, nil
	}

	if err := c.transactions.SaveTransaction(ctx, res.Transaction); err != nil {
		c.logger.Error("failed to archive transaction", "transaction_id", res.Transaction.ID, "error", err)
	}

	c.logger.Info("payment reconciled",
		"transaction_id", res.Transaction.ID,
		"status", string(res.Transaction.Status),
		"external_ref", externalRef,
	)
	c.hub.Publish(events.PaymentReconciled{Transaction: res.Transaction, OccurredAt: c.clock.Now()})
	return res.Transaction, nil
}
