package repository

import (
	"context"
	"log/slog"

	"playpoint/internal/domain/payment"
	"playpoint/internal/infra"
	"playpoint/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewTransactionRepository(pool *pgxpool.Pool, logger *slog.Logger) *TransactionRepository {
	return &TransactionRepository{pool: pool, logger: logger}
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, snap payment.Snapshot) error {
	const query = `
		INSERT INTO transactions (
			id, session_id, station_id, amount_cents, method, external_ref,
			provider_request_id, status, created_at, settled_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			external_ref = EXCLUDED.external_ref,
			provider_request_id = EXCLUDED.provider_request_id,
			status = EXCLUDED.status,
			settled_at = EXCLUDED.settled_at`

	_, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(snap.ID),
		pgconv.UUIDToPgtype(snap.SessionID),
		pgconv.UUIDToPgtype(snap.StationID),
		snap.AmountCents,
		string(snap.Method),
		pgconv.TextPtrToPgtype(snap.ExternalRef),
		pgconv.TextPtrToPgtype(snap.ProviderRequestID),
		string(snap.Status),
		pgconv.TimeToPgtype(snap.CreatedAt),
		pgconv.TimePtrToPgtype(snap.SettledAt),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save transaction", err)
	}
	return nil
}
