package repository

import (
	"context"
	"log/slog"

	"playpoint/internal/domain/session"
	"playpoint/internal/infra"
	"playpoint/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSessionRepository(pool *pgxpool.Pool, logger *slog.Logger) *SessionRepository {
	return &SessionRepository{pool: pool, logger: logger}
}

func (r *SessionRepository) SaveSession(ctx context.Context, snap session.Snapshot) error {
	const query = `
		INSERT INTO sessions (
			id, station_id, customer_id, customer_name, game_name, billing_mode,
			started_at, ended_at, end_reason, price_cents, games, rate_cents,
			booking_id, cost_cents
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			game_name = EXCLUDED.game_name,
			ended_at = EXCLUDED.ended_at,
			end_reason = EXCLUDED.end_reason,
			games = EXCLUDED.games,
			cost_cents = EXCLUDED.cost_cents`

	var endReason *string
	if snap.EndReason != "" {
		reason := string(snap.EndReason)
		endReason = &reason
	}

	_, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(snap.ID),
		pgconv.UUIDToPgtype(snap.StationID),
		pgconv.UUIDToPgtype(snap.CustomerID),
		snap.CustomerName,
		snap.GameName,
		string(snap.Mode),
		pgconv.TimeToPgtype(snap.StartedAt),
		pgconv.TimePtrToPgtype(snap.EndedAt),
		pgconv.TextPtrToPgtype(endReason),
		snap.PriceCents,
		snap.Games,
		snap.RateCents,
		pgconv.UUIDPtrToPgtype(snap.BookingID),
		snap.CostCents,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save session", err)
	}
	return nil
}
