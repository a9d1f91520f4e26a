package repository

import (
	"context"
	"log/slog"
	"time"

	"playpoint/internal/domain/booking"
	"playpoint/internal/infra"
	"playpoint/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewBookingRepository(pool *pgxpool.Pool, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{pool: pool, logger: logger}
}

func (r *BookingRepository) SaveBooking(ctx context.Context, snap booking.Snapshot) error {
	const query = `
		INSERT INTO bookings (id, station_id, customer_id, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(snap.ID),
		pgconv.UUIDToPgtype(snap.StationID),
		pgconv.UUIDToPgtype(snap.CustomerID),
		pgconv.TimeToPgtype(snap.Start),
		pgconv.TimeToPgtype(snap.End),
		string(snap.Status),
		pgconv.TimeToPgtype(snap.CreatedAt),
		pgconv.TimeToPgtype(snap.UpdatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save booking", err)
	}
	return nil
}

// ListUpcoming loads bookings whose window has not fully passed, the seed
// set for the boot-time ledger.
func (r *BookingRepository) ListUpcoming(ctx context.Context, now time.Time) ([]booking.Snapshot, error) {
	const query = `
		SELECT id, station_id, customer_id, start_at, end_at, status, created_at, updated_at
		FROM bookings
		WHERE end_at > $1 AND status IN ('pending', 'confirmed', 'converted')
		ORDER BY start_at`

	rows, err := r.pool.Query(ctx, query, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list bookings", err)
	}
	defer rows.Close()

	var out []booking.Snapshot
	for rows.Next() {
		var (
			snap   booking.Snapshot
			status string
		)
		if err := rows.Scan(&snap.ID, &snap.StationID, &snap.CustomerID, &snap.Start, &snap.End, &status, &snap.CreatedAt, &snap.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan booking", err)
		}
		snap.Status = booking.Status(status)
		snap.Duration = snap.End.Sub(snap.Start)
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate bookings", err)
	}
	return out, nil
}
