package repository

import (
	"context"
	"log/slog"

	"playpoint/internal/domain/station"
	"playpoint/internal/infra"
	"playpoint/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StationRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStationRepository(pool *pgxpool.Pool, logger *slog.Logger) *StationRepository {
	return &StationRepository{pool: pool, logger: logger}
}

func (r *StationRepository) SaveStation(ctx context.Context, snap station.Snapshot) error {
	const query = `
		INSERT INTO stations (id, name, supports_per_game, supports_hourly, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			supports_per_game = EXCLUDED.supports_per_game,
			supports_hourly = EXCLUDED.supports_hourly,
			status = EXCLUDED.status`

	_, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(snap.ID),
		snap.Name,
		snap.SupportsPerGame,
		snap.SupportsHourly,
		string(snap.Status),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save station", err)
	}
	return nil
}

// ListAll loads the whole station catalogue for the boot-time registry seed.
func (r *StationRepository) ListAll(ctx context.Context) ([]station.Snapshot, error) {
	const query = `
		SELECT id, name, supports_per_game, supports_hourly, status
		FROM stations
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list stations", err)
	}
	defer rows.Close()

	var out []station.Snapshot
	for rows.Next() {
		var (
			snap   station.Snapshot
			status string
		)
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.SupportsPerGame, &snap.SupportsHourly, &status); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan station", err)
		}
		snap.Status = station.Status(status)
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate stations", err)
	}
	return out, nil
}
