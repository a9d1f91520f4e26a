package components

import (
	"context"
	"log/slog"

	"playpoint/internal/events"
	"playpoint/internal/infra/repository"
	"playpoint/internal/pkg/clock"
	"playpoint/internal/pkg/config"
	"playpoint/internal/pkg/keylock"
	"playpoint/internal/state"

	"go.uber.org/fx"
)

// EngineModule wires the in-memory authoritative state. The database is a
// write-through archive; the engine's truth lives in these stores and is
// seeded from the archive once at boot.
var EngineModule = fx.Module("engine",
	fx.Provide(
		clock.NewRealClock,
		keylock.New,
		NewHub,
		state.NewStationRegistry,
		state.NewSessionStore,
		state.NewBookingLedger,
		state.NewTransactionBook,
	),
	fx.Invoke(seedState),
)

func NewHub(cfg config.Config, logger *slog.Logger) *events.Hub {
	return events.NewHub(cfg.Stream.Buffer, logger)
}

func seedState(
	lc fx.Lifecycle,
	registry *state.StationRegistry,
	ledger *state.BookingLedger,
	stations *repository.StationRepository,
	bookings *repository.BookingRepository,
	clk clock.Clock,
	logger *slog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			stationSnaps, err := stations.ListAll(ctx)
			if err != nil {
				return err
			}
			registry.Load(stationSnaps)

			bookingSnaps, err := bookings.ListUpcoming(ctx, clk.Now())
			if err != nil {
				return err
			}
			if err := ledger.Load(bookingSnaps); err != nil {
				return err
			}

			logger.Info("state seeded from archive",
				"stations", len(stationSnaps),
				"bookings", len(bookingSnaps),
			)
			return nil
		},
	})
}
