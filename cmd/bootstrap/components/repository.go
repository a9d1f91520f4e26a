package components

import (
	repo_impl "playpoint/internal/infra/repository"
	"playpoint/internal/usecase/commands"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Concrete repositories for the boot-time seed.
		repo_impl.NewStationRepository,
		repo_impl.NewBookingRepository,
		// Archive ports for the write side.
		fx.Annotate(
			repo_impl.NewStationRepository,
			fx.As(new(commands.StationArchive)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingArchive)),
		),
		fx.Annotate(
			repo_impl.NewSessionRepository,
			fx.As(new(commands.SessionArchive)),
		),
		fx.Annotate(
			repo_impl.NewTransactionRepository,
			fx.As(new(commands.TransactionArchive)),
		),
	),
)
