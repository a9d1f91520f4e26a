package components

import (
	"playpoint/internal/events"
	"playpoint/internal/pkg/clock"
	"playpoint/internal/pkg/config"
	"playpoint/internal/state"
	"playpoint/internal/usecase/commands"
	"playpoint/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	func(hub *events.Hub) commands.Publisher {
		return hub
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSessionCommands,
		commands.NewBookingCommands,
		commands.NewPaymentCommands,
		commands.NewStationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSessionQueries,
		queries.NewBookingQueries,
		func(txBook *state.TransactionBook, clk clock.Clock, cfg config.Config) queries.PaymentQueries {
			return queries.NewPaymentQueries(txBook, clk, cfg.Payments.PendingAlertAfter)
		},
	),
)
