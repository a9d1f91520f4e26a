package components

import (
	"playpoint/internal/events"
	"playpoint/internal/handler"
	"playpoint/internal/handler/api"
	"playpoint/internal/handler/middleware"
	"playpoint/internal/pkg/clock"
	"playpoint/internal/pkg/config"
	"playpoint/internal/usecase/commands"
	"playpoint/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSessionHandler,
		api.NewBookingHandler,
		NewPaymentHandler,
		api.NewStationHandler,
		NewStreamHandler,
		middleware.NewAuthMiddleware,
		func(session *api.SessionHandler, booking *api.BookingHandler, payment *api.PaymentHandler, station *api.StationHandler, stream *api.StreamHandler) handler.Handlers {
			return handler.Handlers{
				Session: session,
				Booking: booking,
				Payment: payment,
				Station: station,
				Stream:  stream,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)

func NewPaymentHandler(paymentCommands commands.PaymentCommands, paymentQueries queries.PaymentQueries, cfg config.Config) *api.PaymentHandler {
	return api.NewPaymentHandler(paymentCommands, paymentQueries, cfg.Payments)
}

func NewStreamHandler(hub *events.Hub, clk clock.Clock, cfg config.Config) *api.StreamHandler {
	return api.NewStreamHandler(hub, clk, cfg.Stream)
}
