package bootstrap

import (
	"context"
	"log/slog"

	"playpoint/internal/events"
	"playpoint/internal/infra/relay"
	"playpoint/internal/pkg/config"

	"go.uber.org/fx"
)

var RelayModule = fx.Module("relay",
	fx.Invoke(startRelay),
)

// startRelay mirrors the event stream onto the broker. A lounge running
// without RabbitMQ just leaves RELAY_AMQP_URL unset.
func startRelay(lc fx.Lifecycle, cfg config.Config, hub *events.Hub, logger *slog.Logger) {
	if cfg.Relay.URL == "" {
		logger.Info("event relay disabled")
		return
	}

	var (
		pub    *relay.Publisher
		sub    *events.Subscriber
		cancel context.CancelFunc
	)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			p, err := relay.NewPublisher(cfg.Relay.URL, cfg.Relay.Exchange, logger)
			if err != nil {
				return err
			}
			pub = p
			sub = hub.Subscribe()

			runCtx, c := context.WithCancel(context.Background())
			cancel = c
			go pub.Run(runCtx, sub)

			logger.Info("event relay started", "exchange", cfg.Relay.Exchange)
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
			}
			if sub != nil {
				hub.Unsubscribe(sub)
			}
			if pub != nil {
				return pub.Close()
			}
			return nil
		},
	})
}
