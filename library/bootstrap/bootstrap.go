// Package bootstrap wires a Desk and its automation Runner from the process configuration.
// Both binaries in cmd/ start through Open.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AntonStoeckl/borrowdesk/eventstore/oteladapters"
	"github.com/AntonStoeckl/borrowdesk/eventstore/postgresengine"
	"github.com/AntonStoeckl/borrowdesk/library/automation"
	"github.com/AntonStoeckl/borrowdesk/library/desk"
	"github.com/AntonStoeckl/borrowdesk/library/notify/amqp"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell/config"
)

const instrumentationName = "github.com/AntonStoeckl/borrowdesk"

// App is a wired borrow desk.
type App struct {
	Desk   *desk.Desk
	Runner *automation.Runner

	closers []func(context.Context) error
}

// Close releases everything Open acquired, in reverse order.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}

	return errors.Join(errs...)
}

// Open creates the observability providers, the event store, the optional AMQP publisher,
// the Desk and the Runner. On error everything acquired so far is released.
func Open(ctx context.Context, c config.App, logger *slog.Logger) (_ *App, err error) {
	app := &App{}

	defer func() {
		if err != nil {
			_ = app.Close(context.WithoutCancel(ctx))
		}
	}()

	var (
		storeOptions []postgresengine.Option
		deskOptions  = []desk.Option{
			desk.WithLogger(logger),
			desk.WithFinePerDay(c.FinePerDay),
			desk.WithLoanPolicy(c.LoanPolicy()),
			desk.WithAdminUserIDs(c.AdminUserIDs...),
		}
	)

	if c.OTELEnabled {
		providers, providersErr := config.NewObservabilityProviders(ctx, c)
		if providersErr != nil {
			return nil, providersErr
		}

		app.closers = append(app.closers, providers.Shutdown)

		contextualLogger := oteladapters.NewSlogBridgeLogger(instrumentationName)
		metrics := oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(instrumentationName))
		tracing := oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(instrumentationName))

		storeOptions = append(storeOptions,
			postgresengine.WithContextualLogger(contextualLogger),
			postgresengine.WithMetrics(metrics),
			postgresengine.WithTracing(tracing),
		)

		deskOptions = append(deskOptions,
			desk.WithContextualLogger(contextualLogger),
			desk.WithMetrics(metrics),
			desk.WithTracing(tracing),
		)
	} else {
		storeOptions = append(storeOptions, postgresengine.WithLogger(logger))
	}

	eventStore, closeStore, err := config.OpenEventStore(ctx, c, logger, storeOptions...)
	if err != nil {
		return nil, err
	}

	app.closers = append(app.closers, func(context.Context) error {
		closeStore()

		return nil
	})

	if c.AMQPURL != "" {
		publisher, publisherErr := amqp.NewPublisher(c.AMQPURL, c.AMQPExchange)
		if publisherErr != nil {
			return nil, publisherErr
		}

		app.closers = append(app.closers, func(context.Context) error { return publisher.Close() })
		deskOptions = append(deskOptions, desk.WithPublisher(publisher))
	}

	app.Desk, err = desk.New(eventStore, deskOptions...)
	if err != nil {
		return nil, err
	}

	app.Runner = automation.NewRunner(app.Desk,
		automation.WithDueSoonWindow(c.DueSoonWindow),
		automation.WithLogger(logger),
	)

	logger.InfoContext(ctx, "borrow desk ready",
		"store", c.Store,
		"db_adapter", c.DBAdapter,
		"otel_enabled", c.OTELEnabled,
		"amqp_enabled", c.AMQPURL != "",
	)

	return app, nil
}
