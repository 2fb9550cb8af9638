package main

import (
	"context"
	"errors"

	"calcservice/internal/config"
	"calcservice/internal/observability"
)

// initTelemetry initialises the OTLP trace, metric and log pipelines when
// telemetry is enabled. The returned function shuts all of them down.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if !cfg.TelemetryEnabled {
		return shutdown, nil
	}

	inits := []func(context.Context) (func(context.Context) error, error){
		observability.InitTracing,
		observability.InitMetrics,
		observability.InitLogging,
	}
	for _, initFn := range inits {
		fn, err := initFn(ctx)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}
