package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// prometheusReader builds a Prometheus exporter over its own registry and
// the scrape handler serving that registry. The exporter doubles as a
// metric reader: attaching it to the meter provider is what puts pipeline
// instruments on the scrape page. An independent registry per call avoids
// collector conflicts across re-initialization.
func prometheusReader() (sdkmetric.Reader, http.Handler, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return exporter, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}

// startMetricsServer serves handler at /metrics on addr until the returned
// shutdown func runs.
func startMetricsServer(addr string, handler http.Handler, logger *slog.Logger) shutdownFunc {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server", slog.String("addr", addr), slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	}
}
