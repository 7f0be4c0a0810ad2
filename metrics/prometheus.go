// Package metrics provides Prometheus metrics for SAT parsing
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/sat"
)

var (
	EntitiesParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satgraph_entities_parsed_total",
			Help: "Total number of entity records turned into entities",
		},
		[]string{"entity_type"},
	)

	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satgraph_records_skipped_total",
			Help: "Total number of entity records skipped",
		},
		[]string{"entity_type", "kind"},
	)

	SplineRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satgraph_spline_rejected_total",
			Help: "Spline blocks whose control points could not be reconstructed",
		},
		[]string{"subtype"},
	)

	ParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "satgraph_parse_duration_seconds",
			Help:    "Wall time of one SAT parse",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	DocumentEntities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "satgraph_document_entities",
			Help: "Entity count of the most recent parse",
		},
	)
)

// Observer records parser events into the package metrics.
type Observer struct{}

var _ sat.Observer = Observer{}

func (Observer) RecordParsed(entityType string) {
	EntitiesParsed.WithLabelValues(entityType).Inc()
}

func (Observer) RecordSkipped(entityType string, kind sat.ErrorKind) {
	RecordsSkipped.WithLabelValues(entityType, string(kind)).Inc()
}

func (Observer) SplineRejected(subtype string) {
	if subtype == "" {
		subtype = "unknown"
	}
	SplineRejected.WithLabelValues(subtype).Inc()
}

func (Observer) ParseFinished(elapsed time.Duration, entities int) {
	ParseDuration.Observe(elapsed.Seconds())
	DocumentEntities.Set(float64(entities))
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, log *zap.SugaredLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "metrics server on %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown metrics server")
		}
		return nil
	}
}
