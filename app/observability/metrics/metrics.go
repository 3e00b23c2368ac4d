package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	RecommendationRequestsTotal   metric.Int64Counter
	RecommendationDurationSeconds metric.Float64Histogram
	ExternalCallErrorsTotal       metric.Int64Counter
	StoreOperationDurationSeconds metric.Float64Histogram
	StoreOperationErrorsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TravelRecommendations")
		var err error
		m := &AppMetrics{}

		m.RecommendationRequestsTotal, err = meter.Int64Counter(
			"recommendation_requests_total",
			metric.WithDescription("Total number of recommendation requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create recommendation_requests_total: %v", err)
		}

		m.RecommendationDurationSeconds, err = meter.Float64Histogram(
			"recommendation_duration_seconds",
			metric.WithDescription("Duration of the full recommendation flow in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create recommendation_duration_seconds: %v", err)
		}

		m.ExternalCallErrorsTotal, err = meter.Int64Counter(
			"external_call_errors_total",
			metric.WithDescription("Total number of failed calls to third-party services"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create external_call_errors_total: %v", err)
		}

		m.StoreOperationDurationSeconds, err = meter.Float64Histogram(
			"store_operation_duration_seconds",
			metric.WithDescription("Duration of travel record store operations in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create store_operation_duration_seconds: %v", err)
		}

		m.StoreOperationErrorsTotal, err = meter.Int64Counter(
			"store_operation_errors_total",
			metric.WithDescription("Total number of failed travel record store operations"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create store_operation_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// RecordExternalError counts a failed call to the named service.
func (m *AppMetrics) RecordExternalError(ctx context.Context, service string) {
	m.ExternalCallErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}

// RecordStoreOperation records the duration of a store operation and counts it as failed when err is set.
func (m *AppMetrics) RecordStoreOperation(ctx context.Context, op string, start time.Time, err error) {
	attrs := metric.WithAttributes(attribute.String("op", op))
	m.StoreOperationDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.StoreOperationErrorsTotal.Add(ctx, 1, attrs)
	}
}
