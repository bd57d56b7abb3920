package metrics

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// A nil *AppMetrics is valid and records nothing.
type AppMetrics struct {
	SubmissionsTotal         metric.Int64Counter
	SubmissionsDroppedTotal  metric.Int64Counter
	ValidationFailuresTotal  metric.Int64Counter
	UpstreamRequestDuration  metric.Float64Histogram
	GenerationRequestsTotal  metric.Int64Counter
	GenerationCacheHitsTotal metric.Int64Counter
	ActiveSessionsGauge      metric.Int64Gauge
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics(serviceName string) {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter(serviceName)
		var err error
		m := &AppMetrics{}

		m.SubmissionsTotal, err = meter.Int64Counter(
			"planner_submissions_total",
			metric.WithDescription("Itinerary submissions by outcome"),
			metric.WithUnit("{submission}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_submissions_total: %v", err)
		}

		m.SubmissionsDroppedTotal, err = meter.Int64Counter(
			"planner_submissions_dropped_total",
			metric.WithDescription("Submissions dropped while a request was outstanding"),
			metric.WithUnit("{submission}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_submissions_dropped_total: %v", err)
		}

		m.ValidationFailuresTotal, err = meter.Int64Counter(
			"planner_validation_failures_total",
			metric.WithDescription("Submissions rejected by form validation"),
			metric.WithUnit("{submission}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_validation_failures_total: %v", err)
		}

		m.UpstreamRequestDuration, err = meter.Float64Histogram(
			"planner_upstream_request_duration_seconds",
			metric.WithDescription("Duration of itinerary endpoint calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_upstream_request_duration_seconds: %v", err)
		}

		m.GenerationRequestsTotal, err = meter.Int64Counter(
			"itinerary_generation_requests_total",
			metric.WithDescription("Itinerary generation requests by outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_requests_total: %v", err)
		}

		m.GenerationCacheHitsTotal, err = meter.Int64Counter(
			"itinerary_generation_cache_hits_total",
			metric.WithDescription("Generation requests answered from cache"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_cache_hits_total: %v", err)
		}

		m.ActiveSessionsGauge, err = meter.Int64Gauge(
			"planner_active_sessions",
			metric.WithDescription("Current number of planner sessions held in memory"),
			metric.WithUnit("{session}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_active_sessions: %v", err)
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

func (m *AppMetrics) RecordSubmission(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AppMetrics) RecordDropped(ctx context.Context) {
	if m == nil {
		return
	}
	m.SubmissionsDroppedTotal.Add(ctx, 1)
}

func (m *AppMetrics) RecordValidationFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.ValidationFailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *AppMetrics) RecordUpstreamDuration(ctx context.Context, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamRequestDuration.Record(ctx, seconds)
}

func (m *AppMetrics) RecordGeneration(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.GenerationRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AppMetrics) RecordCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.GenerationCacheHitsTotal.Add(ctx, 1)
}

func (m *AppMetrics) SetActiveSessions(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.ActiveSessionsGauge.Record(ctx, int64(n))
}
