package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "modaflow"

// Metrics holds all ModaFlow metric instruments.
type Metrics struct {
	OrdersCreated    metric.Int64Counter
	OrdersRejected   metric.Int64Counter
	StatusUpdates    metric.Int64Counter
	CopyGenerations  metric.Int64Counter
	CopyFallbacks    metric.Int64Counter
	CheckoutDuration metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.OrdersCreated, err = meter.Int64Counter("modaflow.orders.created",
		metric.WithDescription("Number of orders created"))
	if err != nil {
		return nil, err
	}

	m.OrdersRejected, err = meter.Int64Counter("modaflow.orders.rejected",
		metric.WithDescription("Number of checkout submissions rejected"))
	if err != nil {
		return nil, err
	}

	m.StatusUpdates, err = meter.Int64Counter("modaflow.orders.status_updates",
		metric.WithDescription("Number of order status updates"))
	if err != nil {
		return nil, err
	}

	m.CopyGenerations, err = meter.Int64Counter("modaflow.copy.generations",
		metric.WithDescription("Number of marketing copy generations"))
	if err != nil {
		return nil, err
	}

	m.CopyFallbacks, err = meter.Int64Counter("modaflow.copy.fallbacks",
		metric.WithDescription("Number of copy generations that returned a fallback"))
	if err != nil {
		return nil, err
	}

	m.CheckoutDuration, err = meter.Float64Histogram("modaflow.checkout.duration_seconds",
		metric.WithDescription("Checkout processing duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
