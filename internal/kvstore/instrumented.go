package kvstore

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sodaubai_kvstore_operations_total",
		Help: "Key-value store operations by driver, operation and outcome.",
	}, []string{"driver", "op", "outcome"})

	opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sodaubai_kvstore_operation_seconds",
		Help:    "Key-value store operation latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"driver", "op"})
)

// Instrumented records Prometheus metrics around another Store.
type Instrumented struct {
	next   Store
	driver string
}

// Instrument wraps next, labelling its metrics with driver.
func Instrument(next Store, driver string) *Instrumented {
	return &Instrumented{next: next, driver: driver}
}

func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	v, found, err := s.next.Get(ctx, key)
	outcome := "hit"
	if !found {
		outcome = "miss"
	}
	s.observe("get", start, outcome, err)
	return v, found, err
}

func (s *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observe("set", start, "ok", err)
	return err
}

func (s *Instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.observe("delete", start, "ok", err)
	return err
}

func (s *Instrumented) observe(op string, start time.Time, outcome string, err error) {
	if err != nil {
		outcome = "error"
	}
	opsTotal.WithLabelValues(s.driver, op, outcome).Inc()
	opDuration.WithLabelValues(s.driver, op).Observe(time.Since(start).Seconds())
}
