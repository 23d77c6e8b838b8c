package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IncrementalCounter interface {
	Increment(labels ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment implements IncrementalCounter.
func (c *Counter) Increment(labels ...string) {
	c.vec.WithLabelValues(labels...).Inc()
}

var _ IncrementalCounter = &Counter{}

func NewCounter(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(vec)

	return &Counter{
		Name: name,
		Help: help,
		vec:  vec,
	}
}

type NoopCounter struct{}

// Increment implements IncrementalCounter.
func (NoopCounter) Increment(labels ...string) {}

var _ IncrementalCounter = NoopCounter{}

const Namespace = "courtside"

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
