package header

import (
	"github.com/bornholm/courtside/internal/metric"
	"github.com/prometheus/client_golang/prometheus"
)

type Options struct {
	Prefix     string
	Navigation Navigation
	Router     Router
	Viewport   Viewport
	Registerer prometheus.Registerer
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Prefix:     "/header",
		Navigation: DefaultNavigation(),
		Router:     RequestRouter{},
		Viewport:   ClientHintViewport{},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithPrefix(prefix string) OptionFunc {
	return func(opts *Options) {
		opts.Prefix = prefix
	}
}

func WithNavigation(nav Navigation) OptionFunc {
	return func(opts *Options) {
		opts.Navigation = nav
	}
}

func WithRouter(router Router) OptionFunc {
	return func(opts *Options) {
		opts.Router = router
	}
}

func WithViewport(viewport Viewport) OptionFunc {
	return func(opts *Options) {
		opts.Viewport = viewport
	}
}

// WithRegisterer enables the header metrics on reg.
func WithRegisterer(reg prometheus.Registerer) OptionFunc {
	return func(opts *Options) {
		opts.Registerer = reg
	}
}

type counters struct {
	renders metric.IncrementalCounter
	toggles metric.IncrementalCounter
	logouts metric.IncrementalCounter
}

func newCounters(reg prometheus.Registerer) counters {
	if reg == nil {
		return counters{
			renders: metric.NoopCounter{},
			toggles: metric.NoopCounter{},
			logouts: metric.NoopCounter{},
		}
	}

	return counters{
		renders: metric.NewCounter(reg, "header_renders_total", "Number of rendered site headers", "viewer"),
		toggles: metric.NewCounter(reg, "header_menu_toggles_total", "Number of mobile menu toggles", "state"),
		logouts: metric.NewCounter(reg, "header_logouts_total", "Number of logouts triggered from the site header"),
	}
}
