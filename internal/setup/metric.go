package setup

import (
	"context"

	"github.com/bornholm/courtside/internal/config"
	"github.com/bornholm/courtside/internal/metric"
	"github.com/prometheus/client_golang/prometheus"
)

var NewMetricRegistryFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*prometheus.Registry, error) {
	return metric.NewRegistry(), nil
})
