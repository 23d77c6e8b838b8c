package setup

import (
	"context"

	"github.com/bornholm/courtside/internal/config"
	"github.com/bornholm/courtside/internal/ratelimit"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var NewRateLimiterFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*ratelimit.RateLimiter, error) {
	limiter, err := ratelimit.New(rate.Limit(conf.RateLimit.Rate), int(conf.RateLimit.Burst), int(conf.RateLimit.Size))
	if err != nil {
		return nil, errors.Wrap(err, "could not create rate limiter")
	}

	return limiter, nil
})
