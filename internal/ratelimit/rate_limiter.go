package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/pkg/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per client key. Only the most recently
// seen keys are tracked, the least recently seen ones are evicted.
type RateLimiter struct {
	rate  rate.Limit
	burst int
	mutex sync.Mutex
	keys  *lru.Cache[string, *rate.Limiter]
}

type GetKeyFunc func(r *http.Request) (string, error)

func (l *RateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if limiter, exists := l.keys.Get(key); exists {
		return limiter
	}

	limiter := rate.NewLimiter(l.rate, l.burst)
	l.keys.Add(key, limiter)

	return limiter
}

// Len returns the number of tracked keys.
func (l *RateLimiter) Len() int {
	return l.keys.Len()
}

func (l *RateLimiter) Middleware(getKey GetKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key, err := getKey(r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve rate limit key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !l.Allow(key) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserKey identifies the client by its authenticated user.
func UserKey(r *http.Request) (string, error) {
	user, err := authn.ContextUser(r.Context())
	if err != nil {
		return "", errors.WithStack(err)
	}

	return user.UserProvider() + "-" + user.UserSubject(), nil
}

// RemoteAddrKey identifies the client by its IP address.
func RemoteAddrKey(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr, nil
	}

	return host, nil
}

// New returns a limiter tracking at most size client keys.
func New(limit rate.Limit, burst int, size int) (*RateLimiter, error) {
	keys, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &RateLimiter{
		rate:  limit,
		burst: burst,
		keys:  keys,
	}, nil
}
