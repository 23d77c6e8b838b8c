package avatar

import (
	"context"
	"io"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

type cachedURL struct {
	url       string
	expiresAt time.Time
}

// CachedStorage memoizes the URLs of a storage. Expiring URLs are renewed
// once less than margin remains before their expiration.
type CachedStorage struct {
	backend Storage
	urls    *lru.Cache[string, cachedURL]
	margin  time.Duration
	now     func() time.Time
}

// Put implements Storage.
func (s *CachedStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	s.urls.Remove(key)
	return errors.WithStack(s.backend.Put(ctx, key, r, size, contentType))
}

// Open implements Storage.
func (s *CachedStorage) Open(ctx context.Context, key string) (io.ReadCloser, *Info, error) {
	reader, info, err := s.backend.Open(ctx, key)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return reader, info, nil
}

// Delete implements Storage.
func (s *CachedStorage) Delete(ctx context.Context, key string) error {
	s.urls.Remove(key)
	return errors.WithStack(s.backend.Delete(ctx, key))
}

// URL implements Storage.
func (s *CachedStorage) URL(ctx context.Context, key string) (string, time.Time, error) {
	if cached, ok := s.urls.Get(key); ok {
		if cached.expiresAt.IsZero() || s.now().Add(s.margin).Before(cached.expiresAt) {
			return cached.url, cached.expiresAt, nil
		}
	}

	url, expiresAt, err := s.backend.URL(ctx, key)
	if err != nil {
		return "", time.Time{}, errors.WithStack(err)
	}

	s.urls.Add(key, cachedURL{url: url, expiresAt: expiresAt})

	return url, expiresAt, nil
}

func NewCachedStorage(backend Storage, size int, margin time.Duration) (*CachedStorage, error) {
	urls, err := lru.New[string, cachedURL](size)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &CachedStorage{
		backend: backend,
		urls:    urls,
		margin:  margin,
		now:     time.Now,
	}, nil
}

var _ Storage = &CachedStorage{}
