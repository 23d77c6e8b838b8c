// Package avatar stores the profile pictures of the site members and
// resolves them to URLs the header can display.
package avatar

import (
	"context"
	"io"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidKey        = errors.New("invalid key")
	ErrUnsupportedType   = errors.New("unsupported content type")
	ErrStorageNotFound   = errors.New("storage type not found")
	ErrStorageRegistered = errors.New("storage type already registered")
)

type Info struct {
	Size        int64
	ContentType string
	ModTime     time.Time
}

type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, *Info, error)
	Delete(ctx context.Context, key string) error

	// URL returns the address of the avatar. A zero expiration time means the
	// URL does not expire.
	URL(ctx context.Context, key string) (string, time.Time, error)
}

var contentTypeExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// NewKey generates a unique storage key for an image of the given content
// type.
func NewKey(contentType string) (string, error) {
	ext, exists := contentTypeExtensions[contentType]
	if !exists {
		return "", errors.Wrapf(ErrUnsupportedType, "'%s'", contentType)
	}

	return xid.New().String() + ext, nil
}

var validKey = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.(png|jpg|gif|webp)$`)

func ValidateKey(key string) error {
	if !validKey.MatchString(key) {
		return errors.Wrapf(ErrInvalidKey, "'%s'", key)
	}

	return nil
}

type Type string

type FactoryFunc func(options any) (Storage, error)

var (
	registryMutex sync.RWMutex
	registry      = map[Type]FactoryFunc{}
)

func Register(storageType Type, factory FactoryFunc) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if _, exists := registry[storageType]; exists {
		panic(errors.Wrapf(ErrStorageRegistered, "'%s'", storageType))
	}

	registry[storageType] = factory
}

func Registered() []Type {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

func New(storageType Type, options any) (Storage, error) {
	registryMutex.RLock()
	factory, exists := registry[storageType]
	registryMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrStorageNotFound, "'%s'", storageType)
	}

	storage, err := factory(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return storage, nil
}
