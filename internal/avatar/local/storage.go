package local

import (
	"context"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bornholm/courtside/internal/avatar"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

const Type avatar.Type = "local"

func init() {
	avatar.Register(Type, CreateStorageFromOptions)
}

type Options struct {
	Dir     string `mapstructure:"dir" yaml:"dir"`
	BaseURL string `mapstructure:"baseUrl" yaml:"baseUrl"`
}

func CreateStorageFromOptions(options any) (avatar.Storage, error) {
	opts := Options{}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' storage options", Type)
	}

	if opts.Dir == "" {
		return nil, errors.Errorf("'%s' storage: dir option is required", Type)
	}

	if err := os.MkdirAll(opts.Dir, 0o750); err != nil {
		return nil, errors.WithStack(err)
	}

	return NewStorage(opts.Dir, opts.BaseURL), nil
}

// Storage keeps avatars as files of a directory. Their URLs point to the
// site itself, which serves them from BaseURL.
type Storage struct {
	dir     string
	baseURL string
}

// Put implements avatar.Storage.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	path, err := s.path(key)
	if err != nil {
		return errors.WithStack(err)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return errors.WithStack(err)
	}

	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return errors.WithStack(err)
	}

	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Open implements avatar.Storage.
func (s *Storage) Open(ctx context.Context, key string) (io.ReadCloser, *avatar.Info, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, errors.WithStack(avatar.ErrNotFound)
		}

		return nil, nil, errors.WithStack(err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, errors.WithStack(err)
	}

	info := &avatar.Info{
		Size:        stat.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(key)),
		ModTime:     stat.ModTime(),
	}

	return file, info, nil
}

// Delete implements avatar.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.WithStack(err)
	}

	return nil
}

// URL implements avatar.Storage.
func (s *Storage) URL(ctx context.Context, key string) (string, time.Time, error) {
	if err := avatar.ValidateKey(key); err != nil {
		return "", time.Time{}, errors.WithStack(err)
	}

	return strings.TrimSuffix(s.baseURL, "/") + "/" + url.PathEscape(key), time.Time{}, nil
}

func (s *Storage) path(key string) (string, error) {
	if err := avatar.ValidateKey(key); err != nil {
		return "", errors.WithStack(err)
	}

	return filepath.Join(s.dir, key), nil
}

func NewStorage(dir, baseURL string) *Storage {
	return &Storage{
		dir:     dir,
		baseURL: baseURL,
	}
}

var _ avatar.Storage = &Storage{}
