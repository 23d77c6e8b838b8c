package s3

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/bornholm/courtside/internal/avatar"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const Type avatar.Type = "s3"

func init() {
	avatar.Register(Type, CreateStorageFromOptions)
}

type Options struct {
	Endpoint  string        `mapstructure:"endpoint" yaml:"endpoint"`
	AccessKey string        `mapstructure:"accessKey" yaml:"accessKey"`
	SecretKey string        `mapstructure:"secretKey" yaml:"secretKey"`
	Bucket    string        `mapstructure:"bucket" yaml:"bucket"`
	Region    string        `mapstructure:"region" yaml:"region"`
	Secure    bool          `mapstructure:"secure" yaml:"secure"`
	URLTTL    time.Duration `mapstructure:"urlTtl" yaml:"urlTtl"`
}

func CreateStorageFromOptions(options any) (avatar.Storage, error) {
	opts := Options{
		URLTTL: time.Hour,
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         nil,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' storage options decoder", Type)
	}

	if err := decoder.Decode(options); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' storage options", Type)
	}

	if opts.Bucket == "" {
		return nil, errors.Errorf("'%s' storage: bucket option is required", Type)
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' client", Type)
	}

	slog.Debug("s3 avatar storage configured", log.ScrubbedURL("endpoint", client.EndpointURL().String()), slog.String("bucket", opts.Bucket))

	return NewStorage(client, opts.Bucket, opts.Region, opts.URLTTL), nil
}

// Storage keeps avatars as objects of a bucket and hands out presigned URLs.
type Storage struct {
	client *minio.Client
	bucket string
	region string
	ttl    time.Duration

	bucketOnce sync.Once
	bucketErr  error
}

// Put implements avatar.Storage.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if err := avatar.ValidateKey(key); err != nil {
		return errors.WithStack(err)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return errors.WithStack(err)
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Open implements avatar.Storage.
func (s *Storage) Open(ctx context.Context, key string) (io.ReadCloser, *avatar.Info, error) {
	if err := avatar.ValidateKey(key); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, nil, errors.WithStack(avatar.ErrNotFound)
		}

		return nil, nil, errors.WithStack(err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	info := &avatar.Info{
		Size:        stat.Size,
		ContentType: stat.ContentType,
		ModTime:     stat.LastModified,
	}

	return obj, info, nil
}

// Delete implements avatar.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := avatar.ValidateKey(key); err != nil {
		return errors.WithStack(err)
	}

	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{
		ForceDelete: true,
	})
	if err != nil && !isNotFound(err) {
		return errors.WithStack(err)
	}

	return nil
}

// URL implements avatar.Storage.
func (s *Storage) URL(ctx context.Context, key string) (string, time.Time, error) {
	if err := avatar.ValidateKey(key); err != nil {
		return "", time.Time{}, errors.WithStack(err)
	}

	expiresAt := time.Now().Add(s.ttl)

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, url.Values{})
	if err != nil {
		return "", time.Time{}, errors.WithStack(err)
	}

	return u.String(), expiresAt, nil
}

func (s *Storage) ensureBucket(ctx context.Context) error {
	s.bucketOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.bucketErr = errors.WithStack(err)
			return
		}

		if exists {
			return
		}

		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			s.bucketErr = errors.WithStack(err)
		}
	})

	return s.bucketErr
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}

func NewStorage(client *minio.Client, bucket, region string, ttl time.Duration) *Storage {
	return &Storage{
		client: client,
		bucket: bucket,
		region: region,
		ttl:    ttl,
	}
}

var _ avatar.Storage = &Storage{}
