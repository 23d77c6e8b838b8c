package setup

import (
	"context"
	"time"

	"github.com/bornholm/courtside/internal/avatar"
	"github.com/bornholm/courtside/internal/config"
	"github.com/pkg/errors"

	_ "github.com/bornholm/courtside/internal/avatar/local"
	_ "github.com/bornholm/courtside/internal/avatar/s3"
)

// Presigned URLs are renewed this long before they expire
const avatarURLMargin = 5 * time.Minute

var NewAvatarStorageFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (avatar.Storage, error) {
	var options any
	if conf.Avatar.Options != nil {
		options = conf.Avatar.Options.Data
	}

	backend, err := avatar.New(avatar.Type(conf.Avatar.Type), options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	storage, err := avatar.NewCachedStorage(backend, int(conf.Avatar.CacheSize), avatarURLMargin)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return storage, nil
})
