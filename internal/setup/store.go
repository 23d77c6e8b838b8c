package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/courtside/internal/config"
	"github.com/bornholm/courtside/internal/store"
	"github.com/pkg/errors"
)

var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*store.Store, error) {
	st := store.NewStore(string(conf.Store.Path))

	if err := st.HealthCheck(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	for _, u := range conf.Auth.Local {
		if u.Username == "" {
			continue
		}

		local := store.LocalUser{
			Username: string(u.Username),
			Password: string(u.Password),
			Nickname: string(u.Name),
			Email:    string(u.Email),
		}

		if local.Password == "" {
			return nil, errors.Errorf("local user '%s' has no password", local.Username)
		}

		if _, err := st.UpsertLocalUser(ctx, local); err != nil {
			return nil, errors.Wrapf(err, "could not create local user '%s'", local.Username)
		}

		slog.DebugContext(ctx, "local user ready", slog.String("username", local.Username))
	}

	return st, nil
})
