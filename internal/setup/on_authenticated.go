package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/internal/authn/oauth2"
	"github.com/bornholm/courtside/internal/config"
	"github.com/bornholm/courtside/internal/store"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/pkg/errors"
)

const welcomeMessage = "Bem-vindo ao time! Complete seu perfil com uma foto."

// NewOnAuthenticatedFromConfig replaces the authenticated identity by the
// matching store user, creating it on first sign in.
func NewOnAuthenticatedFromConfig(ctx context.Context, conf *config.Config) (authn.OnAuthenticatedFunc, error) {
	st, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return func(r *http.Request, user authn.User) (*http.Request, error) {
		ctx := r.Context()

		storeUser, ok := user.(*store.User)
		if !ok {
			oauth2User, ok := user.(*oauth2.User)
			if !ok {
				return nil, errors.Errorf("unexpected user type '%T'", user)
			}

			connected, err := connectUser(ctx, st, conf, oauth2User)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			storeUser = connected
		}

		ctx = authn.WithContextUser(ctx, storeUser)

		return r.WithContext(ctx), nil
	}, nil
}

func connectUser(ctx context.Context, st *store.Store, conf *config.Config, user *oauth2.User) (*store.User, error) {
	storeUser, err := st.FindOrCreateUser(ctx, user.UserSubject(), user.UserProvider())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	attrs := store.UserAttributes{
		Nickname: user.Nickname,
		Email:    user.Email,
		IsAdmin:  isAdmin(conf, user),
	}

	// Runs on every request, only write when the provider attributes changed
	if !storeUser.ConnectedAt.IsZero() && storeUser.Nickname == attrs.Nickname && storeUser.Email == attrs.Email && storeUser.IsAdmin == attrs.IsAdmin {
		return storeUser, nil
	}

	storeUser, first, err := st.ConnectUser(ctx, storeUser.ID, attrs)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if first {
		if _, err := st.CreateNotification(ctx, storeUser.ID, welcomeMessage, string(conf.Header.ProfileHref)); err != nil {
			slog.ErrorContext(ctx, "could not create welcome notification", log.Error(errors.WithStack(err)))
		}
	}

	return storeUser, nil
}

func isAdmin(conf *config.Config, user *oauth2.User) bool {
	if user.Email == "" {
		return false
	}

	for _, u := range conf.Auth.Admins {
		if string(u.Email) == user.Email && string(u.Provider) == user.Provider {
			return true
		}
	}

	return false
}
