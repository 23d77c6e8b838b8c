package basic

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/pkg/errors"
)

type UserProvider interface {
	Authenticate(ctx context.Context, username, password string) (authn.User, error)
}

type UserProviderFunc func(ctx context.Context, username, password string) (authn.User, error)

// Authenticate implements UserProvider.
func (fn UserProviderFunc) Authenticate(ctx context.Context, username, password string) (authn.User, error) {
	return fn(ctx, username, password)
}

// NewAuthenticator checks HTTP Basic credentials against the given provider.
// When authoritative, requests without valid credentials are answered with a
// challenge; otherwise the next authenticator of the chain is tried.
func NewAuthenticator(userProvider UserProvider, realm string, authoritative bool) authn.Authenticator {
	return authn.AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (authn.User, error) {
		ctx := r.Context()
		username, password, ok := r.BasicAuth()
		if ok {
			user, err := userProvider.Authenticate(ctx, username, password)
			if err != nil && !errors.Is(err, authn.ErrUnauthenticated) {
				slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.WithStack(err)))
			}

			if user != nil {
				return user, nil
			}
		}

		if !authoritative {
			return nil, nil
		}

		w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Basic realm="%s", charset="UTF-8"`, realm))
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)

		return nil, errors.WithStack(authn.ErrCancel)
	})
}
