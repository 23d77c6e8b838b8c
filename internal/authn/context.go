package authn

import (
	"context"

	"github.com/pkg/errors"
)

type contextKey string

const contextKeyUser contextKey = "authnUser"

var ErrNoContextUser = errors.New("no user in context")

func ContextUser(ctx context.Context) (User, error) {
	user, ok := ctx.Value(contextKeyUser).(User)
	if !ok || user == nil {
		return nil, errors.WithStack(ErrNoContextUser)
	}

	return user, nil
}

// WithContextUser returns a copy of ctx carrying user. OnAuthenticated hooks
// use it to replace the authenticated identity by a richer one.
func WithContextUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}
