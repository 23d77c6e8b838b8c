package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/internal/store"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/pkg/errors"
)

type NotificationCounter interface {
	CountUnreadNotifications(ctx context.Context, userID int64) (int, error)
}

type AvatarResolver interface {
	URL(ctx context.Context, key string) (string, time.Time, error)
}

// Provider maps the authenticated user of a request to the header viewer.
type Provider struct {
	notifications NotificationCounter
	avatars       AvatarResolver
	logout        http.HandlerFunc
}

// Viewer implements header.Identity.
func (p *Provider) Viewer(r *http.Request) header.Viewer {
	ctx := r.Context()

	user, err := authn.ContextUser(ctx)
	if err != nil {
		return header.SignedOut{}
	}

	storeUser, ok := user.(*store.User)
	if !ok {
		return header.SignedIn{
			ID: user.UserProvider() + "/" + user.UserSubject(),
		}
	}

	viewer := header.SignedIn{
		ID:   strconv.FormatInt(storeUser.ID, 10),
		Name: storeUser.DisplayName(),
	}

	if storeUser.Avatar != "" {
		url, _, err := p.avatars.URL(ctx, storeUser.Avatar)
		if err != nil {
			slog.ErrorContext(ctx, "could not resolve avatar url", log.Error(errors.WithStack(err)), slog.String("avatar", storeUser.Avatar))
		} else {
			viewer.Avatar = url
		}
	}

	count, err := p.notifications.CountUnreadNotifications(ctx, storeUser.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not count unread notifications", log.Error(errors.WithStack(err)))
	} else {
		viewer.Notifications = &count
	}

	return viewer
}

// Logout implements header.Identity.
func (p *Provider) Logout(w http.ResponseWriter, r *http.Request) {
	p.logout(w, r)
}

func NewProvider(notifications NotificationCounter, avatars AvatarResolver, logout http.HandlerFunc) *Provider {
	return &Provider{
		notifications: notifications,
		avatars:       avatars,
		logout:        logout,
	}
}

var _ header.Identity = &Provider{}
