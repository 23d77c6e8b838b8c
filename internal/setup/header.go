package setup

import (
	"context"

	"github.com/bornholm/courtside/internal/config"
	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/internal/identity"
	"github.com/bornholm/courtside/internal/rule"
	"github.com/pkg/errors"
)

const headerPrefix = "/header"

func NewNavigationFromConfig(conf *config.Config) (header.Navigation, error) {
	primary, err := newLinks(conf.Header.Primary)
	if err != nil {
		return header.Navigation{}, errors.Wrap(err, "invalid primary link")
	}

	mobile, err := newLinks(conf.Header.Mobile)
	if err != nil {
		return header.Navigation{}, errors.Wrap(err, "invalid mobile link")
	}

	nav := header.Navigation{
		Brand: header.Brand{
			Title: string(conf.Header.Brand.Title),
			Logo:  string(conf.Header.Brand.Logo),
			Href:  string(conf.Header.Brand.Href),
		},
		Primary:           primary,
		Mobile:            mobile,
		SignInHref:        string(conf.Header.SignInHref),
		ProfileHref:       string(conf.Header.ProfileHref),
		NotificationsHref: string(conf.Header.NotificationsHref),
	}

	return nav, nil
}

func newLinks(links []config.Link) ([]header.Link, error) {
	headerLinks := make([]header.Link, 0, len(links))

	for _, l := range links {
		r := rule.New(string(l.Rule))

		// Invalid rules are rejected at startup rather than on each render
		if _, err := r.Compile(); err != nil {
			return nil, errors.Wrapf(err, "link '%s'", l.Href)
		}

		headerLinks = append(headerLinks, header.Link{
			Label: string(l.Label),
			Href:  string(l.Href),
			Rule:  r,
		})
	}

	return headerLinks, nil
}

var NewHeaderHandlerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*header.Handler, error) {
	nav, err := NewNavigationFromConfig(conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	st, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	avatars, err := NewAvatarStorageFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	oauth2Handler, err := NewOAuth2HandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	reg, err := NewMetricRegistryFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	provider := identity.NewProvider(st, avatars, oauth2Handler.Logout)

	handler := header.NewHandler(
		provider,
		header.WithPrefix(headerPrefix),
		header.WithNavigation(nav),
		header.WithRegisterer(reg),
	)

	return handler, nil
})
