package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/courtside/internal/admin"
	"github.com/bornholm/courtside/internal/api"
	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/internal/authn/basic"
	"github.com/bornholm/courtside/internal/config"
	"github.com/bornholm/courtside/internal/debug"
	"github.com/bornholm/courtside/internal/metric"
	"github.com/bornholm/courtside/internal/ratelimit"
	"github.com/bornholm/courtside/internal/site"
	"github.com/pkg/errors"

	sloghttp "github.com/samber/slog-http"
)

const (
	apiPrefix   = "/api"
	adminPrefix = "/admin"
	basicRealm  = "courtside"
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	oauth2Handler, err := NewOAuth2HandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mux.Handle("/auth/", slogMiddleware(oauth2Handler))

	st, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	avatars, err := NewAvatarStorageFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	headerHandler, err := NewHeaderHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	onAuthenticated, err := NewOnAuthenticatedFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rateLimiter, err := NewRateLimiterFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Public pages render the header for anonymous visitors too
	siteAuth := authn.Chain(
		authn.WithAuthenticators(
			oauth2Handler.Authenticator(false),
		),
		authn.WithOnAuthenticated(onAuthenticated),
		authn.WithAnonymousAccess(),
	)

	mux.Handle(headerPrefix+"/", siteAuth(slogMiddleware(headerHandler)))

	apiAuth := authn.Chain(
		authn.WithAuthenticators(
			oauth2Handler.Authenticator(false),
			basic.NewAuthenticator(st, basicRealm, true),
		),
		authn.WithOnAuthenticated(onAuthenticated),
	)

	apiHandler := api.NewHandler(apiPrefix, headerHandler)
	mux.Handle(apiPrefix+"/", apiAuth(slogMiddleware(rateLimiter.Middleware(ratelimit.UserKey)(apiHandler))))

	adminAuth := authn.Chain(
		authn.WithAuthenticators(
			oauth2Handler.Authenticator(true),
		),
		authn.WithOnAuthenticated(onAuthenticated),
	)

	adminHandler := admin.NewHandler(adminPrefix, headerHandler, st)
	mux.Handle(adminPrefix+"/", adminAuth(slogMiddleware(adminHandler)))

	if conf.Debug.Enabled {
		reg, err := NewMetricRegistryFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		prefix := string(conf.Debug.Prefix)
		mux.Handle(prefix+"/", debug.NewHandler(prefix, metric.Handler(reg)))

		slog.WarnContext(ctx, "debug endpoints enabled", slog.String("prefix", prefix))
	}

	siteHandler := site.NewHandler(
		headerHandler, st, avatars,
		site.WithMaxAvatarSize(int64(conf.Avatar.MaxSize)),
		site.WithSignInHref(string(conf.Header.SignInHref)),
		site.WithBaseURL(string(conf.HTTP.BaseURL)),
	)

	mux.Handle("/", siteAuth(slogMiddleware(siteHandler)))

	return mux, nil
}
