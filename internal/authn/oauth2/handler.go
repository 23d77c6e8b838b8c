package oauth2

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth/gothic"
	"github.com/pkg/errors"
)

type Provider struct {
	ID    string
	Label string
	Icon  string
}

// PasswordAuthenticator checks the credentials submitted with the login form.
type PasswordAuthenticator interface {
	AuthenticatePassword(ctx context.Context, username, password string) (*User, error)
}

type PasswordAuthenticatorFunc func(ctx context.Context, username, password string) (*User, error)

// AuthenticatePassword implements PasswordAuthenticator.
func (fn PasswordAuthenticatorFunc) AuthenticatePassword(ctx context.Context, username, password string) (*User, error) {
	return fn(ctx, username, password)
}

type Handler struct {
	mux                *http.ServeMux
	sessionStore       sessions.Store
	sessionName        string
	providers          []Provider
	passwords          PasswordAuthenticator
	prefix             string
	postLoginRedirect  string
	postLogoutRedirect string
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(sessionStore sessions.Store, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)
	h := &Handler{
		mux:                http.NewServeMux(),
		sessionStore:       sessionStore,
		sessionName:        opts.SessionName,
		providers:          opts.Providers,
		passwords:          opts.Passwords,
		prefix:             opts.Prefix,
		postLoginRedirect:  opts.PostLoginRedirect,
		postLogoutRedirect: opts.PostLogoutRedirect,
	}

	h.mux.HandleFunc(fmt.Sprintf("GET %s/login", h.prefix), h.getLoginPage)
	if h.passwords != nil {
		h.mux.Handle(fmt.Sprintf("POST %s/login", h.prefix), opts.LoginMiddleware(http.HandlerFunc(h.handlePasswordLogin)))
	}
	h.mux.Handle(fmt.Sprintf("GET %s/providers/{provider}", h.prefix), withContextProvider(http.HandlerFunc(h.handleProvider)))
	h.mux.Handle(fmt.Sprintf("GET %s/providers/{provider}/callback", h.prefix), withContextProvider(http.HandlerFunc(h.handleProviderCallback)))
	h.mux.HandleFunc(fmt.Sprintf("GET %s/logout", h.prefix), h.Logout)
	h.mux.Handle(fmt.Sprintf("GET %s/providers/{provider}/logout", h.prefix), withContextProvider(http.HandlerFunc(h.handleProviderLogout)))

	return h
}

// Authenticator returns the session authenticator. An authoritative
// authenticator redirects anonymous requests to the login page.
func (h *Handler) Authenticator(authoritative bool) authn.Authenticator {
	return authn.AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (authn.User, error) {
		user, err := h.retrieveSessionUser(r)
		if err != nil {
			if !authoritative {
				return nil, nil
			}

			if !errors.Is(err, errSessionNotFound) {
				slog.ErrorContext(r.Context(), "could not retrieve user from session", log.Error(errors.WithStack(err)))
			}

			http.Redirect(w, r, fmt.Sprintf("%s/login", h.prefix), http.StatusSeeOther)
			return nil, errors.WithStack(authn.ErrCancel)
		}

		return user, nil
	})
}

var _ http.Handler = &Handler{}

func withContextProvider(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		provider := r.PathValue("provider")
		r = r.WithContext(context.WithValue(r.Context(), gothic.ProviderParamKey, provider))
		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
