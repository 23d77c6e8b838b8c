package oauth2

import "net/http"

type Options struct {
	Providers          []Provider
	SessionName        string
	Prefix             string
	PostLoginRedirect  string
	PostLogoutRedirect string
	Passwords          PasswordAuthenticator
	LoginMiddleware    func(http.Handler) http.Handler
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Providers:          make([]Provider, 0),
		SessionName:        "courtside_auth",
		Prefix:             "",
		PostLoginRedirect:  "/",
		PostLogoutRedirect: "/",
		LoginMiddleware: func(h http.Handler) http.Handler {
			return h
		},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithProviders(providers ...Provider) OptionFunc {
	return func(opts *Options) {
		opts.Providers = providers
	}
}

func WithSessionName(sessionName string) OptionFunc {
	return func(opts *Options) {
		opts.SessionName = sessionName
	}
}

func WithPrefix(prefix string) OptionFunc {
	return func(opts *Options) {
		opts.Prefix = prefix
	}
}

func WithPostLoginRedirect(path string) OptionFunc {
	return func(opts *Options) {
		opts.PostLoginRedirect = path
	}
}

func WithPostLogoutRedirect(path string) OptionFunc {
	return func(opts *Options) {
		opts.PostLogoutRedirect = path
	}
}

// WithPasswords enables the username/password form of the login page.
func WithPasswords(passwords PasswordAuthenticator) OptionFunc {
	return func(opts *Options) {
		opts.Passwords = passwords
	}
}

// WithLoginMiddleware wraps the password login endpoint, typically with a
// rate limiter.
func WithLoginMiddleware(middleware func(http.Handler) http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.LoginMiddleware = middleware
	}
}
