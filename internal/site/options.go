package site

type Options struct {
	MaxAvatarSize int64
	SignInHref    string
	BaseURL       string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		MaxAvatarSize: 2 << 20,
		SignInHref:    "/auth/login",
		BaseURL:       "http://localhost:8080",
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithMaxAvatarSize(size int64) OptionFunc {
	return func(opts *Options) {
		opts.MaxAvatarSize = size
	}
}

func WithSignInHref(href string) OptionFunc {
	return func(opts *Options) {
		opts.SignInHref = href
	}
}

// WithBaseURL sets the public URL of the site, used to display the API
// endpoint on the profile page.
func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}
