package config

import "github.com/goccy/go-yaml"

type Auth struct {
	Providers AuthProviders `yaml:"providers"`
	Local     []LocalUser   `yaml:"local"`
	Admins    []User        `yaml:"admins"`
}

type User struct {
	Email    InterpolatedString `yaml:"email"`
	Provider InterpolatedString `yaml:"provider"`
}

// LocalUser is an account signing in with a password instead of an OAuth2
// provider.
type LocalUser struct {
	Username InterpolatedString `yaml:"username"`
	Password InterpolatedString `yaml:"password"`
	Name     InterpolatedString `yaml:"name"`
	Email    InterpolatedString `yaml:"email"`
}

type AuthProviders struct {
	Google OAuth2Provider `yaml:"google"`
	Github OAuth2Provider `yaml:"github"`
	Gitea  GiteaProvider  `yaml:"gitea"`
	OIDC   OIDCProvider   `yaml:"oidc"`
}

type OAuth2Provider struct {
	Key    InterpolatedString      `yaml:"key"`
	Secret InterpolatedString      `yaml:"secret"`
	Scopes InterpolatedStringSlice `yaml:"scopes"`
}

type OIDCProvider struct {
	OAuth2Provider `yaml:",inline"`
	DiscoveryURL   InterpolatedString `yaml:"discoveryUrl"`
	Icon           InterpolatedString `yaml:"icon"`
	Label          InterpolatedString `yaml:"label"`
}

type GiteaProvider struct {
	OAuth2Provider `yaml:",inline"`
	TokenURL       InterpolatedString `yaml:"tokenUrl"`
	AuthURL        InterpolatedString `yaml:"authUrl"`
	ProfileURL     InterpolatedString `yaml:"profileUrl"`
	Label          InterpolatedString `yaml:"label"`
}

func NewDefaultAuthConfig() Auth {
	return Auth{
		Providers: AuthProviders{
			Google: OAuth2Provider{
				Key:    "${COURTSIDE_AUTH_GOOGLE_KEY}",
				Secret: "${COURTSIDE_AUTH_GOOGLE_SECRET}",
				Scopes: InterpolatedStringSlice{"profile", "email"},
			},
			Github: OAuth2Provider{
				Key:    "${COURTSIDE_AUTH_GITHUB_KEY}",
				Secret: "${COURTSIDE_AUTH_GITHUB_SECRET}",
				Scopes: InterpolatedStringSlice{"user:email"},
			},
		},
		Local: []LocalUser{},
		Admins: []User{
			{
				Email:    "${COURTSIDE_AUTH_ADMIN_EMAIL}",
				Provider: "google",
			},
		},
	}
}

func NewAuthConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                    []*yaml.Comment{yaml.HeadComment(" Auth configuration")},
		".providers":          []*yaml.Comment{yaml.HeadComment(" OAuth2 identity providers", " A provider is enabled when both its key and secret are set")},
		".local":              []*yaml.Comment{yaml.HeadComment(" Accounts signing in with a username and a password")},
		".admins":             []*yaml.Comment{yaml.HeadComment(" List of users with admin privileges")},
		".admins[0].email":    []*yaml.Comment{yaml.HeadComment(" Admin's email address")},
		".admins[0].provider": []*yaml.Comment{yaml.HeadComment(" Admin's identity provider (see 'providers' section, or 'local')")},
	}
}
