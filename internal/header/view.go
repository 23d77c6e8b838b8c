package header

import (
	"context"
	"log/slog"

	"github.com/bornholm/courtside/internal/rule"
	"github.com/bornholm/courtside/pkg/log"
)

// Input gathers the signals the header is derived from.
type Input struct {
	Viewer Viewer
	Path   string
	Mobile bool
	Menu   MenuState
}

type LinkView struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

type Badge struct {
	Count int    `json:"count"`
	Href  string `json:"href"`
}

type Account struct {
	Name        string `json:"name"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Initials    string `json:"initials"`
	ProfileHref string `json:"profileHref"`
}

type Panel struct {
	Links []LinkView `json:"links"`
}

type View struct {
	Brand   Brand      `json:"brand"`
	Path    string     `json:"path"`
	Primary []LinkView `json:"primary"`

	// Badge and Account are set for signed in viewers, SignIn otherwise.
	Badge   *Badge    `json:"badge,omitempty"`
	Account *Account  `json:"account,omitempty"`
	SignIn  *LinkView `json:"signIn,omitempty"`

	Mobile bool      `json:"mobile"`
	Menu   MenuState `json:"menu"`
	Panel  *Panel    `json:"panel,omitempty"`

	// Routes of the header's own endpoints, set by the Handler.
	ToggleHref string `json:"-"`
	LogoutHref string `json:"-"`
}

func (v View) MenuOpen() bool {
	return v.Menu.IsOpen()
}

// IsActive reports whether a link targeting target is the current page.
func IsActive(current, target string) bool {
	return current == target
}

// Build derives the header view from its inputs. It has no side effects
// beyond logging rules that fail to evaluate.
func Build(ctx context.Context, nav Navigation, in Input) View {
	view := View{
		Brand:  nav.Brand,
		Path:   in.Path,
		Mobile: in.Mobile,
		Menu:   in.Menu,
	}

	env := rule.Env{
		Path:   in.Path,
		Mobile: in.Mobile,
	}

	switch v := in.Viewer.(type) {
	case SignedIn:
		count := 0
		if v.Notifications != nil {
			count = *v.Notifications
		}

		env.SignedIn = true
		env.Name = v.Name
		env.Notifications = count

		view.Badge = &Badge{
			Count: count,
			Href:  nav.NotificationsHref,
		}

		view.Account = &Account{
			Name:        v.Name,
			AvatarURL:   v.Avatar,
			Initials:    Initials(v.Name),
			ProfileHref: nav.ProfileHref,
		}

	default:
		view.SignIn = &LinkView{
			Label:  "Entrar",
			Href:   nav.SignInHref,
			Active: IsActive(in.Path, nav.SignInHref),
		}
	}

	view.Primary = visibleLinks(ctx, nav.Primary, env)

	if in.Mobile && in.Menu.IsOpen() {
		view.Panel = &Panel{
			Links: visibleLinks(ctx, nav.Mobile, env),
		}
	}

	return view
}

func visibleLinks(ctx context.Context, links []Link, env rule.Env) []LinkView {
	views := make([]LinkView, 0, len(links))

	for _, l := range links {
		if l.Rule != nil {
			visible, err := l.Rule.Eval(env)
			if err != nil {
				slog.ErrorContext(ctx, "could not evaluate link rule", log.Error(err), slog.String("href", l.Href), slog.String("rule", l.Rule.String()))
				continue
			}

			if !visible {
				continue
			}
		}

		views = append(views, LinkView{
			Label:  l.Label,
			Href:   l.Href,
			Active: IsActive(env.Path, l.Href),
		})
	}

	return views
}
