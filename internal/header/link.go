package header

import "github.com/bornholm/courtside/internal/rule"

type Brand struct {
	Title string `json:"title"`
	Logo  string `json:"logo"`
	Href  string `json:"href"`
}

type Link struct {
	Label string
	Href  string

	// Rule decides whether the link is shown. A nil rule always shows it.
	Rule rule.Rule
}

type Navigation struct {
	Brand Brand

	// Primary links are shown in the desktop navigation bar.
	Primary []Link

	// Mobile links are shown in the collapsible mobile panel.
	Mobile []Link

	SignInHref        string
	ProfileHref       string
	NotificationsHref string
}

func DefaultNavigation() Navigation {
	home := Link{Label: "Início", Href: "/", Rule: rule.New(rule.Always)}
	news := Link{Label: "Notícias", Href: "/public/news", Rule: rule.New(rule.Always)}
	calendar := Link{Label: "Calendário", Href: "/calendar", Rule: rule.New(rule.SignedIn)}

	return Navigation{
		Brand: Brand{
			Title: "BasketTeam",
			Logo:  "/static/logo.svg",
			Href:  "/",
		},
		Primary: []Link{home, news, calendar},
		Mobile: []Link{
			home,
			news,
			calendar,
			{Label: "Treino do Dia", Href: "/training", Rule: rule.New(rule.SignedIn)},
			{Label: "Registrar Exercícios", Href: "/exercise-log", Rule: rule.New(rule.SignedIn)},
			{Label: "Meu Histórico", Href: "/history", Rule: rule.New(rule.SignedIn)},
		},
		SignInHref:        "/auth/login",
		ProfileHref:       "/profile",
		NotificationsHref: "/notifications",
	}
}
