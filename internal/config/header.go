package config

import (
	"github.com/goccy/go-yaml"
)

type Header struct {
	Brand             Brand              `yaml:"brand"`
	Primary           []Link             `yaml:"primary"`
	Mobile            []Link             `yaml:"mobile"`
	SignInHref        InterpolatedString `yaml:"signInHref"`
	ProfileHref       InterpolatedString `yaml:"profileHref"`
	NotificationsHref InterpolatedString `yaml:"notificationsHref"`
}

type Brand struct {
	Title InterpolatedString `yaml:"title"`
	Logo  InterpolatedString `yaml:"logo"`
	Href  InterpolatedString `yaml:"href"`
}

type Link struct {
	Label InterpolatedString `yaml:"label"`
	Href  InterpolatedString `yaml:"href"`
	Rule  InterpolatedString `yaml:"rule"`
}

func NewDefaultHeaderConfig() Header {
	home := Link{Label: "Início", Href: "/", Rule: "true"}
	news := Link{Label: "Notícias", Href: "/public/news", Rule: "true"}
	calendar := Link{Label: "Calendário", Href: "/calendar", Rule: "signedIn"}

	return Header{
		Brand: Brand{
			Title: "${COURTSIDE_HEADER_TITLE:-BasketTeam}",
			Logo:  "${COURTSIDE_HEADER_LOGO:-/static/logo.svg}",
			Href:  "/",
		},
		Primary: []Link{home, news, calendar},
		Mobile: []Link{
			home,
			news,
			calendar,
			{Label: "Treino do Dia", Href: "/training", Rule: "signedIn"},
			{Label: "Registrar Exercícios", Href: "/exercise-log", Rule: "signedIn"},
			{Label: "Meu Histórico", Href: "/history", Rule: "signedIn"},
		},
		SignInHref:        "/auth/login",
		ProfileHref:       "/profile",
		NotificationsHref: "/notifications",
	}
}

func NewHeaderConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":         []*yaml.Comment{yaml.HeadComment(" Site header configuration")},
		".brand":   []*yaml.Comment{yaml.HeadComment(" Site branding")},
		".primary": []*yaml.Comment{yaml.HeadComment(" Links of the desktop navigation bar")},
		".primary[0].rule": []*yaml.Comment{yaml.HeadComment(
			" Visibility rule of the link",
			" Variables: signedIn, mobile, path, name, notifications",
			" See https://expr-lang.org/docs/language-definition",
		)},
		".mobile": []*yaml.Comment{yaml.HeadComment(" Links of the collapsible mobile menu")},
	}
}
