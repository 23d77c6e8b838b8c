package admin

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/internal/site"
	"github.com/bornholm/courtside/internal/store"
	"github.com/bornholm/courtside/internal/ui"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, header.FS, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

// MemberTemplateData contains information about a member
type MemberTemplateData struct {
	ID               int64
	Provider         string
	Name             string
	Initials         string
	Email            string
	IsAdmin          bool
	ConnectedAt      time.Time
	HumanConnectedAt string
	HasAPIAccess     bool
}

// MembersTemplateData contains the data needed to render the members page
type MembersTemplateData struct {
	site.PageTemplateData
	Action  string
	Members []MemberTemplateData
	Message string
	Link    string
}

// NewMemberTemplateData creates a new member template data from a store.User
func NewMemberTemplateData(user *store.User) MemberTemplateData {
	data := MemberTemplateData{
		ID:           user.ID,
		Provider:     user.Provider,
		Name:         user.DisplayName(),
		Initials:     header.Initials(user.DisplayName()),
		Email:        user.Email,
		IsAdmin:      user.IsAdmin,
		ConnectedAt:  user.ConnectedAt,
		HasAPIAccess: user.BasicUsername != "",
	}

	if !user.ConnectedAt.IsZero() {
		data.HumanConnectedAt = humanize.Time(user.ConnectedAt)
	}

	return data
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "could not execute template", log.Error(errors.WithStack(err)), slog.String("template", name))
	}
}
