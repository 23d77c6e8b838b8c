package site

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/internal/store"
	"github.com/bornholm/courtside/internal/ui"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/pkg/errors"
)

// PageTemplateData is the data shared by every page of the site.
type PageTemplateData struct {
	ui.HeadTemplateData
	Header       header.View
	FlashMessage string
	ErrorMessage string
}

// NewPageTemplateData prepares the data of the "page_open" and "page_close"
// layouts for the page requested by r.
func NewPageTemplateData(r *http.Request, headerHandler *header.Handler, title string) PageTemplateData {
	return PageTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: title,
		},
		Header:       headerHandler.View(r, header.MenuFromRequest(r)),
		FlashMessage: r.URL.Query().Get("flash"),
	}
}

func (h *Handler) pageData(r *http.Request, title string) PageTemplateData {
	return NewPageTemplateData(r, h.header, title)
}

func (h *Handler) servePage(name string, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, name, h.pageData(r, title))
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "could not execute template", log.Error(errors.WithStack(err)), slog.String("template", name))
	}
}

// private restricts the handler to signed in members and sends the others to
// the sign in page.
func (h *Handler) private(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := ContextUser(r); err != nil {
			http.Redirect(w, r, h.signInHref, http.StatusSeeOther)
			return
		}

		next(w, r)
	}
}

// ContextUser returns the signed in member of the request.
func ContextUser(r *http.Request) (*store.User, error) {
	user, err := authn.ContextUser(r.Context())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	storeUser, ok := user.(*store.User)
	if !ok {
		return nil, errors.Errorf("unexpected user type '%T'", user)
	}

	return storeUser, nil
}
