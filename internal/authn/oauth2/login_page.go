package oauth2

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/internal/ui"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/pkg/errors"
)

type loginPageData struct {
	ui.HeadTemplateData
	Providers     []Provider
	Action        string
	ProvidersHref string
	Passwords     bool
	Username      string
	Error         string
}

func (h *Handler) getLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLoginPage(w, r, http.StatusOK, "", "")
}

func (h *Handler) handlePasswordLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.renderLoginPage(w, r, http.StatusBadRequest, username, "Informe o usuário e a senha.")
		return
	}

	user, err := h.passwords.AuthenticatePassword(ctx, username, password)
	if err != nil {
		if !errors.Is(err, authn.ErrUnauthenticated) {
			slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.WithStack(err)))
		}

		h.renderLoginPage(w, r, http.StatusUnauthorized, username, "Usuário ou senha inválidos.")
		return
	}

	if err := h.storeSessionUser(w, r, user); err != nil {
		slog.ErrorContext(ctx, "could not store session user", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.postLoginRedirect, http.StatusSeeOther)
}

func (h *Handler) renderLoginPage(w http.ResponseWriter, r *http.Request, status int, username string, message string) {
	data := loginPageData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Entrar",
		},
		Providers:     h.providers,
		Action:        h.prefix + "/login",
		ProvidersHref: h.prefix + "/providers",
		Passwords:     h.passwords != nil,
		Username:      username,
		Error:         message,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := templates.ExecuteTemplate(w, "login", data); err != nil {
		slog.ErrorContext(r.Context(), "could not render login page", log.Error(errors.WithStack(err)))
	}
}
