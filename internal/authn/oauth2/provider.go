package oauth2

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bornholm/courtside/pkg/log"
	"github.com/markbates/goth/gothic"
	"github.com/pkg/errors"
)

func (h *Handler) handleProvider(w http.ResponseWriter, r *http.Request) {
	if _, err := gothic.CompleteUserAuth(w, r); err == nil {
		http.Redirect(w, r, fmt.Sprintf("%s/logout", h.prefix), http.StatusTemporaryRedirect)
	} else {
		gothic.BeginAuthHandler(w, r)
	}
}

func (h *Handler) handleProviderCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		slog.ErrorContext(ctx, "could not complete user auth", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, fmt.Sprintf("%s/logout", h.prefix), http.StatusTemporaryRedirect)
		return
	}

	slog.DebugContext(ctx, "authenticated user", slog.String("provider", gothUser.Provider), slog.String("subject", gothUser.UserID))

	user := &User{
		Subject:  gothUser.UserID,
		Provider: gothUser.Provider,

		Nickname: gothUser.Name,
		Email:    gothUser.Email,
	}

	if user.Nickname == "" {
		user.Nickname = gothUser.NickName
	}

	if user.Email == "" {
		slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.New("user email missing")))
		http.Redirect(w, r, fmt.Sprintf("%s/logout", h.prefix), http.StatusTemporaryRedirect)
		return
	}

	if user.UserProvider() == "" {
		slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.New("user provider missing")))
		http.Redirect(w, r, fmt.Sprintf("%s/logout", h.prefix), http.StatusTemporaryRedirect)
		return
	}

	rawPreferredUsername, exists := gothUser.RawData["preferred_username"]
	if exists {
		if preferredUsername, ok := rawPreferredUsername.(string); ok {
			user.Nickname = preferredUsername
		}
	}

	if err := h.storeSessionUser(w, r, user); err != nil {
		slog.ErrorContext(ctx, "could not store session user", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, fmt.Sprintf("%s/logout", h.prefix), http.StatusTemporaryRedirect)
		return
	}

	http.Redirect(w, r, h.postLoginRedirect, http.StatusSeeOther)
}

// Logout clears the session and, for users signed in through an OAuth2
// provider, terminates the provider session too.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.retrieveSessionUser(r)
	if err != nil && !errors.Is(err, errSessionNotFound) {
		slog.ErrorContext(ctx, "could not retrieve session user", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.clearSession(w, r); err != nil && !errors.Is(err, errSessionNotFound) {
		slog.ErrorContext(ctx, "could not clear session", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if user == nil || !h.hasProvider(user.UserProvider()) {
		http.Redirect(w, r, h.postLogoutRedirect, http.StatusSeeOther)
		return
	}

	redirectURL := fmt.Sprintf("%s/providers/%s/logout", h.prefix, user.UserProvider())

	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

func (h *Handler) handleProviderLogout(w http.ResponseWriter, r *http.Request) {
	if err := gothic.Logout(w, r); err != nil {
		slog.ErrorContext(r.Context(), "could not logout from provider", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.postLogoutRedirect, http.StatusTemporaryRedirect)
}

func (h *Handler) hasProvider(id string) bool {
	for _, p := range h.providers {
		if p.ID == id {
			return true
		}
	}

	return false
}
