package admin

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bornholm/courtside/internal/site"
	"github.com/bornholm/courtside/internal/store"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/pkg/errors"
)

const (
	maxMessageLength = 280
	allMembers       = "all"
)

// adminOnly rejects requests without a signed in admin member.
func (h *Handler) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := site.ContextUser(r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if !user.IsAdmin {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

func (h *Handler) serveMembers(w http.ResponseWriter, r *http.Request) {
	data, err := h.membersData(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "members", data)
}

func (h *Handler) membersData(r *http.Request) (*MembersTemplateData, error) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	data := &MembersTemplateData{
		PageTemplateData: site.NewPageTemplateData(r, h.header, "Elenco"),
		Action:           h.prefix + "/notifications",
		Members:          make([]MemberTemplateData, 0, len(users)),
	}

	for _, u := range users {
		data.Members = append(data.Members, NewMemberTemplateData(u))
	}

	return data, nil
}

func (h *Handler) handleSendNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	message := strings.TrimSpace(r.PostFormValue("message"))
	link := strings.TrimSpace(r.PostFormValue("link"))
	recipient := r.PostFormValue("recipient")

	if errMessage := validateNotification(message, link); errMessage != "" {
		data, err := h.membersData(r)
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		data.ErrorMessage = errMessage
		data.Message = message
		data.Link = link

		h.render(w, r, http.StatusBadRequest, "members", data)
		return
	}

	if recipient == "" || recipient == allMembers {
		count, err := h.store.BroadcastNotification(ctx, message, link)
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		slog.InfoContext(ctx, "notification broadcasted", slog.Int("recipients", count))

		h.redirectWithFlash(w, r, "Aviso enviado para "+strconv.Itoa(count)+" atletas.")
		return
	}

	userID, err := strconv.ParseInt(recipient, 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	user, err := h.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		h.serverError(w, r, err)
		return
	}

	if _, err := h.store.CreateNotification(ctx, user.ID, message, link); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "Aviso enviado para "+user.DisplayName()+".")
}

// validateNotification returns a user facing error message, or an empty
// string when the notification can be sent.
func validateNotification(message string, link string) string {
	if message == "" {
		return "A mensagem é obrigatória."
	}

	if utf8.RuneCountInString(message) > maxMessageLength {
		return "A mensagem deve ter no máximo " + strconv.Itoa(maxMessageLength) + " caracteres."
	}

	// Only site relative links are allowed
	if link != "" && (!strings.HasPrefix(link, "/") || strings.HasPrefix(link, "//")) {
		return "O link deve começar por \"/\"."
	}

	return ""
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, h.prefix+"/?"+url.Values{"flash": {message}}.Encode(), http.StatusSeeOther)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "could not serve admin page", log.Error(errors.WithStack(err)))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
