package site

import (
	"net/http"

	"github.com/bornholm/courtside/internal/store"
)

const notificationsPageSize = 50

type NotificationsTemplateData struct {
	PageTemplateData
	Notifications []*store.Notification
	Unread        int
}

func (h *Handler) serveNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := ContextUser(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	notifications, err := h.store.ListNotifications(ctx, user.ID, notificationsPageSize)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead() {
			unread++
		}
	}

	data := NotificationsTemplateData{
		PageTemplateData: h.pageData(r, "Notificações"),
		Notifications:    notifications,
		Unread:           unread,
	}

	h.render(w, r, http.StatusOK, "notifications", data)
}

func (h *Handler) handleMarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user, err := ContextUser(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := h.store.MarkNotificationsRead(r.Context(), user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}
