package admin

import (
	"fmt"
	"net/http"

	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/internal/store"
)

// Handler serves the staff pages: the member roster and the notification
// broadcast form. Only members flagged as admin may reach them.
type Handler struct {
	prefix string
	header *header.Handler
	store  *store.Store
	mux    *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string, headerHandler *header.Handler, store *store.Store) *Handler {
	handler := &Handler{
		prefix: prefix,
		header: headerHandler,
		store:  store,
		mux:    &http.ServeMux{},
	}

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/{$}", prefix), handler.adminOnly(handler.serveMembers))
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/notifications", prefix), handler.adminOnly(handler.handleSendNotification))

	return handler
}

var _ http.Handler = &Handler{}
