package site

import (
	"net/http"

	"github.com/bornholm/courtside/internal/avatar"
	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/internal/store"
)

type Handler struct {
	mux           *http.ServeMux
	header        *header.Handler
	store         *store.Store
	avatars       avatar.Storage
	maxAvatarSize int64
	signInHref    string
	baseURL       string
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(headerHandler *header.Handler, store *store.Store, avatars avatar.Storage, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	h := &Handler{
		mux:           http.NewServeMux(),
		header:        headerHandler,
		store:         store,
		avatars:       avatars,
		maxAvatarSize: opts.MaxAvatarSize,
		signInHref:    opts.SignInHref,
		baseURL:       opts.BaseURL,
	}

	h.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	h.mux.HandleFunc("GET /avatars/{key}", h.serveAvatar)

	h.mux.HandleFunc("GET /{$}", h.servePage("home", "Início"))
	h.mux.HandleFunc("GET /public/news", h.servePage("news", "Notícias"))

	h.mux.HandleFunc("GET /calendar", h.private(h.servePage("calendar", "Calendário")))
	h.mux.HandleFunc("GET /training", h.private(h.servePage("training", "Treino do Dia")))
	h.mux.HandleFunc("GET /exercise-log", h.private(h.servePage("exercise-log", "Registrar Exercícios")))
	h.mux.HandleFunc("GET /history", h.private(h.servePage("history", "Meu Histórico")))

	h.mux.HandleFunc("GET /notifications", h.private(h.serveNotifications))
	h.mux.HandleFunc("POST /notifications/read", h.private(h.handleMarkNotificationsRead))

	h.mux.HandleFunc("GET /profile", h.private(h.serveProfile))
	h.mux.HandleFunc("POST /profile", h.private(h.handleUpdateProfile))
	h.mux.HandleFunc("POST /profile/avatar", h.private(h.handleUploadAvatar))
	h.mux.HandleFunc("POST /profile/credentials", h.private(h.handleRegenerateCredentials))

	return h
}

var _ http.Handler = &Handler{}
