package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const queryPath = "path"

type Handler struct {
	mux    *http.ServeMux
	header *header.Handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string, headerHandler *header.Handler) *Handler {
	h := &Handler{
		mux:    http.NewServeMux(),
		header: headerHandler,
	}

	h.mux.HandleFunc(fmt.Sprintf("GET %s/header", prefix), h.getHeader)
	h.mux.HandleFunc(fmt.Sprintf("%s/", prefix), func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound)
	})

	return h
}

// getHeader returns the header of the page given by the "path" query
// parameter, as a script client would have to render it. Without path, the
// header of the home page is returned.
func (h *Handler) getHeader(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get(queryPath)
	if path == "" {
		path = "/"
	}

	view := h.header.ViewPath(r, path, header.MenuFromRequest(r))
	writeJSON(w, r, http.StatusOK, view)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int) {
	writeJSON(w, r, status, errorResponse{Error: http.StatusText(status)})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	if err := encoder.Encode(data); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", log.Error(errors.WithStack(err)))
	}
}

var _ http.Handler = &Handler{}
