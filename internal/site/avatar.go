package site

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bornholm/courtside/internal/avatar"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) serveAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := r.PathValue("key")

	if err := avatar.ValidateKey(key); err != nil {
		http.NotFound(w, r)
		return
	}

	reader, info, err := h.avatars.Open(ctx, key)
	if err != nil {
		if errors.Is(err, avatar.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		h.serverError(w, r, err)
		return
	}

	defer reader.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}

	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}

	// Keys are never reused
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if _, err := io.Copy(w, reader); err != nil {
		slog.ErrorContext(ctx, "could not write avatar", log.Error(errors.WithStack(err)), slog.String("avatar", key))
	}
}
