package site

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bornholm/courtside/internal/avatar"
	"github.com/bornholm/courtside/internal/store"
	"github.com/bornholm/courtside/pkg/log"
	"github.com/pkg/errors"
)

const (
	basicPasswordLength = 24
	avatarFormField     = "avatar"
)

type ProfileTemplateData struct {
	PageTemplateData
	User          *store.User
	APIURL        string
	BasicUsername string
	BasicPassword string
}

func (h *Handler) profileData(r *http.Request, user *store.User) ProfileTemplateData {
	return ProfileTemplateData{
		PageTemplateData: h.pageData(r, "Meu Perfil"),
		User:             user,
		APIURL:           h.baseURL + "/api/header",
		BasicUsername:    user.BasicUsername,
	}
}

func (h *Handler) serveProfile(w http.ResponseWriter, r *http.Request) {
	user, err := ContextUser(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "profile", h.profileData(r, user))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := ContextUser(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateUserProfile(ctx, user.ID, r.PostFormValue("name")); err != nil {
		h.serverError(w, r, err)
		return
	}

	redirectWithFlash(w, r, "/profile", "Perfil atualizado.")
}

func (h *Handler) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := ContextUser(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxAvatarSize+(64<<10))

	if err := r.ParseMultipartForm(h.maxAvatarSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.renderProfileError(w, r, user, http.StatusRequestEntityTooLarge, "A imagem é grande demais.")
			return
		}

		h.renderProfileError(w, r, user, http.StatusBadRequest, "Não foi possível ler o envio.")
		return
	}

	file, fileHeader, err := r.FormFile(avatarFormField)
	if err != nil {
		h.renderProfileError(w, r, user, http.StatusBadRequest, "Selecione uma imagem.")
		return
	}

	defer file.Close()

	if fileHeader.Size > h.maxAvatarSize {
		h.renderProfileError(w, r, user, http.StatusRequestEntityTooLarge, "A imagem é grande demais.")
		return
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		h.serverError(w, r, err)
		return
	}

	sniff = sniff[:n]
	contentType := http.DetectContentType(sniff)

	key, err := avatar.NewKey(contentType)
	if err != nil {
		h.renderProfileError(w, r, user, http.StatusUnsupportedMediaType, "Formato de imagem não suportado.")
		return
	}

	content := io.MultiReader(bytes.NewReader(sniff), file)

	if err := h.avatars.Put(ctx, key, content, fileHeader.Size, contentType); err != nil {
		h.serverError(w, r, err)
		return
	}

	previous, err := h.store.SetUserAvatar(ctx, user.ID, key)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if previous != "" {
		if err := h.avatars.Delete(ctx, previous); err != nil {
			slog.ErrorContext(ctx, "could not delete previous avatar", log.Error(errors.WithStack(err)), slog.String("avatar", previous))
		}
	}

	redirectWithFlash(w, r, "/profile", "Foto atualizada.")
}

func (h *Handler) handleRegenerateCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := ContextUser(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	username, password, err := h.store.RegenerateBasicPassword(ctx, user.ID, basicPasswordLength)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	data := h.profileData(r, user)
	data.BasicUsername = username
	data.BasicPassword = password
	data.FlashMessage = "Novas credenciais geradas. Guarde a senha, ela não será exibida novamente."

	w.Header().Set("Cache-Control", "no-store")

	h.render(w, r, http.StatusOK, "profile", data)
}

func (h *Handler) renderProfileError(w http.ResponseWriter, r *http.Request, user *store.User, status int, message string) {
	data := h.profileData(r, user)
	data.ErrorMessage = message

	h.render(w, r, status, "profile", data)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "could not handle request", log.Error(errors.WithStack(err)))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, path string, message string) {
	http.Redirect(w, r, path+"?"+url.Values{"flash": {message}}.Encode(), http.StatusSeeOther)
}
