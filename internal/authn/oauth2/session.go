package oauth2

import (
	"net/http"

	"github.com/pkg/errors"
)

var errSessionNotFound = errors.New("session not found")

const (
	sessionSubject  = "subject"
	sessionProvider = "provider"
	sessionNickname = "nickname"
	sessionEmail    = "email"
)

func (h *Handler) storeSessionUser(w http.ResponseWriter, r *http.Request, user *User) error {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		return errors.WithStack(err)
	}

	sess.Values[sessionSubject] = user.Subject
	sess.Values[sessionProvider] = user.Provider
	sess.Values[sessionNickname] = user.Nickname
	sess.Values[sessionEmail] = user.Email

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (h *Handler) retrieveSessionUser(r *http.Request) (*User, error) {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	subject, _ := sess.Values[sessionSubject].(string)
	provider, _ := sess.Values[sessionProvider].(string)

	if subject == "" || provider == "" {
		return nil, errors.WithStack(errSessionNotFound)
	}

	nickname, _ := sess.Values[sessionNickname].(string)
	email, _ := sess.Values[sessionEmail].(string)

	user := &User{
		Subject:  subject,
		Provider: provider,
		Nickname: nickname,
		Email:    email,
	}

	return user, nil
}

func (h *Handler) clearSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		return errors.WithStack(err)
	}

	if sess.IsNew {
		return errors.WithStack(errSessionNotFound)
	}

	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
