package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"golang.org/x/crypto/bcrypt"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const LocalProvider = "local"

var passwordCost = 14

// RegenerateBasicPassword generates new HTTP Basic credentials for the user.
// The username is generated once and kept afterwards.
func (s *Store) RegenerateBasicPassword(ctx context.Context, userID int64, passwordLength int) (string, string, error) {
	password := generatePassword(passwordLength)

	passwordHash, err := hashPassword(password)
	if err != nil {
		return "", "", errors.WithStack(err)
	}

	var username string

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `
			UPDATE users SET
				basic_username = COALESCE(basic_username, ?),
				basic_password = ?,
				updated_at = ?
			WHERE id = ? RETURNING basic_username
		`
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{xid.New().String(), passwordHash, time.Now().UTC().Unix(), userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				username = stmt.ColumnText(0)
				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if username == "" {
			return errors.WithStack(ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return "", "", errors.WithStack(err)
	}

	return username, password, nil
}

// Authenticate implements basic.UserProvider.
func (s *Store) Authenticate(ctx context.Context, username string, password string) (authn.User, error) {
	user, err := s.findUserByPassword(ctx, "basic_username = ?", "basic_password", username, password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// AuthenticateLocal checks the password of an account declared in the
// configuration.
func (s *Store) AuthenticateLocal(ctx context.Context, username string, password string) (*User, error) {
	user, err := s.findUserByPassword(ctx, "provider = '"+LocalProvider+"' AND subject = ?", "password", username, password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func (s *Store) findUserByPassword(ctx context.Context, where string, passwordColumn string, username string, password string) (*User, error) {
	var (
		user *User
		hash []byte
	)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s, %s FROM users WHERE %s LIMIT 1", userAttributes, passwordColumn, where)
		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{username},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				if err := s.bindUser(stmt, user); err != nil {
					return errors.WithStack(err)
				}

				idx := stmt.ColumnCount() - 1
				hash = make([]byte, stmt.ColumnLen(idx))
				stmt.ColumnBytes(idx, hash)

				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if user == nil || len(hash) == 0 || !verifyPassword([]byte(password), hash) {
		return nil, errors.WithStack(authn.ErrUnauthenticated)
	}

	return user, nil
}

type LocalUser struct {
	Username string
	Password string
	Nickname string
	Email    string
}

// UpsertLocalUser creates or updates a password account.
func (s *Store) UpsertLocalUser(ctx context.Context, local LocalUser) (*User, error) {
	if local.Username == "" {
		return nil, errors.New("local user must have a username")
	}

	passwordHash, err := hashPassword(local.Password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var user *User
	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO users
				(subject, provider, nickname, email, password, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (subject, provider) DO UPDATE SET
				nickname = excluded.nickname,
				email = excluded.email,
				password = excluded.password,
				updated_at = excluded.updated_at
			RETURNING %s
		`, userAttributes)

		now := time.Now().UTC().Unix()

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{local.Username, LocalProvider, local.Nickname, local.Email, passwordHash, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func hashPassword(password string) ([]byte, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return bytes, err
}

func verifyPassword(password, hash []byte) bool {
	err := bcrypt.CompareHashAndPassword(hash, password)
	return err == nil
}

func generatePassword(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	password := make([]byte, length)
	for i := range password {
		password[i] = charset[rand.IntN(len(charset))]
	}

	return string(password)
}
