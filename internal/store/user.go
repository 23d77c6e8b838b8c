package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var ErrNotFound = errors.New("not found")

var userMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,

		subject TEXT NOT NULL,
		provider TEXT NOT NULL,

		nickname TEXT,
		email TEXT,
		name TEXT,
		avatar TEXT,

		is_admin BOOLEAN,

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		connected_at INTEGER,

		basic_username TEXT,
		basic_password BLOB,

		password BLOB,

		UNIQUE (subject, provider),
		UNIQUE (basic_username)
	);`,
}

type User struct {
	ID int64

	Provider string
	Subject  string

	IsAdmin bool

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConnectedAt time.Time

	// Nickname and Email come from the identity provider
	Nickname string
	Email    string

	// Name is chosen by the user on its profile page
	Name   string
	Avatar string

	BasicUsername string
	BasicPassword []byte
}

// DisplayName returns the name shown to other members.
func (u *User) DisplayName() string {
	for _, name := range []string{u.Name, u.Nickname, u.Email} {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}

	return ""
}

// Provider implements authn.User.
func (u *User) UserProvider() string {
	return u.Provider
}

// Subject implements authn.User.
func (u *User) UserSubject() string {
	return u.Subject
}

var _ authn.User = &User{}

// UserAttributes are the user attributes refreshed on every sign-in.
type UserAttributes struct {
	Nickname string
	Email    string
	IsAdmin  bool
}

func (s *Store) FindOrCreateUser(ctx context.Context, subject, provider string) (*User, error) {
	var user *User
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE subject = ? AND provider = ? LIMIT 1`, userAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if user != nil {
			return nil
		}

		query = fmt.Sprintf(`
			INSERT INTO users
				(subject, provider, created_at, updated_at)
			VALUES (?, ?, ?, ?) RETURNING %s;`,
			userAttributes,
		)

		now := time.Now().UTC().Unix()

		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func (s *Store) GetUser(ctx context.Context, userID int64) (*User, error) {
	var user *User
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ? LIMIT 1`, userAttributes)
		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if user == nil {
		return nil, errors.WithStack(ErrNotFound)
	}

	return user, nil
}

// ConnectUser refreshes the provider attributes of the user and records the
// connection time. The returned flag is true on the very first connection.
func (s *Store) ConnectUser(ctx context.Context, userID int64, attrs UserAttributes) (*User, bool, error) {
	var (
		user  *User
		first bool
	)

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `SELECT connected_at IS NULL FROM users WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				first = stmt.ColumnBool(0)
				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		query := fmt.Sprintf(`
			UPDATE users SET
				nickname = ?, email = ?, is_admin = ?, connected_at = ?, updated_at = ?
			WHERE id = ? RETURNING %s
		`, userAttributes)

		now := time.Now().UTC().Unix()

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{attrs.Nickname, attrs.Email, attrs.IsAdmin, now, now, userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		}))
	})
	if err != nil {
		return nil, false, errors.WithStack(err)
	}

	if user == nil {
		return nil, false, errors.WithStack(ErrNotFound)
	}

	return user, first, nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, userID int64, name string) error {
	return errors.WithStack(s.updateUserColumn(ctx, userID, "name", strings.TrimSpace(name)))
}

// SetUserAvatar replaces the avatar key of the user and returns the previous
// one, empty if none.
func (s *Store) SetUserAvatar(ctx context.Context, userID int64, key string) (string, error) {
	var previous string
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		found := false
		err := sqlitex.Execute(conn, `SELECT avatar FROM users WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				previous = stmt.ColumnText(0)
				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if !found {
			return errors.WithStack(ErrNotFound)
		}

		return errors.WithStack(sqlitex.Execute(conn, `UPDATE users SET avatar = ?, updated_at = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{key, time.Now().UTC().Unix(), userID},
		}))
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	return previous, nil
}

func (s *Store) updateUserColumn(ctx context.Context, userID int64, column string, value any) error {
	return s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`UPDATE users SET %s = ?, updated_at = ? WHERE id = ?`, column)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{value, time.Now().UTC().Unix(), userID},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if conn.Changes() == 0 {
			return errors.WithStack(ErrNotFound)
		}

		return nil
	})
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, "SELECT COUNT(*) FROM users", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		}))
	})

	return count, errors.WithStack(err)
}

// ListUsers returns every member ordered by display name.
func (s *Store) ListUsers(ctx context.Context) ([]*User, error) {
	users := make([]*User, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			SELECT %s FROM users
			ORDER BY COALESCE(NULLIF(name, ''), NULLIF(nickname, ''), email) COLLATE NOCASE, id
		`, userAttributes)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user := &User{}
				if err := s.bindUser(stmt, user); err != nil {
					return errors.WithStack(err)
				}

				users = append(users, user)
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}

var userAttributes = `id, subject, provider, nickname, email, created_at, updated_at, connected_at, basic_username, basic_password, is_admin, name, avatar`

func (s *Store) bindUser(stmt *sqlite.Stmt, user *User) error {
	user.ID = stmt.ColumnInt64(0)
	user.Subject = stmt.ColumnText(1)
	user.Provider = stmt.ColumnText(2)
	user.Nickname = stmt.ColumnText(3)
	user.Email = stmt.ColumnText(4)
	user.CreatedAt = unixTime(stmt.ColumnInt64(5))
	user.UpdatedAt = unixTime(stmt.ColumnInt64(6))
	user.ConnectedAt = unixTime(stmt.ColumnInt64(7))
	user.BasicUsername = stmt.ColumnText(8)

	user.BasicPassword = make([]byte, stmt.ColumnLen(9))
	stmt.ColumnBytes(9, user.BasicPassword)
	user.IsAdmin = stmt.ColumnBool(10)
	user.Name = stmt.ColumnText(11)
	user.Avatar = stmt.ColumnText(12)

	return nil
}
