package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var notificationMigrations = []string{
	`CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,

		message TEXT NOT NULL,
		link TEXT,

		created_at INTEGER NOT NULL,
		read_at INTEGER
	);`,
	`CREATE INDEX IF NOT EXISTS notifications_unread ON notifications (user_id, read_at);`,
}

type Notification struct {
	ID     int64
	UserID int64

	Message string
	Link    string

	CreatedAt time.Time
	ReadAt    time.Time
}

func (n *Notification) IsRead() bool {
	return !n.ReadAt.IsZero()
}

func (s *Store) CreateNotification(ctx context.Context, userID int64, message string, link string) (*Notification, error) {
	var notification *Notification
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO notifications (user_id, message, link, created_at)
			VALUES (?, ?, ?, ?) RETURNING %s
		`, notificationAttributes)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{userID, message, link, time.Now().UTC().Unix()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				notification = &Notification{}
				bindNotification(stmt, notification)
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return notification, nil
}

// BroadcastNotification creates the same notification for every member and
// returns the number of notified members.
func (s *Store) BroadcastNotification(ctx context.Context, message string, link string) (int, error) {
	var count int
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `
			INSERT INTO notifications (user_id, message, link, created_at)
			SELECT id, ?, ?, ? FROM users
		`, &sqlitex.ExecOptions{
			Args: []any{message, link, time.Now().UTC().Unix()},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		count = conn.Changes()

		return nil
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// ListNotifications returns the most recent notifications of the user first.
func (s *Store) ListNotifications(ctx context.Context, userID int64, limit int) ([]*Notification, error) {
	notifications := make([]*Notification, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			SELECT %s FROM notifications
			WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		`, notificationAttributes)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{userID, limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				notification := &Notification{}
				bindNotification(stmt, notification)
				notifications = append(notifications, notification)
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return notifications, nil
}

func (s *Store) CountUnreadNotifications(ctx context.Context, userID int64) (int, error) {
	var count int64
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read_at IS NULL`, &sqlitex.ExecOptions{
			Args: []any{userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		}))
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return int(count), nil
}

func (s *Store) MarkNotificationsRead(ctx context.Context, userID int64) error {
	return errors.WithStack(s.Tx(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `UPDATE notifications SET read_at = ? WHERE user_id = ? AND read_at IS NULL`, &sqlitex.ExecOptions{
			Args: []any{time.Now().UTC().Unix(), userID},
		}))
	}))
}

var notificationAttributes = `id, user_id, message, link, created_at, read_at`

func bindNotification(stmt *sqlite.Stmt, notification *Notification) {
	notification.ID = stmt.ColumnInt64(0)
	notification.UserID = stmt.ColumnInt64(1)
	notification.Message = stmt.ColumnText(2)
	notification.Link = stmt.ColumnText(3)
	notification.CreatedAt = unixTime(stmt.ColumnInt64(4))
	notification.ReadAt = unixTime(stmt.ColumnInt64(5))
}
