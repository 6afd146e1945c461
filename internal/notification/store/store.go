package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/notification"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `id, recipient_id, kind, title, body, ref_id, read, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(s scanner) (*notification.Notification, error) {
	var n notification.Notification

	var kindStr string

	if err := s.Scan(
		&n.ID, &n.RecipientID, &kindStr, &n.Title, &n.Body, &n.RefID, &n.Read, &n.CreatedAt,
	); err != nil {
		return nil, err
	}

	n.Kind = notification.Kind(kindStr)

	return &n, nil
}

func (s *Store) Create(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (recipient_id, kind, title, body, ref_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		n.RecipientID, n.Kind, n.Title, n.Body, n.RefID,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	query := `SELECT ` + selectColumns + ` FROM notifications WHERE id = $1`

	n, err := scanNotification(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, notification.ErrNotFound
		}

		return nil, fmt.Errorf("getting notification: %w", err)
	}

	return n, nil
}

func (s *Store) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]*notification.Notification, error) {
	query := `SELECT ` + selectColumns + ` FROM notifications WHERE recipient_id = $1`

	if unreadOnly {
		query += ` AND NOT read`
	}

	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var out []*notification.Notification

	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}

		out = append(out, n)
	}

	return out, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return notification.ErrNotFound
	}

	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND NOT read`, recipientID)
	if err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}

	return nil
}
