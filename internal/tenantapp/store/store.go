package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/notification"
	"github.com/boardinghub/boardinghub/internal/tenantapp"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	id, tenant_id, landlord_id, property_id, room_id, tenant_snapshot,
	message, status, lease_start, lease_end, created_at, decided_at, decision_note
`

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(s scanner) (*tenantapp.Application, error) {
	var app tenantapp.Application

	var statusStr string

	if err := s.Scan(
		&app.ID, &app.TenantID, &app.LandlordID, &app.PropertyID, &app.RoomID, &app.Tenant,
		&app.Message, &statusStr, &app.LeaseStart, &app.LeaseEnd,
		&app.CreatedAt, &app.DecidedAt, &app.DecisionNote,
	); err != nil {
		return nil, err
	}

	app.Status = tenantapp.Status(statusStr)

	return &app, nil
}

func (s *Store) CreateApplication(ctx context.Context, app *tenantapp.Application) error {
	query := `
		INSERT INTO applications (tenant_id, landlord_id, property_id, room_id, tenant_snapshot, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		app.TenantID, app.LandlordID, app.PropertyID, app.RoomID, app.Tenant, app.Message, app.Status,
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	return nil
}

func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*tenantapp.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, tenantapp.ErrNotFound
		}

		return nil, fmt.Errorf("getting application: %w", err)
	}

	return app, nil
}

func (s *Store) ListApplications(ctx context.Context, filter tenantapp.ListFilter) ([]*tenantapp.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE TRUE`

	var args []any

	argIdx := 1

	addArg := func(clause string, v any) {
		query += fmt.Sprintf(" AND "+clause, argIdx)

		args = append(args, v)
		argIdx++
	}

	if filter.LandlordID != nil {
		addArg("landlord_id = $%d", *filter.LandlordID)
	}

	if filter.TenantID != nil {
		addArg("tenant_id = $%d", *filter.TenantID)
	}

	if filter.RoomID != nil {
		addArg("room_id = $%d", *filter.RoomID)
	}

	if filter.Status != nil {
		addArg("status = $%d", *filter.Status)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*tenantapp.Application

	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning application: %w", err)
		}

		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (s *Store) Begin(ctx context.Context) (tenantapp.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &storeTx{tx: tx}, nil
}

type storeTx struct {
	tx *sql.Tx
}

func (t *storeTx) GetApplicationForUpdate(ctx context.Context, id uuid.UUID) (*tenantapp.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE id = $1 FOR UPDATE`

	app, err := scanApplication(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, tenantapp.ErrNotFound
		}

		return nil, fmt.Errorf("locking application: %w", err)
	}

	return app, nil
}

func (t *storeTx) SetDecision(ctx context.Context, id uuid.UUID, status tenantapp.Status, note string, leaseStart, leaseEnd *time.Time, decidedAt time.Time) error {
	query := `
		UPDATE applications
		SET status = $2, decision_note = $3, lease_start = $4, lease_end = $5, decided_at = $6
		WHERE id = $1
	`

	res, err := t.tx.ExecContext(ctx, query, id, status, note, leaseStart, leaseEnd, decidedAt)
	if err != nil {
		return fmt.Errorf("updating application: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return tenantapp.ErrNotFound
	}

	return nil
}

// OccupyRoom flips the room to occupied only if it is still vacant, so
// two approvals racing on the same room cannot both win.
func (t *storeTx) OccupyRoom(ctx context.Context, roomID, tenantID uuid.UUID, snapshot tenantapp.Snapshot, leaseStart, leaseEnd *time.Time) error {
	query := `
		UPDATE rooms
		SET status = 'occupied', tenant_id = $2, tenant_snapshot = $3,
		    lease_start = $4, lease_end = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'vacant'
	`

	res, err := t.tx.ExecContext(ctx, query, roomID, tenantID, snapshot, leaseStart, leaseEnd)
	if err != nil {
		return fmt.Errorf("occupying room: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return tenantapp.ErrRoomTaken
	}

	return nil
}

func (t *storeTx) AssignTenant(ctx context.Context, tenantID, roomID, propertyID uuid.UUID) error {
	query := `
		UPDATE users
		SET room_id = $2, property_id = $3, updated_at = NOW()
		WHERE id = $1
	`

	res, err := t.tx.ExecContext(ctx, query, tenantID, roomID, propertyID)
	if err != nil {
		return fmt.Errorf("assigning tenant: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("assigning tenant: user %s not found", tenantID)
	}

	return nil
}

func (t *storeTx) RecalcOccupancy(ctx context.Context, propertyID uuid.UUID) error {
	query := `
		UPDATE properties p
		SET total_rooms = agg.total,
		    occupied_rooms = agg.occupied,
		    vacant_rooms = agg.total - agg.occupied,
		    updated_at = NOW()
		FROM (
			SELECT COUNT(*) AS total,
			       COUNT(*) FILTER (WHERE status = 'occupied') AS occupied
			FROM rooms
			WHERE property_id = $1
		) agg
		WHERE p.id = $1
	`

	if _, err := t.tx.ExecContext(ctx, query, propertyID); err != nil {
		return fmt.Errorf("recalculating occupancy: %w", err)
	}

	return nil
}

func (t *storeTx) Notify(ctx context.Context, recipientID uuid.UUID, kind notification.Kind, title, body string, refID uuid.UUID) error {
	query := `
		INSERT INTO notifications (recipient_id, kind, title, body, ref_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	if _, err := t.tx.ExecContext(ctx, query, recipientID, kind, title, body, refID); err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}

func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
