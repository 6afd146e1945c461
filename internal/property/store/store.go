package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/property"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectPropertyColumns = `
	id, owner_id, name, address, due_days, total_rooms, occupied_rooms, vacant_rooms, created_at, updated_at
`

func scanProperty(s scanner) (*property.Property, error) {
	var p property.Property

	if err := s.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.DueDays,
		&p.TotalRooms, &p.Occupied, &p.Vacant,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

const selectRoomColumns = `
	id, property_id, number, type, rent_cents, utilities, status, tenant_id, tenant_snapshot, lease_start, lease_end, created_at, updated_at
`

func scanRoom(s scanner) (*property.Room, error) {
	var room property.Room

	var statusStr string

	var snapshot property.TenantSnapshot

	if err := s.Scan(
		&room.ID, &room.PropertyID, &room.Number, &room.Type, &room.RentCents,
		&room.Utilities, &statusStr, &room.TenantID, &snapshot,
		&room.LeaseStart, &room.LeaseEnd, &room.CreatedAt, &room.UpdatedAt,
	); err != nil {
		return nil, err
	}

	room.Status = property.RoomStatus(statusStr)

	if room.TenantID != nil {
		room.Tenant = &snapshot
	}

	return &room, nil
}

func (s *Store) CreateProperty(ctx context.Context, p *property.Property) error {
	query := `
		INSERT INTO properties (owner_id, name, address, due_days, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.OwnerID, p.Name, p.Address, p.DueDays,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating property: %w", err)
	}

	return nil
}

func (s *Store) GetProperty(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	query := `SELECT ` + selectPropertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, property.ErrNotFound
		}

		return nil, fmt.Errorf("getting property: %w", err)
	}

	return p, nil
}

func (s *Store) ListProperties(ctx context.Context, ownerID uuid.UUID) ([]*property.Property, error) {
	query := `SELECT ` + selectPropertyColumns + ` FROM properties WHERE owner_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer rows.Close()

	var props []*property.Property

	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}

		props = append(props, p)
	}

	return props, rows.Err()
}

func (s *Store) UpdateProperty(ctx context.Context, p *property.Property) error {
	query := `
		UPDATE properties
		SET name = $2, address = $3, due_days = $4, updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, p.ID, p.Name, p.Address, p.DueDays)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return property.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	var occupied int

	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rooms WHERE property_id = $1 AND status = 'occupied'`, id,
	).Scan(&occupied)
	if err != nil {
		return fmt.Errorf("counting occupied rooms: %w", err)
	}

	if occupied > 0 {
		return property.ErrHasOccupiedRooms
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE property_id = $1`, id); err != nil {
		return fmt.Errorf("deleting rooms: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return property.ErrNotFound
	}

	return tx.Commit()
}

func (s *Store) CreateRoom(ctx context.Context, room *property.Room) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning create: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO rooms (property_id, number, type, rent_cents, utilities, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		room.PropertyID, room.Number, room.Type, room.RentCents, room.Utilities, room.Status,
	).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating room: %w", err)
	}

	if err := recalcOccupancy(ctx, tx, room.PropertyID); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetRoom(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	query := `SELECT ` + selectRoomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, property.ErrRoomNotFound
		}

		return nil, fmt.Errorf("getting room: %w", err)
	}

	return room, nil
}

func (s *Store) ListRooms(ctx context.Context, propertyID uuid.UUID) ([]*property.Room, error) {
	query := `SELECT ` + selectRoomColumns + ` FROM rooms WHERE property_id = $1 ORDER BY number ASC`

	rows, err := s.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*property.Room

	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}

		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (s *Store) UpdateRoom(ctx context.Context, room *property.Room) error {
	query := `
		UPDATE rooms
		SET number = $2, type = $3, rent_cents = $4, utilities = $5, updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		room.ID, room.Number, room.Type, room.RentCents, room.Utilities,
	)
	if err != nil {
		return fmt.Errorf("updating room: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return property.ErrRoomNotFound
	}

	return nil
}

func (s *Store) SetRoomStatus(ctx context.Context, id uuid.UUID, status property.RoomStatus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning status update: %w", err)
	}
	defer tx.Rollback()

	var propertyID uuid.UUID

	err = tx.QueryRowContext(ctx,
		`UPDATE rooms SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING property_id`,
		id, status,
	).Scan(&propertyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return property.ErrRoomNotFound
		}

		return fmt.Errorf("updating room status: %w", err)
	}

	if err := recalcOccupancy(ctx, tx, propertyID); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	var (
		propertyID uuid.UUID
		status     string
	)

	err = tx.QueryRowContext(ctx,
		`SELECT property_id, status FROM rooms WHERE id = $1 FOR UPDATE`, id,
	).Scan(&propertyID, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			return property.ErrRoomNotFound
		}

		return fmt.Errorf("locking room: %w", err)
	}

	if property.RoomStatus(status) == property.RoomOccupied {
		return property.ErrRoomOccupied
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}

	if err := recalcOccupancy(ctx, tx, propertyID); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) RecalcOccupancy(ctx context.Context, propertyID uuid.UUID) error {
	return recalcOccupancy(ctx, s.db, propertyID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// recalcOccupancy rewrites the stored aggregate from the room set in a
// single statement, so concurrent room edits cannot interleave a stale
// read-modify-write.
func recalcOccupancy(ctx context.Context, db execer, propertyID uuid.UUID) error {
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

	if _, err := db.ExecContext(ctx, query, propertyID); err != nil {
		return fmt.Errorf("recalculating occupancy: %w", err)
	}

	return nil
}
