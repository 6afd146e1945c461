package property

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("property not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrRoomOccupied     = errors.New("room is occupied")
	ErrHasOccupiedRooms = errors.New("property has occupied rooms")
	ErrRoomNotVacant    = errors.New("room is not vacant")
)

// RoomStatus represents the lifecycle state of a room.
type RoomStatus string

const (
	RoomVacant      RoomStatus = "vacant"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// UtilityKind determines how a utility is charged on a bill.
type UtilityKind string

const (
	UtilityFree    UtilityKind = "free"
	UtilityFlat    UtilityKind = "flat"
	UtilityMetered UtilityKind = "metered"
)

// Utility is the billing configuration for one utility on a room.
type Utility struct {
	Kind UtilityKind `json:"kind"`
	// AmountCents is the fixed charge for flat utilities.
	AmountCents int64 `json:"amount_cents,omitempty"`
	// RateCents is the per-unit rate for metered utilities.
	RateCents int64 `json:"rate_cents,omitempty"`
	// DefaultConsumption is the unit count assumed when no meter
	// reading exists for the billing period. Zero means the
	// builtin default applies.
	DefaultConsumption int64 `json:"default_consumption,omitempty"`
	// MeterID links the utility to imported meter readings.
	MeterID string `json:"meter_id,omitempty"`
}

// Utilities maps a utility name (e.g. "electricity", "water") to its
// configuration. Stored as a JSONB column.
type Utilities map[string]Utility

func (u Utilities) Value() (driver.Value, error) {
	if u == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(u)
}

func (u *Utilities) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, u)
	case string:
		return json.Unmarshal([]byte(v), u)
	case nil:
		*u = nil
		return nil
	default:
		return fmt.Errorf("scanning utilities: unsupported type %T", src)
	}
}

// TenantSnapshot is the tenant contact info denormalized onto a room at
// assignment time. It is a point-in-time copy and is not kept in sync
// with the user record.
type TenantSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (t TenantSnapshot) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *TenantSnapshot) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	case nil:
		*t = TenantSnapshot{}
		return nil
	default:
		return fmt.Errorf("scanning tenant snapshot: unsupported type %T", src)
	}
}

// Room represents a rentable unit within a property.
type Room struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	Number     string
	Type       string
	RentCents  int64
	Utilities  Utilities
	Status     RoomStatus
	TenantID   *uuid.UUID
	Tenant     *TenantSnapshot
	LeaseStart *time.Time
	LeaseEnd   *time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Property represents a boarding house owned by a landlord. Occupancy
// counts are stored aggregates recomputed from the room set on every
// room mutation.
type Property struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
	Address string
	// DueDays is the number of days after generation that a bill
	// for this property falls due.
	DueDays    int
	TotalRooms int
	Occupied   int
	Vacant     int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// DefaultDueDays applies when a property does not configure its own.
const DefaultDueDays = 15
