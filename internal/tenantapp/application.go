package tenantapp

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("application not found")
	ErrAccessDenied = errors.New("access denied")
	ErrDecided      = errors.New("application already decided")
	ErrRoomTaken    = errors.New("room is no longer vacant")
)

// Status represents the lifecycle state of a room application.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Snapshot is the applicant's contact info copied onto the application
// at submission time. It is the snapshot embedded on the room when the
// application is approved.
type Snapshot struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (s Snapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Snapshot) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = Snapshot{}
		return nil
	default:
		return fmt.Errorf("scanning snapshot: unsupported type %T", src)
	}
}

// Application is a tenant's request to rent a specific room.
type Application struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	LandlordID uuid.UUID
	PropertyID uuid.UUID
	RoomID     uuid.UUID
	Tenant     Snapshot
	Message    string
	Status     Status
	LeaseStart *time.Time
	LeaseEnd   *time.Time
	CreatedAt  time.Time
	DecidedAt  *time.Time
	// DecisionNote carries the landlord's reason, shown to the tenant.
	DecisionNote string
}
