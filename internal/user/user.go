package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Role determines which side of the rental relationship a user is on.
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
)

// User is an account in the system. Tenants carry their current room
// and property assignment once a landlord approves their application.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	Name         string
	Phone        string
	RoomID       *uuid.UUID
	PropertyID   *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
