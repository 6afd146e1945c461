package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

// Kind classifies a notification.
type Kind string

const (
	KindApplication Kind = "application"
	KindPayment     Kind = "payment"
	KindSystem      Kind = "system"
)

// Notification is an in-app message for one user. The original client
// kept these on-device; the backend keeps them in the store so every
// device of a user sees the same list.
type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Kind        Kind
	Title       string
	Body        string
	// RefID points at the entity the notification is about (bill,
	// proof or application), when there is one.
	RefID     *uuid.UUID
	Read      bool
	CreatedAt time.Time
}
