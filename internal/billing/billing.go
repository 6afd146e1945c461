package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/property"
)

var (
	ErrNotFound      = errors.New("bill not found")
	ErrProofNotFound = errors.New("payment proof not found")
	ErrAccessDenied  = errors.New("access denied")
	ErrBillPaid      = errors.New("bill is already paid")
	ErrProofReviewed = errors.New("payment proof already reviewed")
)

// Status represents the lifecycle state of a bill.
type Status string

const (
	StatusPending        Status = "pending"
	StatusProofSubmitted Status = "proof_submitted"
	StatusPaid           Status = "paid"
	StatusOverdue        Status = "overdue"
)

// ProofStatus represents the review state of a payment proof.
type ProofStatus string

const (
	ProofPendingReview ProofStatus = "pending_review"
	ProofApproved      ProofStatus = "approved"
	ProofRejected      ProofStatus = "rejected"
)

// Period is the span of time a bill charges for.
type Period struct {
	From  time.Time  `json:"from"`
	To    time.Time  `json:"to"`
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// NewPeriod returns the calendar-month period for year/month.
func NewPeriod(year int, month time.Month) Period {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return Period{
		From:  from,
		To:    from.AddDate(0, 1, -1),
		Month: month,
		Year:  year,
	}
}

// ChargeLine is one component of a bill's amount.
type ChargeLine struct {
	Name        string               `json:"name"`
	Kind        property.UtilityKind `json:"kind,omitempty"`
	AmountCents int64                `json:"amount_cents"`
	// Consumption and RateCents are set for metered charges only.
	Consumption int64 `json:"consumption,omitempty"`
	RateCents   int64 `json:"rate_cents,omitempty"`
}

// Breakdown lists the charge lines a bill's amount is made of. Stored
// as a JSONB column and copied onto the payment history record.
type Breakdown []ChargeLine

func (b Breakdown) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(b)
}

func (b *Breakdown) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = nil
		return nil
	default:
		return fmt.Errorf("scanning breakdown: unsupported type %T", src)
	}
}

// Total sums the charge lines.
func (b Breakdown) Total() int64 {
	var total int64
	for _, line := range b {
		total += line.AmountCents
	}

	return total
}

// Bill is a per-period charge record owed by a tenant.
type Bill struct {
	ID         uuid.UUID
	InvoiceID  string // INV-{year}-{seq}, unique per landlord
	TenantID   uuid.UUID
	LandlordID uuid.UUID
	PropertyID uuid.UUID
	RoomID     uuid.UUID
	RentCents  int64
	Breakdown  Breakdown
	// AmountCents == RentCents + Breakdown.Total() at creation time.
	AmountCents int64
	Period      Period
	DueDate     time.Time
	Status      Status
	// ProofID points at the proof currently under review, if any.
	ProofID   *uuid.UUID
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PaymentProof is tenant-submitted evidence of payment awaiting
// landlord review. Once reviewed it is never edited; a resubmission
// supersedes the old proof with a new record.
type PaymentProof struct {
	ID          uuid.UUID
	BillID      uuid.UUID
	InvoiceID   string
	TenantID    uuid.UUID
	LandlordID  uuid.UUID
	AmountCents int64
	ImageURL    string
	Note        string
	Status      ProofStatus
	SubmittedAt time.Time
	ReviewedAt  *time.Time
	ReviewNote  string
}

// PaymentHistory is an append-only audit record created when a bill is
// marked paid. Never mutated after creation.
type PaymentHistory struct {
	ID          uuid.UUID
	ReceiptID   string // RCP-{unix milliseconds}
	BillID      uuid.UUID
	InvoiceID   string
	TenantID    uuid.UUID
	LandlordID  uuid.UUID
	AmountCents int64
	Breakdown   Breakdown
	Method      string
	PaidAt      time.Time
	CreatedAt   time.Time
}

// MeterReading is a recorded consumption for one meter and billing
// period, in whole units.
type MeterReading struct {
	MeterID string
	Year    int
	Month   time.Month
	Units   int64
}

// NewReceiptID generates a human-readable receipt identifier.
func NewReceiptID(now time.Time) string {
	return fmt.Sprintf("RCP-%d", now.UnixMilli())
}

// FormatInvoiceID renders the durable per-landlord sequence as a
// human-readable invoice identifier.
func FormatInvoiceID(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%03d", year, seq)
}
