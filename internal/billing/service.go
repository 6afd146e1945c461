package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/notification"
	"github.com/boardinghub/boardinghub/internal/property"
)

// Default consumption assumed for metered utilities when neither a
// meter reading nor a per-room default exists.
const (
	defaultElectricityUnits = 100
	defaultMeteredUnits     = 50
)

var ErrDuplicateBill = fmt.Errorf("bill already exists for period")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	GetBill(ctx context.Context, id uuid.UUID) (*Bill, error)
	ListBills(ctx context.Context, filter ListFilter) ([]*Bill, error)
	DeleteBill(ctx context.Context, id uuid.UUID) error

	GetProof(ctx context.Context, id uuid.UUID) (*PaymentProof, error)
	ListProofs(ctx context.Context, filter ProofFilter) ([]*PaymentProof, error)

	ListHistory(ctx context.Context, filter HistoryFilter) ([]*PaymentHistory, error)

	// OccupiedRooms returns billing inputs for every occupied room
	// owned by the landlord.
	OccupiedRooms(ctx context.Context, landlordID uuid.UUID) ([]*OccupiedRoom, error)

	// ConsumptionFor returns the imported reading for a meter and
	// period. ok is false when no reading exists.
	ConsumptionFor(ctx context.Context, meterID string, year int, month time.Month) (units int64, ok bool, err error)
	UpsertReadings(ctx context.Context, readings []MeterReading) error

	// MarkOverdue flips pending bills past their due date to overdue
	// and returns how many were updated.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx groups the writes of a multi-entity state change so they apply
// all-or-nothing.
type Tx interface {
	NextInvoiceSeq(ctx context.Context, landlordID uuid.UUID, year int) (int64, error)
	CreateBill(ctx context.Context, bill *Bill) error
	GetBillForUpdate(ctx context.Context, id uuid.UUID) (*Bill, error)
	SetBillStatus(ctx context.Context, id uuid.UUID, status Status, proofID *uuid.UUID, paidAt *time.Time) error

	CreateProof(ctx context.Context, proof *PaymentProof) error
	GetProofForUpdate(ctx context.Context, id uuid.UUID) (*PaymentProof, error)
	// SupersedeProofs rejects any proof still pending review for the
	// bill, so a resubmission replaces rather than stacks.
	SupersedeProofs(ctx context.Context, billID uuid.UUID) error
	SetProofReview(ctx context.Context, id uuid.UUID, status ProofStatus, note string, reviewedAt time.Time) error

	CreateHistory(ctx context.Context, h *PaymentHistory) error
	Notify(ctx context.Context, recipientID uuid.UUID, kind notification.Kind, title, body string, refID uuid.UUID) error

	Commit() error
	Rollback() error
}

// OccupiedRoom is the slice of room/tenant state bill generation needs.
type OccupiedRoom struct {
	RoomID     uuid.UUID
	RoomNumber string
	PropertyID uuid.UUID
	TenantID   uuid.UUID
	TenantName string
	RentCents  int64
	Utilities  property.Utilities
	DueDays    int
}

type ListFilter struct {
	LandlordID *uuid.UUID
	TenantID   *uuid.UUID
	PropertyID *uuid.UUID
	Status     *Status
	Year       *int
	Month      *time.Month
}

type ProofFilter struct {
	BillID     *uuid.UUID
	LandlordID *uuid.UUID
	TenantID   *uuid.UUID
	Status     *ProofStatus
}

type HistoryFilter struct {
	BillID     *uuid.UUID
	LandlordID *uuid.UUID
	TenantID   *uuid.UUID
	From       *time.Time
	To         *time.Time
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SkippedTenant reports one tenant a generation run could not bill.
type SkippedTenant struct {
	TenantID uuid.UUID
	RoomID   uuid.UUID
	Reason   string
}

// GenerateResult reports both the bills written and the tenants
// skipped, so a partial failure is visible to the caller.
type GenerateResult struct {
	Bills   []*Bill
	Skipped []SkippedTenant
}

// Generate writes one bill per occupied room for the landlord and
// period. Each bill is created in its own transaction together with
// its invoice-sequence increment, so concurrent runs cannot collide on
// invoice numbers; a room already billed for the period is skipped.
func (s *Service) Generate(ctx context.Context, landlordID uuid.UUID, period Period) (*GenerateResult, error) {
	rooms, err := s.repo.OccupiedRooms(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("loading occupied rooms: %w", err)
	}

	result := &GenerateResult{}

	for _, room := range rooms {
		bill, err := s.generateOne(ctx, landlordID, room, period)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedTenant{
				TenantID: room.TenantID,
				RoomID:   room.RoomID,
				Reason:   err.Error(),
			})

			continue
		}

		result.Bills = append(result.Bills, bill)
	}

	return result, nil
}

func (s *Service) generateOne(ctx context.Context, landlordID uuid.UUID, room *OccupiedRoom, period Period) (*Bill, error) {
	breakdown, err := s.computeBreakdown(ctx, room.Utilities, period)
	if err != nil {
		return nil, fmt.Errorf("computing charges: %w", err)
	}

	now := time.Now().UTC()

	dueDays := room.DueDays
	if dueDays <= 0 {
		dueDays = property.DefaultDueDays
	}

	bill := &Bill{
		TenantID:    room.TenantID,
		LandlordID:  landlordID,
		PropertyID:  room.PropertyID,
		RoomID:      room.RoomID,
		RentCents:   room.RentCents,
		Breakdown:   breakdown,
		AmountCents: room.RentCents + breakdown.Total(),
		Period:      period,
		DueDate:     now.AddDate(0, 0, dueDays),
		Status:      StatusPending,
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin generate: %w", err)
	}
	defer tx.Rollback()

	seq, err := tx.NextInvoiceSeq(ctx, landlordID, period.Year)
	if err != nil {
		return nil, fmt.Errorf("next invoice sequence: %w", err)
	}

	bill.InvoiceID = FormatInvoiceID(period.Year, seq)

	if err := tx.CreateBill(ctx, bill); err != nil {
		return nil, err
	}

	if err := tx.Notify(ctx, room.TenantID, notification.KindPayment,
		"New bill issued",
		fmt.Sprintf("Bill %s for room %s is due %s.", bill.InvoiceID, room.RoomNumber, bill.DueDate.Format(time.DateOnly)),
		bill.ID,
	); err != nil {
		return nil, fmt.Errorf("notifying tenant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit generate: %w", err)
	}

	return bill, nil
}

// computeBreakdown prices the configured utilities for the period.
// Metered utilities use the imported reading when one exists, falling
// back to the room's configured default consumption, then the builtin
// defaults.
func (s *Service) computeBreakdown(ctx context.Context, utilities property.Utilities, period Period) (Breakdown, error) {
	var breakdown Breakdown

	for name, u := range utilities {
		line := ChargeLine{Name: name, Kind: u.Kind}

		switch u.Kind {
		case property.UtilityFree:
			// Included in rent.
		case property.UtilityFlat:
			line.AmountCents = u.AmountCents
		case property.UtilityMetered:
			units := u.DefaultConsumption
			if units <= 0 {
				units = defaultUnitsFor(name)
			}

			if u.MeterID != "" {
				metered, ok, err := s.repo.ConsumptionFor(ctx, u.MeterID, period.Year, period.Month)
				if err != nil {
					return nil, fmt.Errorf("reading meter %s: %w", u.MeterID, err)
				}

				if ok {
					units = metered
				}
			}

			line.Consumption = units
			line.RateCents = u.RateCents
			line.AmountCents = u.RateCents * units
		default:
			return nil, fmt.Errorf("unknown utility kind %q for %s", u.Kind, name)
		}

		breakdown = append(breakdown, line)
	}

	return breakdown, nil
}

func defaultUnitsFor(name string) int64 {
	if strings.EqualFold(name, "electricity") {
		return defaultElectricityUnits
	}

	return defaultMeteredUnits
}

type SubmitProofParams struct {
	ImageURL string
	Note     string
}

// SubmitProof records tenant evidence of payment and flips the bill to
// proof_submitted in the same transaction. A proof still pending
// review on the bill is superseded.
func (s *Service) SubmitProof(ctx context.Context, tenantID, billID uuid.UUID, params SubmitProofParams) (*PaymentProof, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin submit: %w", err)
	}
	defer tx.Rollback()

	bill, err := tx.GetBillForUpdate(ctx, billID)
	if err != nil {
		return nil, err
	}

	if bill.TenantID != tenantID {
		return nil, ErrAccessDenied
	}

	if bill.Status == StatusPaid {
		return nil, ErrBillPaid
	}

	if err := tx.SupersedeProofs(ctx, billID); err != nil {
		return nil, fmt.Errorf("superseding proofs: %w", err)
	}

	proof := &PaymentProof{
		BillID:      billID,
		InvoiceID:   bill.InvoiceID,
		TenantID:    bill.TenantID,
		LandlordID:  bill.LandlordID,
		AmountCents: bill.AmountCents,
		ImageURL:    params.ImageURL,
		Note:        params.Note,
		Status:      ProofPendingReview,
	}
	if err := tx.CreateProof(ctx, proof); err != nil {
		return nil, err
	}

	if err := tx.SetBillStatus(ctx, billID, StatusProofSubmitted, &proof.ID, nil); err != nil {
		return nil, err
	}

	if err := tx.Notify(ctx, bill.LandlordID, notification.KindPayment,
		"Payment proof submitted",
		fmt.Sprintf("A payment proof for bill %s is awaiting review.", bill.InvoiceID),
		proof.ID,
	); err != nil {
		return nil, fmt.Errorf("notifying landlord: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit submit: %w", err)
	}

	return proof, nil
}

// ReviewAction is the landlord's decision on a payment proof.
type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewReject  ReviewAction = "reject"
)

// ReviewProof applies the landlord's decision. Approval marks the bill
// paid and writes exactly one payment-history record; rejection
// reverts the bill to pending, or overdue when past due. Both paths,
// including the tenant notification, commit atomically.
func (s *Service) ReviewProof(ctx context.Context, landlordID, proofID uuid.UUID, action ReviewAction, note string) (*PaymentProof, error) {
	if action != ReviewApprove && action != ReviewReject {
		return nil, fmt.Errorf("unknown review action %q", action)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin review: %w", err)
	}
	defer tx.Rollback()

	proof, err := tx.GetProofForUpdate(ctx, proofID)
	if err != nil {
		return nil, err
	}

	if proof.LandlordID != landlordID {
		return nil, ErrAccessDenied
	}

	if proof.Status != ProofPendingReview {
		return nil, ErrProofReviewed
	}

	bill, err := tx.GetBillForUpdate(ctx, proof.BillID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if action == ReviewApprove {
		if err := s.approve(ctx, tx, proof, bill, note, now); err != nil {
			return nil, err
		}
	} else {
		if err := s.reject(ctx, tx, proof, bill, note, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit review: %w", err)
	}

	proof.ReviewedAt = &now
	proof.ReviewNote = note

	return proof, nil
}

func (s *Service) approve(ctx context.Context, tx Tx, proof *PaymentProof, bill *Bill, note string, now time.Time) error {
	if err := tx.SetProofReview(ctx, proof.ID, ProofApproved, note, now); err != nil {
		return err
	}

	proof.Status = ProofApproved

	if err := tx.SetBillStatus(ctx, bill.ID, StatusPaid, nil, &now); err != nil {
		return err
	}

	history := &PaymentHistory{
		ReceiptID:   NewReceiptID(now),
		BillID:      bill.ID,
		InvoiceID:   bill.InvoiceID,
		TenantID:    bill.TenantID,
		LandlordID:  bill.LandlordID,
		AmountCents: bill.AmountCents,
		Breakdown:   bill.Breakdown,
		Method:      "proof",
		PaidAt:      now,
	}
	if err := tx.CreateHistory(ctx, history); err != nil {
		return fmt.Errorf("writing payment history: %w", err)
	}

	return tx.Notify(ctx, bill.TenantID, notification.KindPayment,
		"Payment approved",
		fmt.Sprintf("Your payment for bill %s was approved. Receipt %s.", bill.InvoiceID, history.ReceiptID),
		bill.ID,
	)
}

func (s *Service) reject(ctx context.Context, tx Tx, proof *PaymentProof, bill *Bill, note string, now time.Time) error {
	if err := tx.SetProofReview(ctx, proof.ID, ProofRejected, note, now); err != nil {
		return err
	}

	proof.Status = ProofRejected

	status := StatusPending
	if bill.DueDate.Before(now) {
		status = StatusOverdue
	}

	// Clears the bill's proof pointer; the amount is never touched.
	if err := tx.SetBillStatus(ctx, bill.ID, status, nil, nil); err != nil {
		return err
	}

	body := fmt.Sprintf("Your payment proof for bill %s was rejected.", bill.InvoiceID)
	if note != "" {
		body += " Reason: " + note
	}

	return tx.Notify(ctx, bill.TenantID, notification.KindPayment, "Payment proof rejected", body, bill.ID)
}

// MarkPaid records a payment made outside the proof flow (e.g. cash in
// hand) and writes the payment-history record.
func (s *Service) MarkPaid(ctx context.Context, landlordID, billID uuid.UUID, method string) (*Bill, error) {
	if method == "" {
		method = "manual"
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin mark paid: %w", err)
	}
	defer tx.Rollback()

	bill, err := tx.GetBillForUpdate(ctx, billID)
	if err != nil {
		return nil, err
	}

	if bill.LandlordID != landlordID {
		return nil, ErrAccessDenied
	}

	if bill.Status == StatusPaid {
		return nil, ErrBillPaid
	}

	if err := tx.SupersedeProofs(ctx, billID); err != nil {
		return nil, fmt.Errorf("superseding proofs: %w", err)
	}

	now := time.Now().UTC()

	if err := tx.SetBillStatus(ctx, billID, StatusPaid, nil, &now); err != nil {
		return nil, err
	}

	history := &PaymentHistory{
		ReceiptID:   NewReceiptID(now),
		BillID:      bill.ID,
		InvoiceID:   bill.InvoiceID,
		TenantID:    bill.TenantID,
		LandlordID:  bill.LandlordID,
		AmountCents: bill.AmountCents,
		Breakdown:   bill.Breakdown,
		Method:      method,
		PaidAt:      now,
	}
	if err := tx.CreateHistory(ctx, history); err != nil {
		return nil, fmt.Errorf("writing payment history: %w", err)
	}

	if err := tx.Notify(ctx, bill.TenantID, notification.KindPayment,
		"Bill marked paid",
		fmt.Sprintf("Bill %s was marked paid. Receipt %s.", bill.InvoiceID, history.ReceiptID),
		bill.ID,
	); err != nil {
		return nil, fmt.Errorf("notifying tenant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit mark paid: %w", err)
	}

	bill.Status = StatusPaid
	bill.PaidAt = &now
	bill.ProofID = nil

	return bill, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.GetBill(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Bill, error) {
	return s.repo.ListBills(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, landlordID, id uuid.UUID) error {
	bill, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return err
	}

	if bill.LandlordID != landlordID {
		return ErrAccessDenied
	}

	return s.repo.DeleteBill(ctx, id)
}

func (s *Service) GetProof(ctx context.Context, id uuid.UUID) (*PaymentProof, error) {
	return s.repo.GetProof(ctx, id)
}

func (s *Service) ListProofs(ctx context.Context, filter ProofFilter) ([]*PaymentProof, error) {
	return s.repo.ListProofs(ctx, filter)
}

func (s *Service) History(ctx context.Context, filter HistoryFilter) ([]*PaymentHistory, error) {
	return s.repo.ListHistory(ctx, filter)
}

// RecordReadings upserts imported meter readings; a re-import for the
// same meter and period overwrites.
func (s *Service) RecordReadings(ctx context.Context, readings []MeterReading) error {
	if len(readings) == 0 {
		return nil
	}

	return s.repo.UpsertReadings(ctx, readings)
}

// MarkOverdueBills flips pending bills past their due date to overdue.
// Run daily by the scheduler.
func (s *Service) MarkOverdueBills(ctx context.Context) (int64, error) {
	return s.repo.MarkOverdue(ctx, time.Now().UTC())
}
