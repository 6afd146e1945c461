package tenantapp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/notification"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tenantapp
type Repository interface {
	CreateApplication(ctx context.Context, app *Application) error
	GetApplication(ctx context.Context, id uuid.UUID) (*Application, error)
	ListApplications(ctx context.Context, filter ListFilter) ([]*Application, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx applies an application decision and its side effects (room,
// tenant record, property occupancy, notification) all-or-nothing.
type Tx interface {
	GetApplicationForUpdate(ctx context.Context, id uuid.UUID) (*Application, error)
	SetDecision(ctx context.Context, id uuid.UUID, status Status, note string, leaseStart, leaseEnd *time.Time, decidedAt time.Time) error

	// OccupyRoom marks the room occupied with the tenant snapshot and
	// lease dates. Fails with ErrRoomTaken unless the room is vacant.
	OccupyRoom(ctx context.Context, roomID, tenantID uuid.UUID, snapshot Snapshot, leaseStart, leaseEnd *time.Time) error
	AssignTenant(ctx context.Context, tenantID, roomID, propertyID uuid.UUID) error
	RecalcOccupancy(ctx context.Context, propertyID uuid.UUID) error

	Notify(ctx context.Context, recipientID uuid.UUID, kind notification.Kind, title, body string, refID uuid.UUID) error

	Commit() error
	Rollback() error
}

type ListFilter struct {
	LandlordID *uuid.UUID
	TenantID   *uuid.UUID
	RoomID     *uuid.UUID
	Status     *Status
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ApplyParams struct {
	TenantID   uuid.UUID
	LandlordID uuid.UUID
	PropertyID uuid.UUID
	RoomID     uuid.UUID
	Tenant     Snapshot
	Message    string
}

// Apply files a room application and notifies the landlord.
func (s *Service) Apply(ctx context.Context, params ApplyParams) (*Application, error) {
	app := &Application{
		TenantID:   params.TenantID,
		LandlordID: params.LandlordID,
		PropertyID: params.PropertyID,
		RoomID:     params.RoomID,
		Tenant:     params.Tenant,
		Message:    params.Message,
		Status:     StatusPending,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Application, error) {
	return s.repo.GetApplication(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Application, error) {
	return s.repo.ListApplications(ctx, filter)
}

type ApproveParams struct {
	LeaseStart *time.Time
	LeaseEnd   *time.Time
	Note       string
}

// Approve accepts the application and performs the assignment: the
// room becomes occupied with the tenant snapshot, the tenant record is
// linked to the room, and the property occupancy is recomputed — all
// in one transaction, so no partial assignment can be left behind.
func (s *Service) Approve(ctx context.Context, landlordID, appID uuid.UUID, params ApproveParams) (*Application, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin approve: %w", err)
	}
	defer tx.Rollback()

	app, err := tx.GetApplicationForUpdate(ctx, appID)
	if err != nil {
		return nil, err
	}

	if app.LandlordID != landlordID {
		return nil, ErrAccessDenied
	}

	if app.Status != StatusPending {
		return nil, ErrDecided
	}

	now := time.Now().UTC()

	leaseStart := params.LeaseStart
	if leaseStart == nil {
		leaseStart = &now
	}

	if err := tx.SetDecision(ctx, appID, StatusApproved, params.Note, leaseStart, params.LeaseEnd, now); err != nil {
		return nil, err
	}

	if err := tx.OccupyRoom(ctx, app.RoomID, app.TenantID, app.Tenant, leaseStart, params.LeaseEnd); err != nil {
		return nil, err
	}

	if err := tx.AssignTenant(ctx, app.TenantID, app.RoomID, app.PropertyID); err != nil {
		return nil, err
	}

	if err := tx.RecalcOccupancy(ctx, app.PropertyID); err != nil {
		return nil, err
	}

	if err := tx.Notify(ctx, app.TenantID, notification.KindApplication,
		"Application approved",
		"Your room application was approved. Welcome in!",
		app.ID,
	); err != nil {
		return nil, fmt.Errorf("notifying tenant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approve: %w", err)
	}

	app.Status = StatusApproved
	app.LeaseStart = leaseStart
	app.LeaseEnd = params.LeaseEnd
	app.DecidedAt = &now
	app.DecisionNote = params.Note

	return app, nil
}

// Reject declines the application and notifies the tenant.
func (s *Service) Reject(ctx context.Context, landlordID, appID uuid.UUID, note string) (*Application, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reject: %w", err)
	}
	defer tx.Rollback()

	app, err := tx.GetApplicationForUpdate(ctx, appID)
	if err != nil {
		return nil, err
	}

	if app.LandlordID != landlordID {
		return nil, ErrAccessDenied
	}

	if app.Status != StatusPending {
		return nil, ErrDecided
	}

	now := time.Now().UTC()

	if err := tx.SetDecision(ctx, appID, StatusRejected, note, nil, nil, now); err != nil {
		return nil, err
	}

	body := "Your room application was rejected."
	if note != "" {
		body += " Reason: " + note
	}

	if err := tx.Notify(ctx, app.TenantID, notification.KindApplication, "Application rejected", body, app.ID); err != nil {
		return nil, fmt.Errorf("notifying tenant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reject: %w", err)
	}

	app.Status = StatusRejected
	app.DecidedAt = &now
	app.DecisionNote = note

	return app, nil
}
