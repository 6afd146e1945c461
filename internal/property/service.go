package property

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=property
type Repository interface {
	CreateProperty(ctx context.Context, p *Property) error
	GetProperty(ctx context.Context, id uuid.UUID) (*Property, error)
	ListProperties(ctx context.Context, ownerID uuid.UUID) ([]*Property, error)
	UpdateProperty(ctx context.Context, p *Property) error
	// DeleteProperty removes a property and its rooms. It fails with
	// ErrHasOccupiedRooms if any room is occupied, deleting nothing.
	DeleteProperty(ctx context.Context, id uuid.UUID) error

	CreateRoom(ctx context.Context, room *Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	ListRooms(ctx context.Context, propertyID uuid.UUID) ([]*Room, error)
	UpdateRoom(ctx context.Context, room *Room) error
	SetRoomStatus(ctx context.Context, id uuid.UUID, status RoomStatus) error
	// DeleteRoom fails with ErrRoomOccupied if the room is occupied.
	DeleteRoom(ctx context.Context, id uuid.UUID) error

	// RecalcOccupancy overwrites the property's stored occupancy
	// counts from an aggregate over its rooms, atomically.
	RecalcOccupancy(ctx context.Context, propertyID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreatePropertyParams struct {
	OwnerID uuid.UUID
	Name    string
	Address string
	DueDays int
}

func (s *Service) CreateProperty(ctx context.Context, params CreatePropertyParams) (*Property, error) {
	if params.DueDays <= 0 {
		params.DueDays = DefaultDueDays
	}

	p := &Property{
		OwnerID: params.OwnerID,
		Name:    params.Name,
		Address: params.Address,
		DueDays: params.DueDays,
	}
	if err := s.repo.CreateProperty(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) GetProperty(ctx context.Context, id uuid.UUID) (*Property, error) {
	return s.repo.GetProperty(ctx, id)
}

func (s *Service) ListProperties(ctx context.Context, ownerID uuid.UUID) ([]*Property, error) {
	return s.repo.ListProperties(ctx, ownerID)
}

type UpdatePropertyParams struct {
	Name    *string
	Address *string
	DueDays *int
}

func (s *Service) UpdateProperty(ctx context.Context, ownerID, id uuid.UUID, params UpdatePropertyParams) (*Property, error) {
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}

	if params.Name != nil {
		p.Name = *params.Name
	}

	if params.Address != nil {
		p.Address = *params.Address
	}

	if params.DueDays != nil && *params.DueDays > 0 {
		p.DueDays = *params.DueDays
	}

	if err := s.repo.UpdateProperty(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) DeleteProperty(ctx context.Context, ownerID, id uuid.UUID) error {
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return err
	}

	if p.OwnerID != ownerID {
		return ErrAccessDenied
	}

	return s.repo.DeleteProperty(ctx, id)
}

type CreateRoomParams struct {
	PropertyID uuid.UUID
	Number     string
	Type       string
	RentCents  int64
	Utilities  Utilities
}

func (s *Service) CreateRoom(ctx context.Context, ownerID uuid.UUID, params CreateRoomParams) (*Room, error) {
	if err := s.checkOwner(ctx, ownerID, params.PropertyID); err != nil {
		return nil, err
	}

	room := &Room{
		PropertyID: params.PropertyID,
		Number:     params.Number,
		Type:       params.Type,
		RentCents:  params.RentCents,
		Utilities:  params.Utilities,
		Status:     RoomVacant,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context, propertyID uuid.UUID) ([]*Room, error) {
	return s.repo.ListRooms(ctx, propertyID)
}

type UpdateRoomParams struct {
	Number    *string
	Type      *string
	RentCents *int64
	Utilities Utilities
}

func (s *Service) UpdateRoom(ctx context.Context, ownerID, id uuid.UUID, params UpdateRoomParams) (*Room, error) {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwner(ctx, ownerID, room.PropertyID); err != nil {
		return nil, err
	}

	if params.Number != nil {
		room.Number = *params.Number
	}

	if params.Type != nil {
		room.Type = *params.Type
	}

	if params.RentCents != nil {
		room.RentCents = *params.RentCents
	}

	if params.Utilities != nil {
		room.Utilities = params.Utilities
	}

	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// SetRoomStatus transitions a room between vacant and maintenance. The
// occupied transition happens only through tenant assignment.
func (s *Service) SetRoomStatus(ctx context.Context, ownerID, id uuid.UUID, status RoomStatus) error {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkOwner(ctx, ownerID, room.PropertyID); err != nil {
		return err
	}

	if status == RoomOccupied {
		return fmt.Errorf("rooms become occupied via tenant assignment: %w", ErrRoomNotVacant)
	}

	if room.Status == RoomOccupied {
		return ErrRoomOccupied
	}

	return s.repo.SetRoomStatus(ctx, id, status)
}

func (s *Service) DeleteRoom(ctx context.Context, ownerID, id uuid.UUID) error {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkOwner(ctx, ownerID, room.PropertyID); err != nil {
		return err
	}

	return s.repo.DeleteRoom(ctx, id)
}

func (s *Service) RecalcOccupancy(ctx context.Context, propertyID uuid.UUID) error {
	return s.repo.RecalcOccupancy(ctx, propertyID)
}

func (s *Service) checkOwner(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	p, err := s.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	if p.OwnerID != ownerID {
		return ErrAccessDenied
	}

	return nil
}
