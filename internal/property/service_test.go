package property_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/boardinghub/boardinghub/internal/property"
)

func TestService_CreateProperty(t *testing.T) {
	type args struct {
		params property.CreatePropertyParams
	}

	type testCase struct {
		name        string
		args        args
		setupMock   func(m *property.MockRepository)
		wantDueDays int
		wantErr     bool
	}

	ownerID := uuid.New()

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: property.CreatePropertyParams{
					OwnerID: ownerID,
					Name:    "Sunrise House",
					Address: "12 Hill Road",
					DueDays: 20,
				},
			},
			setupMock: func(m *property.MockRepository) {
				m.EXPECT().
					CreateProperty(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *property.Property) error {
						p.ID = uuid.New()
						return nil
					})
			},
			wantDueDays: 20,
		},
		{
			name: "DefaultDueDays",
			args: args{
				params: property.CreatePropertyParams{
					OwnerID: ownerID,
					Name:    "Sunrise House",
				},
			},
			setupMock: func(m *property.MockRepository) {
				m.EXPECT().
					CreateProperty(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *property.Property) error {
						p.ID = uuid.New()
						return nil
					})
			},
			wantDueDays: property.DefaultDueDays,
		},
		{
			name: "RepoError",
			args: args{
				params: property.CreatePropertyParams{OwnerID: ownerID, Name: "Broken"},
			},
			setupMock: func(m *property.MockRepository) {
				m.EXPECT().
					CreateProperty(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := property.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := property.NewService(repo)
			got, err := svc.CreateProperty(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDueDays, got.DueDays)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_DeleteProperty_OwnerOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := property.NewMockRepository(ctrl)
	svc := property.NewService(repo)

	propID := uuid.New()

	repo.EXPECT().GetProperty(gomock.Any(), propID).Return(&property.Property{
		ID:      propID,
		OwnerID: uuid.New(),
	}, nil)

	err := svc.DeleteProperty(context.Background(), uuid.New(), propID)
	assert.ErrorIs(t, err, property.ErrAccessDenied)
}

func TestService_DeleteProperty_OccupiedRoomsBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := property.NewMockRepository(ctrl)
	svc := property.NewService(repo)

	ownerID := uuid.New()
	propID := uuid.New()

	repo.EXPECT().GetProperty(gomock.Any(), propID).Return(&property.Property{
		ID:      propID,
		OwnerID: ownerID,
	}, nil)
	repo.EXPECT().DeleteProperty(gomock.Any(), propID).Return(property.ErrHasOccupiedRooms)

	err := svc.DeleteProperty(context.Background(), ownerID, propID)
	assert.ErrorIs(t, err, property.ErrHasOccupiedRooms)
}

func TestService_CreateRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := property.NewMockRepository(ctrl)
	svc := property.NewService(repo)

	ownerID := uuid.New()
	propID := uuid.New()

	repo.EXPECT().GetProperty(gomock.Any(), propID).Return(&property.Property{
		ID:      propID,
		OwnerID: ownerID,
	}, nil)
	repo.EXPECT().
		CreateRoom(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, room *property.Room) error {
			room.ID = uuid.New()
			return nil
		})

	room, err := svc.CreateRoom(context.Background(), ownerID, property.CreateRoomParams{
		PropertyID: propID,
		Number:     "B-2",
		RentCents:  400000,
		Utilities: property.Utilities{
			"water": {Kind: property.UtilityFlat, AmountCents: 20000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, property.RoomVacant, room.Status)
	assert.Equal(t, int64(400000), room.RentCents)
}

func TestService_SetRoomStatus(t *testing.T) {
	ownerID := uuid.New()
	propID := uuid.New()
	roomID := uuid.New()

	type testCase struct {
		name      string
		status    property.RoomStatus
		setupMock func(m *property.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "VacantToMaintenance",
			status: property.RoomMaintenance,
			setupMock: func(m *property.MockRepository) {
				m.EXPECT().GetRoom(gomock.Any(), roomID).Return(&property.Room{
					ID:         roomID,
					PropertyID: propID,
					Status:     property.RoomVacant,
				}, nil)
				m.EXPECT().GetProperty(gomock.Any(), propID).Return(&property.Property{
					ID:      propID,
					OwnerID: ownerID,
				}, nil)
				m.EXPECT().SetRoomStatus(gomock.Any(), roomID, property.RoomMaintenance).Return(nil)
			},
		},
		{
			name:   "OccupiedIsBlocked",
			status: property.RoomOccupied,
			setupMock: func(m *property.MockRepository) {
				m.EXPECT().GetRoom(gomock.Any(), roomID).Return(&property.Room{
					ID:         roomID,
					PropertyID: propID,
					Status:     property.RoomVacant,
				}, nil)
				m.EXPECT().GetProperty(gomock.Any(), propID).Return(&property.Property{
					ID:      propID,
					OwnerID: ownerID,
				}, nil)
			},
			wantErr: property.ErrRoomNotVacant,
		},
		{
			name:   "OccupiedRoomCannotFlip",
			status: property.RoomVacant,
			setupMock: func(m *property.MockRepository) {
				m.EXPECT().GetRoom(gomock.Any(), roomID).Return(&property.Room{
					ID:         roomID,
					PropertyID: propID,
					Status:     property.RoomOccupied,
				}, nil)
				m.EXPECT().GetProperty(gomock.Any(), propID).Return(&property.Property{
					ID:      propID,
					OwnerID: ownerID,
				}, nil)
			},
			wantErr: property.ErrRoomOccupied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := property.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := property.NewService(repo)
			err := svc.SetRoomStatus(context.Background(), ownerID, roomID, tt.status)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_DeleteRoom_Occupied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := property.NewMockRepository(ctrl)
	svc := property.NewService(repo)

	ownerID := uuid.New()
	propID := uuid.New()
	roomID := uuid.New()

	repo.EXPECT().GetRoom(gomock.Any(), roomID).Return(&property.Room{
		ID:         roomID,
		PropertyID: propID,
		Status:     property.RoomOccupied,
	}, nil)
	repo.EXPECT().GetProperty(gomock.Any(), propID).Return(&property.Property{
		ID:      propID,
		OwnerID: ownerID,
	}, nil)
	repo.EXPECT().DeleteRoom(gomock.Any(), roomID).Return(property.ErrRoomOccupied)

	err := svc.DeleteRoom(context.Background(), ownerID, roomID)
	assert.ErrorIs(t, err, property.ErrRoomOccupied)
}

func TestService_UpdateProperty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := property.NewMockRepository(ctrl)
	svc := property.NewService(repo)

	ownerID := uuid.New()
	propID := uuid.New()

	repo.EXPECT().GetProperty(gomock.Any(), propID).Return(&property.Property{
		ID:      propID,
		OwnerID: ownerID,
		Name:    "Old Name",
		DueDays: 15,
	}, nil)
	repo.EXPECT().UpdateProperty(gomock.Any(), gomock.Any()).Return(nil)

	newName := "New Name"
	newDueDays := 10
	got, err := svc.UpdateProperty(context.Background(), ownerID, propID, property.UpdatePropertyParams{
		Name:    &newName,
		DueDays: &newDueDays,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, 10, got.DueDays)
}
