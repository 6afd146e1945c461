package tenantapp_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/boardinghub/boardinghub/internal/tenantapp"
)

func TestService_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenantapp.NewMockRepository(ctrl)
	svc := tenantapp.NewService(repo)

	repo.EXPECT().
		CreateApplication(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, app *tenantapp.Application) error {
			app.ID = uuid.New()
			app.CreatedAt = time.Now()
			return nil
		})

	app, err := svc.Apply(context.Background(), tenantapp.ApplyParams{
		TenantID:   uuid.New(),
		LandlordID: uuid.New(),
		PropertyID: uuid.New(),
		RoomID:     uuid.New(),
		Tenant:     tenantapp.Snapshot{Name: "Sam", Email: "sam@example.com"},
		Message:    "Looking for a quiet room.",
	})
	require.NoError(t, err)
	assert.Equal(t, tenantapp.StatusPending, app.Status)
	assert.NotEmpty(t, app.ID)
}

func TestService_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenantapp.NewMockRepository(ctrl)
	tx := tenantapp.NewMockTx(ctrl)
	svc := tenantapp.NewService(repo)

	landlordID := uuid.New()
	tenantID := uuid.New()
	propertyID := uuid.New()
	roomID := uuid.New()
	appID := uuid.New()

	snapshot := tenantapp.Snapshot{Name: "Sam", Phone: "555-0101"}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetApplicationForUpdate(gomock.Any(), appID).Return(&tenantapp.Application{
		ID:         appID,
		TenantID:   tenantID,
		LandlordID: landlordID,
		PropertyID: propertyID,
		RoomID:     roomID,
		Tenant:     snapshot,
		Status:     tenantapp.StatusPending,
	}, nil)
	tx.EXPECT().SetDecision(gomock.Any(), appID, tenantapp.StatusApproved, "", gomock.Any(), nil, gomock.Any()).Return(nil)
	tx.EXPECT().OccupyRoom(gomock.Any(), roomID, tenantID, snapshot, gomock.Any(), nil).Return(nil)
	tx.EXPECT().AssignTenant(gomock.Any(), tenantID, roomID, propertyID).Return(nil)
	tx.EXPECT().RecalcOccupancy(gomock.Any(), propertyID).Return(nil)
	tx.EXPECT().Notify(gomock.Any(), tenantID, gomock.Any(), gomock.Any(), gomock.Any(), appID).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	app, err := svc.Approve(context.Background(), landlordID, appID, tenantapp.ApproveParams{})
	require.NoError(t, err)
	assert.Equal(t, tenantapp.StatusApproved, app.Status)
	assert.NotNil(t, app.LeaseStart)
	assert.NotNil(t, app.DecidedAt)
}

func TestService_Approve_RoomTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenantapp.NewMockRepository(ctrl)
	tx := tenantapp.NewMockTx(ctrl)
	svc := tenantapp.NewService(repo)

	landlordID := uuid.New()
	appID := uuid.New()
	roomID := uuid.New()

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetApplicationForUpdate(gomock.Any(), appID).Return(&tenantapp.Application{
		ID:         appID,
		TenantID:   uuid.New(),
		LandlordID: landlordID,
		RoomID:     roomID,
		Status:     tenantapp.StatusPending,
	}, nil)
	tx.EXPECT().SetDecision(gomock.Any(), appID, tenantapp.StatusApproved, "", gomock.Any(), nil, gomock.Any()).Return(nil)
	tx.EXPECT().OccupyRoom(gomock.Any(), roomID, gomock.Any(), gomock.Any(), gomock.Any(), nil).Return(tenantapp.ErrRoomTaken)
	tx.EXPECT().Rollback().Return(nil)

	app, err := svc.Approve(context.Background(), landlordID, appID, tenantapp.ApproveParams{})
	assert.ErrorIs(t, err, tenantapp.ErrRoomTaken)
	assert.Nil(t, app)
}

func TestService_Approve_Guards(t *testing.T) {
	appID := uuid.New()
	landlordID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(repo *tenantapp.MockRepository, tx *tenantapp.MockTx)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "AlreadyDecided",
			setupMock: func(repo *tenantapp.MockRepository, tx *tenantapp.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().GetApplicationForUpdate(gomock.Any(), appID).Return(&tenantapp.Application{
					ID:         appID,
					LandlordID: landlordID,
					Status:     tenantapp.StatusApproved,
				}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: tenantapp.ErrDecided,
		},
		{
			name: "NotTheLandlord",
			setupMock: func(repo *tenantapp.MockRepository, tx *tenantapp.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().GetApplicationForUpdate(gomock.Any(), appID).Return(&tenantapp.Application{
					ID:         appID,
					LandlordID: uuid.New(),
					Status:     tenantapp.StatusPending,
				}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: tenantapp.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := tenantapp.NewMockRepository(ctrl)
			tx := tenantapp.NewMockTx(ctrl)
			tt.setupMock(repo, tx)

			svc := tenantapp.NewService(repo)
			app, err := svc.Approve(context.Background(), landlordID, appID, tenantapp.ApproveParams{})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, app)
		})
	}
}

func TestService_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenantapp.NewMockRepository(ctrl)
	tx := tenantapp.NewMockTx(ctrl)
	svc := tenantapp.NewService(repo)

	landlordID := uuid.New()
	tenantID := uuid.New()
	appID := uuid.New()

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetApplicationForUpdate(gomock.Any(), appID).Return(&tenantapp.Application{
		ID:         appID,
		TenantID:   tenantID,
		LandlordID: landlordID,
		Status:     tenantapp.StatusPending,
	}, nil)
	tx.EXPECT().SetDecision(gomock.Any(), appID, tenantapp.StatusRejected, "room promised elsewhere", nil, nil, gomock.Any()).Return(nil)
	tx.EXPECT().Notify(gomock.Any(), tenantID, gomock.Any(), gomock.Any(), gomock.Any(), appID).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	app, err := svc.Reject(context.Background(), landlordID, appID, "room promised elsewhere")
	require.NoError(t, err)
	assert.Equal(t, tenantapp.StatusRejected, app.Status)
	assert.Equal(t, "room promised elsewhere", app.DecisionNote)
}
