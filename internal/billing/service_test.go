package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/boardinghub/boardinghub/internal/billing"
	"github.com/boardinghub/boardinghub/internal/property"
)

func TestService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	tx := billing.NewMockTx(ctrl)
	svc := billing.NewService(repo)

	landlordID := uuid.New()
	tenantID := uuid.New()
	roomID := uuid.New()
	propertyID := uuid.New()
	period := billing.NewPeriod(2026, time.March)

	// Rent 4000, electricity 12/unit at the builtin 100 units,
	// water flat 200: total 5400.
	room := &billing.OccupiedRoom{
		RoomID:     roomID,
		RoomNumber: "A-101",
		PropertyID: propertyID,
		TenantID:   tenantID,
		TenantName: "Sam",
		RentCents:  4000,
		DueDays:    10,
		Utilities: property.Utilities{
			"electricity": {Kind: property.UtilityMetered, RateCents: 12},
			"water":       {Kind: property.UtilityFlat, AmountCents: 200},
			"wifi":        {Kind: property.UtilityFree},
		},
	}

	repo.EXPECT().OccupiedRooms(gomock.Any(), landlordID).Return([]*billing.OccupiedRoom{room}, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().NextInvoiceSeq(gomock.Any(), landlordID, 2026).Return(int64(7), nil)
	tx.EXPECT().
		CreateBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, bill *billing.Bill) error {
			bill.ID = uuid.New()
			bill.CreatedAt = time.Now()
			return nil
		})
	tx.EXPECT().Notify(gomock.Any(), tenantID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	result, err := svc.Generate(context.Background(), landlordID, period)
	require.NoError(t, err)
	require.Len(t, result.Bills, 1)
	assert.Empty(t, result.Skipped)

	bill := result.Bills[0]
	assert.Equal(t, "INV-2026-007", bill.InvoiceID)
	assert.Equal(t, int64(4000), bill.RentCents)
	assert.Equal(t, int64(5400), bill.AmountCents)
	assert.Equal(t, bill.RentCents+bill.Breakdown.Total(), bill.AmountCents)
	assert.Equal(t, billing.StatusPending, bill.Status)
	assert.Len(t, bill.Breakdown, 3)
}

func TestService_Generate_MeterReadingOverridesDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	tx := billing.NewMockTx(ctrl)
	svc := billing.NewService(repo)

	landlordID := uuid.New()
	period := billing.NewPeriod(2026, time.March)

	room := &billing.OccupiedRoom{
		RoomID:    uuid.New(),
		TenantID:  uuid.New(),
		RentCents: 4000,
		Utilities: property.Utilities{
			"electricity": {Kind: property.UtilityMetered, RateCents: 12, MeterID: "MTR-9"},
		},
	}

	repo.EXPECT().OccupiedRooms(gomock.Any(), landlordID).Return([]*billing.OccupiedRoom{room}, nil)
	repo.EXPECT().ConsumptionFor(gomock.Any(), "MTR-9", 2026, time.March).Return(int64(250), true, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().NextInvoiceSeq(gomock.Any(), landlordID, 2026).Return(int64(1), nil)
	tx.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Notify(gomock.Any(), room.TenantID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	result, err := svc.Generate(context.Background(), landlordID, period)
	require.NoError(t, err)
	require.Len(t, result.Bills, 1)

	assert.Equal(t, int64(4000+12*250), result.Bills[0].AmountCents)
	assert.Equal(t, int64(250), result.Bills[0].Breakdown[0].Consumption)
}

func TestService_Generate_ReportsSkippedTenants(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	txOK := billing.NewMockTx(ctrl)
	txDup := billing.NewMockTx(ctrl)
	svc := billing.NewService(repo)

	landlordID := uuid.New()
	period := billing.NewPeriod(2026, time.April)

	billed := &billing.OccupiedRoom{RoomID: uuid.New(), TenantID: uuid.New(), RentCents: 3000}
	dup := &billing.OccupiedRoom{RoomID: uuid.New(), TenantID: uuid.New(), RentCents: 3500}

	repo.EXPECT().OccupiedRooms(gomock.Any(), landlordID).Return([]*billing.OccupiedRoom{billed, dup}, nil)

	first := repo.EXPECT().Begin(gomock.Any()).Return(txOK, nil)
	txOK.EXPECT().NextInvoiceSeq(gomock.Any(), landlordID, 2026).Return(int64(1), nil)
	txOK.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(nil)
	txOK.EXPECT().Notify(gomock.Any(), billed.TenantID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	txOK.EXPECT().Commit().Return(nil)
	txOK.EXPECT().Rollback().Return(nil)

	repo.EXPECT().Begin(gomock.Any()).Return(txDup, nil).After(first)
	txDup.EXPECT().NextInvoiceSeq(gomock.Any(), landlordID, 2026).Return(int64(2), nil)
	txDup.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(billing.ErrDuplicateBill)
	txDup.EXPECT().Rollback().Return(nil)

	result, err := svc.Generate(context.Background(), landlordID, period)
	require.NoError(t, err)
	assert.Len(t, result.Bills, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, dup.TenantID, result.Skipped[0].TenantID)
	assert.Equal(t, dup.RoomID, result.Skipped[0].RoomID)
	assert.NotEmpty(t, result.Skipped[0].Reason)
}

func TestService_SubmitProof(t *testing.T) {
	tenantID := uuid.New()
	billID := uuid.New()

	type testCase struct {
		name      string
		tenantID  uuid.UUID
		setupMock func(repo *billing.MockRepository, tx *billing.MockTx)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			tenantID: tenantID,
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().GetBillForUpdate(gomock.Any(), billID).Return(&billing.Bill{
					ID:          billID,
					InvoiceID:   "INV-2026-001",
					TenantID:    tenantID,
					LandlordID:  uuid.New(),
					AmountCents: 5400,
					Status:      billing.StatusPending,
				}, nil)
				tx.EXPECT().SupersedeProofs(gomock.Any(), billID).Return(nil)
				tx.EXPECT().
					CreateProof(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, proof *billing.PaymentProof) error {
						proof.ID = uuid.New()
						return nil
					})
				tx.EXPECT().SetBillStatus(gomock.Any(), billID, billing.StatusProofSubmitted, gomock.Any(), nil).Return(nil)
				tx.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name:     "NotTheTenant",
			tenantID: uuid.New(),
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().GetBillForUpdate(gomock.Any(), billID).Return(&billing.Bill{
					ID:       billID,
					TenantID: tenantID,
					Status:   billing.StatusPending,
				}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: billing.ErrAccessDenied,
		},
		{
			name:     "AlreadyPaid",
			tenantID: tenantID,
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().GetBillForUpdate(gomock.Any(), billID).Return(&billing.Bill{
					ID:       billID,
					TenantID: tenantID,
					Status:   billing.StatusPaid,
				}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: billing.ErrBillPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := billing.NewMockRepository(ctrl)
			tx := billing.NewMockTx(ctrl)
			tt.setupMock(repo, tx)

			svc := billing.NewService(repo)
			proof, err := svc.SubmitProof(context.Background(), tt.tenantID, billID, billing.SubmitProofParams{
				ImageURL: "https://cdn.example.com/proof.jpg",
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, proof)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, proof)
			assert.Equal(t, billing.ProofPendingReview, proof.Status)
			assert.Equal(t, int64(5400), proof.AmountCents)
			assert.Equal(t, "INV-2026-001", proof.InvoiceID)
		})
	}
}

func TestService_ReviewProof_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	tx := billing.NewMockTx(ctrl)
	svc := billing.NewService(repo)

	landlordID := uuid.New()
	tenantID := uuid.New()
	proofID := uuid.New()
	billID := uuid.New()

	bill := &billing.Bill{
		ID:          billID,
		InvoiceID:   "INV-2026-003",
		TenantID:    tenantID,
		LandlordID:  landlordID,
		AmountCents: 5400,
		Status:      billing.StatusProofSubmitted,
		DueDate:     time.Now().Add(72 * time.Hour),
	}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetProofForUpdate(gomock.Any(), proofID).Return(&billing.PaymentProof{
		ID:          proofID,
		BillID:      billID,
		LandlordID:  landlordID,
		TenantID:    tenantID,
		AmountCents: 5400,
		Status:      billing.ProofPendingReview,
	}, nil)
	tx.EXPECT().GetBillForUpdate(gomock.Any(), billID).Return(bill, nil)
	tx.EXPECT().SetProofReview(gomock.Any(), proofID, billing.ProofApproved, "ok", gomock.Any()).Return(nil)
	tx.EXPECT().SetBillStatus(gomock.Any(), billID, billing.StatusPaid, nil, gomock.Any()).Return(nil)

	// Exactly one history record per approval.
	tx.EXPECT().
		CreateHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, h *billing.PaymentHistory) error {
			assert.Equal(t, billID, h.BillID)
			assert.Equal(t, int64(5400), h.AmountCents)
			assert.Equal(t, "proof", h.Method)
			assert.NotEmpty(t, h.ReceiptID)
			return nil
		}).
		Times(1)
	tx.EXPECT().Notify(gomock.Any(), tenantID, gomock.Any(), gomock.Any(), gomock.Any(), billID).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	proof, err := svc.ReviewProof(context.Background(), landlordID, proofID, billing.ReviewApprove, "ok")
	require.NoError(t, err)
	assert.Equal(t, billing.ProofApproved, proof.Status)
	assert.NotNil(t, proof.ReviewedAt)
}

func TestService_ReviewProof_Reject(t *testing.T) {
	type testCase struct {
		name       string
		dueDate    time.Time
		wantStatus billing.Status
	}

	tests := []testCase{
		{
			name:       "BeforeDueDateRevertsToPending",
			dueDate:    time.Now().Add(48 * time.Hour),
			wantStatus: billing.StatusPending,
		},
		{
			name:       "PastDueDateBecomesOverdue",
			dueDate:    time.Now().Add(-48 * time.Hour),
			wantStatus: billing.StatusOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := billing.NewMockRepository(ctrl)
			tx := billing.NewMockTx(ctrl)
			svc := billing.NewService(repo)

			landlordID := uuid.New()
			tenantID := uuid.New()
			proofID := uuid.New()
			billID := uuid.New()

			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tx.EXPECT().GetProofForUpdate(gomock.Any(), proofID).Return(&billing.PaymentProof{
				ID:         proofID,
				BillID:     billID,
				LandlordID: landlordID,
				TenantID:   tenantID,
				Status:     billing.ProofPendingReview,
			}, nil)
			tx.EXPECT().GetBillForUpdate(gomock.Any(), billID).Return(&billing.Bill{
				ID:          billID,
				TenantID:    tenantID,
				LandlordID:  landlordID,
				AmountCents: 5400,
				Status:      billing.StatusProofSubmitted,
				DueDate:     tt.dueDate,
			}, nil)
			tx.EXPECT().SetProofReview(gomock.Any(), proofID, billing.ProofRejected, "blurry photo", gomock.Any()).Return(nil)
			tx.EXPECT().SetBillStatus(gomock.Any(), billID, tt.wantStatus, nil, nil).Return(nil)
			tx.EXPECT().Notify(gomock.Any(), tenantID, gomock.Any(), gomock.Any(), gomock.Any(), billID).Return(nil)
			tx.EXPECT().Commit().Return(nil)
			tx.EXPECT().Rollback().Return(nil)

			proof, err := svc.ReviewProof(context.Background(), landlordID, proofID, billing.ReviewReject, "blurry photo")
			require.NoError(t, err)
			assert.Equal(t, billing.ProofRejected, proof.Status)
			assert.Equal(t, "blurry photo", proof.ReviewNote)
		})
	}
}

func TestService_ReviewProof_Guards(t *testing.T) {
	landlordID := uuid.New()
	proofID := uuid.New()

	type testCase struct {
		name      string
		action    billing.ReviewAction
		setupMock func(repo *billing.MockRepository, tx *billing.MockTx)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "AlreadyReviewed",
			action: billing.ReviewApprove,
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().GetProofForUpdate(gomock.Any(), proofID).Return(&billing.PaymentProof{
					ID:         proofID,
					LandlordID: landlordID,
					Status:     billing.ProofApproved,
				}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: billing.ErrProofReviewed,
		},
		{
			name:   "NotTheLandlord",
			action: billing.ReviewReject,
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().GetProofForUpdate(gomock.Any(), proofID).Return(&billing.PaymentProof{
					ID:         proofID,
					LandlordID: uuid.New(),
					Status:     billing.ProofPendingReview,
				}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: billing.ErrAccessDenied,
		},
		{
			name:      "UnknownAction",
			action:    billing.ReviewAction("maybe"),
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := billing.NewMockRepository(ctrl)
			tx := billing.NewMockTx(ctrl)
			tt.setupMock(repo, tx)

			svc := billing.NewService(repo)
			proof, err := svc.ReviewProof(context.Background(), landlordID, proofID, tt.action, "")

			assert.Error(t, err)
			assert.Nil(t, proof)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestService_MarkPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	tx := billing.NewMockTx(ctrl)
	svc := billing.NewService(repo)

	landlordID := uuid.New()
	billID := uuid.New()

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetBillForUpdate(gomock.Any(), billID).Return(&billing.Bill{
		ID:          billID,
		InvoiceID:   "INV-2026-009",
		TenantID:    uuid.New(),
		LandlordID:  landlordID,
		AmountCents: 3000,
		Status:      billing.StatusOverdue,
	}, nil)
	tx.EXPECT().SupersedeProofs(gomock.Any(), billID).Return(nil)
	tx.EXPECT().SetBillStatus(gomock.Any(), billID, billing.StatusPaid, nil, gomock.Any()).Return(nil)
	tx.EXPECT().
		CreateHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, h *billing.PaymentHistory) error {
			assert.Equal(t, "manual", h.Method)
			return nil
		})
	tx.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), billID).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	bill, err := svc.MarkPaid(context.Background(), landlordID, billID, "")
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPaid, bill.Status)
	assert.NotNil(t, bill.PaidAt)
	assert.Nil(t, bill.ProofID)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	svc := billing.NewService(repo)

	landlordID := uuid.New()
	billID := uuid.New()

	repo.EXPECT().GetBill(gomock.Any(), billID).Return(&billing.Bill{
		ID:         billID,
		LandlordID: uuid.New(),
	}, nil)

	err := svc.Delete(context.Background(), landlordID, billID)
	assert.ErrorIs(t, err, billing.ErrAccessDenied)
}

func TestService_MarkOverdueBills(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	svc := billing.NewService(repo)

	repo.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return(int64(3), nil)

	n, err := svc.MarkOverdueBills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestService_RecordReadings_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	svc := billing.NewService(repo)

	err := svc.RecordReadings(context.Background(), nil)
	assert.NoError(t, err)
}

func TestService_Generate_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	svc := billing.NewService(repo)

	repo.EXPECT().OccupiedRooms(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	result, err := svc.Generate(context.Background(), uuid.New(), billing.NewPeriod(2026, time.May))
	assert.Error(t, err)
	assert.Nil(t, result)
}
