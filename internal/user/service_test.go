package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/boardinghub/boardinghub/internal/auth"
	"github.com/boardinghub/boardinghub/internal/user"
)

func testJWT() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		params    user.RegisterParams
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: user.RegisterParams{
				Email:    "  Sam@Example.COM ",
				Password: "hunter2boarding",
				Role:     user.RoleTenant,
				Name:     "Sam",
			},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						u.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "EmailTaken",
			params: user.RegisterParams{
				Email:    "sam@example.com",
				Password: "hunter2boarding",
				Role:     user.RoleLandlord,
			},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(user.ErrEmailTaken)
			},
			wantErr: user.ErrEmailTaken,
		},
		{
			name: "UnknownRole",
			params: user.RegisterParams{
				Email:    "sam@example.com",
				Password: "hunter2boarding",
				Role:     user.Role("admin"),
			},
			setupMock: func(m *user.MockRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo, testJWT())
			got, err := svc.Register(context.Background(), tt.params)

			if tt.name == "UnknownRole" {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "sam@example.com", got.Email)
			assert.NotEqual(t, "hunter2boarding", got.PasswordHash)
		})
	}
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2boarding"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{
		ID:           uuid.New(),
		Email:        "sam@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleTenant,
	}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "Sam@Example.com",
			password: "hunter2boarding",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "sam@example.com").Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "sam@example.com",
			password: "nope",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "sam@example.com").Return(stored, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "ghost@example.com",
			password: "hunter2boarding",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo, testJWT())
			got, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, stored.ID, got.ID)
		})
	}
}

func TestService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo, testJWT())

	id := uuid.New()

	repo.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{
		ID:   id,
		Name: "Sam",
	}, nil)
	repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

	newPhone := "555-0101"
	got, err := svc.UpdateProfile(context.Background(), id, user.UpdateProfileParams{
		Phone: &newPhone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.Name)
	assert.Equal(t, "555-0101", got.Phone)
}
