package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/security"
)

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) GenerateAccessToken(userID int32, email string, role domain.UserRole) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func (m *mockTokens) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "rita@example.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "rita@example.com" && u.Role == domain.RoleRenter && u.IsActive
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 1
		}).Return(nil)
		tokens.On("GenerateAccessToken", int32(1), "rita@example.com", domain.RoleRenter).Return("token", nil)

		user, token, err := svc.Signup(ctx, "Rita", "rita@example.com", "hunter2hunter2", domain.RoleRenter)
		assert.NoError(t, err)
		assert.Equal(t, "token", token)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	})

	t.Run("RejectsDuplicateEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "rita@example.com").Return(&domain.User{ID: 1}, nil)

		_, _, err := svc.Signup(ctx, "Rita", "rita@example.com", "hunter2hunter2", domain.RoleRenter)
		assert.ErrorIs(t, err, ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("AdminRoleFallsBackToRenter", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "eve@example.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleRenter
		})).Return(nil)
		tokens.On("GenerateAccessToken", mock.Anything, mock.Anything, domain.RoleRenter).Return("token", nil)

		_, _, err := svc.Signup(ctx, "Eve", "eve@example.com", "correct horse", domain.RoleAdmin)
		assert.NoError(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)

	activeUser := func() *domain.User {
		return &domain.User{
			ID:           1,
			Email:        "rita@example.com",
			PasswordHash: string(hash),
			Role:         domain.RoleRenter,
			IsActive:     true,
		}
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "rita@example.com").Return(activeUser(), nil)
		tokens.On("GenerateAccessToken", int32(1), "rita@example.com", domain.RoleRenter).Return("token", nil)

		_, token, err := svc.Login(ctx, "rita@example.com", "hunter2hunter2")
		assert.NoError(t, err)
		assert.Equal(t, "token", token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "rita@example.com").Return(activeUser(), nil)

		_, _, err := svc.Login(ctx, "rita@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DisabledAccount", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		disabled := activeUser()
		disabled.IsActive = false
		userRepo.On("GetByEmail", ctx, "rita@example.com").Return(disabled, nil)

		_, _, err := svc.Login(ctx, "rita@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("PassesFilterThrough", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		filter := domain.UserFilter{Role: "OWNER", Search: "rita"}
		userRepo.On("List", ctx, filter).Return([]domain.User{
			{ID: 1, Name: "Rita", Email: "rita@example.com", Role: domain.RoleOwner},
		}, nil)

		users, err := svc.ListUsers(ctx, filter)
		assert.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Equal(t, "Rita", users[0].Name)
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Name: "Omar"}, nil)

		user, err := svc.GetUser(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, "Omar", user.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(mockTokens)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByID", ctx, int32(7)).Return(nil, sql.ErrNoRows)

		_, err := svc.GetUser(ctx, 7)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
