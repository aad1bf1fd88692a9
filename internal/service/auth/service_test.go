package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notice-board/internal/config"
	"notice-board/internal/domain"
	"notice-board/internal/mocks"
	"notice-board/internal/service/auth"
)

func newAuthService() (auth.Service, *mocks.UserRepository) {
	userRepo := new(mocks.UserRepository)
	cfg := &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
	return auth.NewService(userRepo, cfg), userRepo
}

func validRegisterInput() domain.RegisterInput {
	return domain.RegisterInput{
		UniversityID: "2021/ICT/075",
		Name:         "Jane Perera",
		Email:        "Jane.Perera@uni.edu",
		Password:     "secret",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success Defaults Role And Issues Token", func(t *testing.T) {
		svc, userRepo := newAuthService()
		input := validRegisterInput()

		userRepo.On("ExistsByUniversityID", ctx, input.UniversityID).Return(false, nil).Once()
		userRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		user, token, err := svc.Register(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, user.Role)
		assert.Equal(t, "jane.perera@uni.edu", user.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, input.UniversityID, claims.UniversityID)
		assert.Equal(t, domain.RoleStudent, claims.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("Collects All Violations", func(t *testing.T) {
		svc, userRepo := newAuthService()

		_, _, err := svc.Register(ctx, domain.RegisterInput{
			UniversityID: "not-an-id",
			Email:        "not-an-email",
			Password:     "ab",
			Role:         "superuser",
		})

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Len(t, vErr.Violations, 5)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate University ID", func(t *testing.T) {
		svc, userRepo := newAuthService()
		input := validRegisterInput()

		userRepo.On("ExistsByUniversityID", ctx, input.UniversityID).Return(true, nil).Once()

		_, _, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrUniversityIDExists)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc, userRepo := newAuthService()
		input := validRegisterInput()

		userRepo.On("ExistsByUniversityID", ctx, input.UniversityID).Return(false, nil).Once()
		userRepo.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		_, _, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrEmailExists)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &domain.User{
		ID:           uuid.New(),
		UniversityID: "2021/ICT/075",
		Name:         "Jane Perera",
		Email:        "jane.perera@uni.edu",
		PasswordHash: string(hash),
		Role:         domain.RoleModerator,
	}

	t.Run("Success By University ID", func(t *testing.T) {
		svc, userRepo := newAuthService()

		userRepo.On("GetByIdentifier", ctx, "2021/ICT/075").Return(storedUser, nil).Once()

		user, token, err := svc.Login(ctx, domain.LoginInput{UserID: "2021/ICT/075", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, storedUser.ID, user.ID)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleModerator, claims.Role)
	})

	t.Run("Success By Email", func(t *testing.T) {
		svc, userRepo := newAuthService()

		userRepo.On("GetByIdentifier", ctx, "jane.perera@uni.edu").Return(storedUser, nil).Once()

		user, _, err := svc.Login(ctx, domain.LoginInput{UserID: "jane.perera@uni.edu", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, storedUser.ID, user.ID)
	})

	t.Run("Unknown Identifier", func(t *testing.T) {
		svc, userRepo := newAuthService()

		userRepo.On("GetByIdentifier", ctx, "2099/XYZ/999").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{UserID: "2099/XYZ/999", Password: "secret"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, userRepo := newAuthService()

		userRepo.On("GetByIdentifier", ctx, "2021/ICT/075").Return(storedUser, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{UserID: "2021/ICT/075", Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc, userRepo := newAuthService()

		_, _, err := svc.Login(ctx, domain.LoginInput{})

		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		userRepo.AssertNotCalled(t, "GetByIdentifier", mock.Anything, mock.Anything)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	t.Run("Garbage Token", func(t *testing.T) {
		svc, _ := newAuthService()

		_, err := svc.ValidateToken("not.a.token")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		issuer := auth.NewService(userRepo, &config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
		verifier, _ := newAuthService()

		ctx := context.Background()
		input := validRegisterInput()
		userRepo.On("ExistsByUniversityID", ctx, input.UniversityID).Return(false, nil).Once()
		userRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		_, token, err := issuer.Register(ctx, input)
		require.NoError(t, err)

		_, err = verifier.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
