package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"notice-board/internal/config"
	"notice-board/internal/domain"
	"notice-board/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUniversityIDExists = errors.New("university ID already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, string, error)
	ValidateToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type Claims struct {
	UserID       uuid.UUID       `json:"user_id"`
	UniversityID string          `json:"university_id"`
	Role         domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Service {
	return &service{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error) {
	role := domain.UserRole(input.Role)
	if input.Role == "" {
		role = domain.RoleStudent
	}

	var violations []string
	if input.UniversityID == "" {
		violations = append(violations, "University ID is required")
	} else if !domain.IsValidUniversityID(input.UniversityID) {
		violations = append(violations, "University ID must follow the format Year/Course/RegNo (e.g., 2021/ICT/075)")
	}
	if input.Name == "" {
		violations = append(violations, "Name is required")
	}
	if input.Email == "" {
		violations = append(violations, "Email is required")
	} else if !strings.Contains(input.Email, "@") {
		violations = append(violations, "Email must be a valid address")
	}
	if input.Password == "" {
		violations = append(violations, "Password is required")
	} else if len(input.Password) < 3 {
		violations = append(violations, "Password must be at least 3 characters")
	}
	if !role.IsValid() {
		violations = append(violations, "Role must be admin, moderator, or student")
	}
	if len(violations) > 0 {
		return nil, "", &domain.ValidationError{Violations: violations}
	}

	exists, err := s.userRepo.ExistsByUniversityID(ctx, input.UniversityID)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUniversityIDExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.New(),
		UniversityID: strings.TrimSpace(input.UniversityID),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, string, error) {
	if input.UserID == "" || input.Password == "" {
		return nil, "", &domain.ValidationError{Violations: []string{"User ID and password are required"}}
	}

	user, err := s.userRepo.GetByIdentifier(ctx, strings.TrimSpace(input.UserID))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) generateToken(user *domain.User) (string, error) {
	claims := &Claims{
		UserID:       user.ID,
		UniversityID: user.UniversityID,
		Role:         user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
