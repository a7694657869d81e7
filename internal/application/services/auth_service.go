package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/config"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// Claims represents the JWT claims carried by an access token.
type Claims struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login, profile management and the
// issuing/verification of bearer tokens.
type AuthService struct {
	userRepo  ports.UserRepository
	jwtConfig config.JWTConfig
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// Register creates a new user account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	role := entities.UserRole(req.Role)
	if !role.IsValid() {
		return nil, entities.NewValidationError("invalid role value")
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, entities.ErrEmailExists
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		ID:              uuid.New(),
		Email:           req.Email,
		PasswordHash:    hashedPassword,
		FullName:        req.Name,
		Role:            role,
		IsActive:        true,
		ThemePreference: entities.ThemeSystem,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailExists) {
			return nil, entities.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Infow("User registered", "user_id", user.ID, "email", user.Email)

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &ports.AuthResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.FullName,
		Role:  user.Role,
		Token: token,
	}, nil
}

// Login authenticates a user and returns a fresh token. Unknown emails, bad
// passwords and inactive accounts all surface as ErrInvalidCredentials so
// the response does not reveal which check failed.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			s.logger.Warnw("Login attempt with non-existent email", "email", req.Email)
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsActive {
		s.logger.Warnw("Login attempt with inactive account", "email", req.Email, "user_id", user.ID)
		return nil, entities.ErrInvalidCredentials
	}

	if !ComparePassword(req.Password, user.PasswordHash) {
		s.logger.Warnw("Login attempt with invalid password", "email", req.Email, "user_id", user.ID)
		return nil, entities.ErrInvalidCredentials
	}

	s.logger.Infow("User logged in", "user_id", user.ID, "email", user.Email)

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &ports.AuthResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.FullName,
		Role:  user.Role,
		Token: token,
	}, nil
}

// GetProfile returns the user record for a resolved identity.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the supplied profile fields. At least one field must
// be present; email changes are subject to the same uniqueness rule as
// registration.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req ports.UpdateProfileRequest) (*entities.User, error) {
	if req.Name == nil && req.Email == nil && req.ThemePreference == nil {
		return nil, entities.NewValidationError("at least one field to update is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.FullName = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.ThemePreference != nil {
		theme := entities.ThemePreference(*req.ThemePreference)
		if !theme.IsValid() {
			return nil, entities.NewValidationError("invalid theme preference")
		}
		user.ThemePreference = theme
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailExists) {
			return nil, entities.ErrEmailExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Infow("Profile updated", "user_id", user.ID)

	return user, nil
}

// ValidateToken verifies a bearer token and returns the identity it carries.
// Verification is deterministic: signature, structure and the exp claim are
// checked, nothing else.
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, entities.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	return &ports.Claims{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (s *AuthService) issueToken(user *entities.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}
