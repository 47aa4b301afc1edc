package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Marga-Ghale/ora-boards-backend/internal/config"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// Auth Service
// ============================================

type RegisterRequest struct {
	Username string
	Email    string
	Password string
	FullName string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*repository.User, string, string, error)
	Login(ctx context.Context, email, password string) (*repository.User, string, string, error)
	// Refresh issues a new access token for a stored, unexpired refresh token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID string) (*repository.User, error)
	ValidateToken(token string) (*jwt.Token, error)
	GetUserIDFromToken(token *jwt.Token) (string, error)
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type authService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) AuthService {
	return &authService{cfg: cfg, userRepo: userRepo, now: time.Now}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*repository.User, string, string, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	switch {
	case username == "":
		return nil, "", "", invalid("username is required")
	case len(username) > 50 || strings.IndexFunc(username, unicode.IsSpace) >= 0:
		return nil, "", "", invalid("username must be at most 50 characters without spaces")
	case email == "":
		return nil, "", "", invalid("email is required")
	case fullName == "":
		return nil, "", "", invalid("fullName is required")
	case len(req.Password) < types.MinPassword:
		return nil, "", "", invalid("password must be at least %d characters", types.MinPassword)
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return nil, "", "", err
	} else if existing != nil {
		return nil, "", "", fmt.Errorf("email %w", ErrUserExists)
	}
	if existing, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		return nil, "", "", err
	} else if existing != nil {
		return nil, "", "", fmt.Errorf("username %w", ErrUserExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &repository.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		Initials:     types.Initials(fullName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", "", ErrUserExists
		}
		return nil, "", "", fmt.Errorf("failed to create user: %w", err)
	}

	accessToken, refreshToken, err := s.generateTokens(ctx, user.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}
	return user, accessToken, refreshToken, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*repository.User, string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", "", err
	}
	if user == nil || !user.IsActive {
		return nil, "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, "", "", err
	}
	now := s.now()
	user.LastLoginAt = &now

	accessToken, refreshToken, err := s.generateTokens(ctx, user.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}
	return user, accessToken, refreshToken, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrInvalidToken
	}
	rt, err := s.userRepo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if rt == nil {
		return "", ErrInvalidToken
	}
	if s.now().After(rt.ExpiresAt) {
		if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return "", err
		}
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, rt.UserID)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive {
		return "", ErrInvalidToken
	}
	return s.accessToken(rt.UserID)
}

// Logout forgets one refresh token. Unknown tokens are not an error.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	err := s.userRepo.DeleteRefreshToken(ctx, refreshToken)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

func (s *authService) Me(ctx context.Context, userID string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user")
	}
	return user, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
}

func (s *authService) GetUserIDFromToken(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (s *authService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.userRepo.DeleteExpiredRefreshTokens(ctx, s.now())
}

func (s *authService) accessToken(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(s.cfg.AccessTokenTTL()).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) generateTokens(ctx context.Context, userID string) (string, string, error) {
	accessToken, err := s.accessToken(userID)
	if err != nil {
		return "", "", err
	}

	rt := &repository.RefreshToken{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.cfg.RefreshTokenTTL()),
	}
	if err := s.userRepo.SaveRefreshToken(ctx, rt); err != nil {
		return "", "", err
	}
	return accessToken, rt.Token, nil
}
