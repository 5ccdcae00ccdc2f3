package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"raceplanner/internal/config"
	"raceplanner/internal/database"
	"raceplanner/internal/models"
	"raceplanner/internal/repository"
	"raceplanner/internal/storage"
)

// Claims is the JWT payload. ID carries the jti used for revocation.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req models.SignUpRequest) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Logout(ctx context.Context, claims *Claims) error
	Authenticate(ctx context.Context, tokenString string) (*models.User, *Claims, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions storage.SessionStore
	cfg      *config.Config
	now      func() time.Time
}

// NewAuthService returns the token service. sessions may be nil, in which case logout cannot revoke tokens.
func NewAuthService(userRepo repository.UserRepository, sessions storage.SessionStore, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req models.SignUpRequest) (*models.User, string, error) {
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) || errors.Is(err, repository.ErrInvalidPassword) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("authentication failed: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout revokes the token until its own expiry.
func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	if s.sessions == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, *Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, nil, err
	}

	if s.sessions != nil && claims.ID != "" {
		revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, nil, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
		}
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: unknown user", ErrUnauthenticated)
		}
		return nil, nil, err
	}

	return user, claims, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	return claims, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
