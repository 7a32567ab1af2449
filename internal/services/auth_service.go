package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/task-tracker-api/internal/auth"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/reconcile"
	"github.com/yukikurage/task-tracker-api/internal/repository"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	users    *UserService
	userRepo repository.UserRepository
	hasher   reconcile.PasswordHasher
	tokens   *auth.TokenManager
	revoked  auth.RevocationStore
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users *UserService,
	userRepo repository.UserRepository,
	hasher reconcile.PasswordHasher,
	tokens *auth.TokenManager,
	revoked auth.RevocationStore,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		revoked:  revoked,
		logger:   logger,
	}
}

// SignInResult is an issued access token.
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// SignUp registers a new user.
func (s *AuthService) SignUp(ctx context.Context, input CreateUserInput) (*models.User, error) {
	return s.users.Create(ctx, input)
}

// SignIn verifies credentials and account status and issues a token.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.BadCredentials("")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Matches(user.PasswordHash, password) {
		return nil, apierrors.BadCredentials("")
	}
	if err := checkAccountStatus(user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User signed in", zap.String("user_id", user.ID.String()))
	return &SignInResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func checkAccountStatus(user *models.User) error {
	switch {
	case user.Locked:
		return apierrors.Locked()
	case !user.Enabled:
		return apierrors.Disabled()
	case user.Expired:
		return apierrors.AccountExpired()
	case user.CredentialsExpired:
		return apierrors.CredentialsExpired()
	}
	return nil
}

// Authenticate validates a bearer token and returns its subject.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, *auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return uuid.Nil, nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return uuid.Nil, nil, apierrors.TokenRevoked()
	}

	return uuid.MustParse(claims.UserID), claims, nil
}

// SignOut revokes the token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, claims *auth.Claims) error {
	if err := s.revoked.Revoke(ctx, claims.TokenID(), claims.Expiry()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.logger.Info("User signed out", zap.String("user_id", claims.UserID))
	return nil
}
