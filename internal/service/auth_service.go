package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sefazor/eventos-backend/internal/metrics"
	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/repository"
	"github.com/sefazor/eventos-backend/internal/session"
	"github.com/sefazor/eventos-backend/pkg/bcrypt"
	jwtPkg "github.com/sefazor/eventos-backend/pkg/jwt"
	"github.com/sefazor/eventos-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	tokens     *jwtPkg.Manager
	sessions   session.Store
	mailer     Mailer
	validator  *utils.Validator
	log        *zap.Logger
	bcryptCost int
}

func NewAuthService(
	userRepo *repository.UserRepository,
	tokens *jwtPkg.Manager,
	sessions session.Store,
	mailer Mailer,
	validator *utils.Validator,
	log *zap.Logger,
) *AuthService {
	if mailer == nil {
		mailer = NoopMailer{}
	}
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		sessions:   sessions,
		mailer:     mailer,
		validator:  validator,
		log:        log.Named("auth"),
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates a normal user and logs them in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.UsernameExists(req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, models.NewValidationError("username", "validation.username_taken")
	}

	hashedPassword, err := bcrypt.HashPasswordCost(req.Password1, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashedPassword,
		Role:      models.RoleNormal,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewValidationError("username", "validation.username_taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, _, err := s.tokens.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	sendAsync(s.log, "welcome", func() error { return s.mailer.SendWelcomeEmail(user) })

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	if errors.Is(err, models.ErrNotFound) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, bcrypt.ErrMismatch) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	token, _, err := s.tokens.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

// Logout revokes the session token of identity until it would have expired.
func (s *AuthService) Logout(ctx context.Context, identity *models.Identity) error {
	if !identity.Authenticated() {
		return models.ErrAuthenticationRequired
	}
	if err := s.sessions.Revoke(ctx, identity.TokenID, time.Until(identity.ExpiresAt)); err != nil {
		return err
	}
	s.log.Info("user logged out", zap.Uint("user_id", identity.UserID))
	return nil
}

// Authenticate resolves a bearer token to the current identity of its user.
// The role is read from the database so promotions apply to existing sessions.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, models.ErrAuthenticationRequired
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, models.ErrAuthenticationRequired
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrAuthenticationRequired
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	identity := user.Identity()
	identity.TokenID = claims.ID
	identity.ExpiresAt = claims.ExpiresAt.Time
	return identity, nil
}
