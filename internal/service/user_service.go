package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/repository"
	"github.com/sefazor/eventos-backend/pkg/bcrypt"
	"github.com/sefazor/eventos-backend/pkg/utils"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo   *repository.UserRepository
	validator  *utils.Validator
	log        *zap.Logger
	bcryptCost int
}

func NewUserService(userRepo *repository.UserRepository, validator *utils.Validator, log *zap.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		validator:  validator,
		log:        log.Named("user"),
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *UserService) GetProfile(ctx context.Context, identity *models.Identity) (*models.User, error) {
	if !identity.Authenticated() {
		return nil, models.ErrAuthenticationRequired
	}
	return s.userRepo.GetByID(identity.UserID)
}

// UpdateProfile saves the profile fields and, when a new password is given, the password.
// The caller's session stays valid after a password change.
func (s *UserService) UpdateProfile(ctx context.Context, identity *models.Identity, req models.UpdateProfileRequest) (*models.User, error) {
	if !identity.Authenticated() {
		return nil, models.ErrAuthenticationRequired
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(identity.UserID)
	if err != nil {
		return nil, err
	}

	var newHash string
	if req.NewPassword != "" {
		if err := bcrypt.ComparePassword(user.Password, req.CurrentPassword); err != nil {
			if errors.Is(err, bcrypt.ErrMismatch) {
				return nil, models.NewValidationError("current_password", "validation.password_incorrect")
			}
			return nil, err
		}
		newHash, err = bcrypt.HashPasswordCost(req.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, err
		}
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	if newHash != "" {
		user.Password = newHash
	}
	if err := s.userRepo.UpdateProfile(user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if newHash != "" {
		s.log.Info("password changed", zap.Uint("user_id", user.ID))
	}

	return user, nil
}

// CreateAdmin creates a user with the admin role. Used by the admin bootstrap command.
func (s *UserService) CreateAdmin(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.UsernameExists(req.Username)
	if err != nil {
		return nil, err
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
		Role:      models.RoleAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return user, nil
}

// SetRole changes the role of username.
func (s *UserService) SetRole(ctx context.Context, username string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetRole(user.ID, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}
