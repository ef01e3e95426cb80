package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/store"
	"github.com/MKhiriev/evently/internal/validators"
	"github.com/MKhiriev/evently/models"
)

const userDomain = "user"

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		logger:         logger,
	}
}

// UpdateUser applies the non-nil fields of req to the account and returns
// the updated profile. A changed e-mail keeps the verified flag as is.
func (u *userService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.Profile, error) {
	log := logger.FromContext(ctx)

	if err := u.validator.Validate(ctx, req); err != nil {
		return models.Profile{}, newValidationError(err)
	}

	user, err := u.userRepository.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("user_id", id).Msg("error finding user")
		}
		return models.Profile{}, mapStoreError(userDomain, err)
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = models.NormalizeEmail(*req.Email)
	}

	updated, err := u.userRepository.Update(ctx, user)
	if err != nil {
		log.Err(err).Str("user_id", id).Msg("error updating user")
		return models.Profile{}, mapStoreError(userDomain, err)
	}

	return updated.Profile(), nil
}
