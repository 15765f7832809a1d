package services

import (
	"fmt"

	"tugas/internal/models"
	"tugas/internal/repositories"
	"tugas/pkg/images"

	"github.com/go-playground/validator/v10"
)

// UserService handles business logic for profiles, avatars and account
// deletion.
type UserService struct {
	userRepo repositories.UserRepository
	auth     *AuthService
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, auth *AuthService) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		validate: validator.New(),
	}
}

// UpdateProfile applies a partial update restricted to name, email, age and
// password. Any other key rejects the whole update. A new password runs
// through the same validate-and-hash pipeline as registration.
func (s *UserService) UpdateProfile(user *models.User, updates map[string]interface{}) error {
	for key, value := range updates {
		switch key {
		case "name":
			name, ok := value.(string)
			if !ok {
				return &ValidationError{Fields: map[string]string{"name": "must be a string"}}
			}
			user.Name = name
		case "email":
			email, ok := value.(string)
			if !ok {
				return &ValidationError{Fields: map[string]string{"email": "must be a string"}}
			}
			email = NormalizeEmail(email)
			if email != user.Email {
				if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
					return fmt.Errorf("email '%s': %w", email, ErrEmailTaken)
				}
			}
			user.Email = email
		case "age":
			// JSON numbers decode as float64.
			age, ok := value.(float64)
			if !ok || age != float64(int(age)) {
				return &ValidationError{Fields: map[string]string{"age": "must be an integer"}}
			}
			user.Age = int(age)
		case "password":
			raw, ok := value.(string)
			if !ok {
				return &ValidationError{Fields: map[string]string{"password": "must be a string"}}
			}
			if err := s.auth.SetPassword(user, raw); err != nil {
				return err
			}
		default:
			return fmt.Errorf("field '%s': %w", key, ErrInvalidUpdate)
		}
	}

	if err := s.validate.Struct(user); err != nil {
		return asValidationError(err)
	}
	return s.userRepo.Update(user)
}

// DeleteAccount removes the user and everything they own.
func (s *UserService) DeleteAccount(user *models.User) error {
	return s.userRepo.DeleteWithTasks(user)
}

// SetAvatar re-encodes the uploaded image to the normalized avatar form and
// stores it on the user. A payload that does not decode as an image is a
// validation failure; only the store itself can fail unexpectedly.
func (s *UserService) SetAvatar(user *models.User, data []byte) error {
	normalized, err := images.NormalizeAvatar(data)
	if err != nil {
		return &ValidationError{Fields: map[string]string{"avatar": "must be a valid jpeg or png image"}}
	}
	user.Avatar = normalized
	return s.userRepo.Update(user)
}

// ClearAvatar removes the stored avatar.
func (s *UserService) ClearAvatar(user *models.User) error {
	user.Avatar = nil
	return s.userRepo.Update(user)
}

// GetAvatar returns the stored avatar PNG for any user. Missing user and
// missing avatar are the same failure to the caller.
func (s *UserService) GetAvatar(userID string) ([]byte, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if len(user.Avatar) == 0 {
		return nil, fmt.Errorf("avatar for user %s: %w", userID, repositories.ErrNotFound)
	}
	return user.Avatar, nil
}
