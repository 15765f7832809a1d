package repositories

import (
	"fmt"
	"tugas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// Update persists changes to an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s for update: %w", user.ID, ErrNotFound)
	}
	return nil
}

// DeleteWithTasks removes the user, their tasks and their tokens in a single
// transaction so a crash cannot leave orphaned tasks behind. The user and
// token rows are deleted unscoped: a soft-deleted row would keep the email
// held in the unique index and block re-registration.
func (r *GORMUserRepository) DeleteWithTasks(user *models.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Task{}, "owner_id = ?", user.ID).Error; err != nil {
			return fmt.Errorf("failed to delete tasks for user %s: %w", user.ID, err)
		}
		if err := tx.Unscoped().Delete(&models.AuthToken{}, "user_id = ?", user.ID).Error; err != nil {
			return fmt.Errorf("failed to delete tokens for user %s: %w", user.ID, err)
		}
		res := tx.Unscoped().Delete(&models.User{}, "id = ?", user.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user %s: %w", user.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user with ID %s for deletion: %w", user.ID, ErrNotFound)
		}
		return nil
	})
	return err
}

// AddToken records a newly issued session token.
func (r *GORMUserRepository) AddToken(token *models.AuthToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// FindToken looks up a stored session token for the given user.
func (r *GORMUserRepository) FindToken(userID, token string) (*models.AuthToken, error) {
	var record models.AuthToken
	if err := r.db.First(&record, "user_id = ? AND token = ?", userID, token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("token for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up token for user %s: %w", userID, err)
	}
	return &record, nil
}

// RemoveToken deletes exactly the matching session token.
func (r *GORMUserRepository) RemoveToken(userID, token string) error {
	res := r.db.Delete(&models.AuthToken{}, "user_id = ? AND token = ?", userID, token)
	if res.Error != nil {
		return fmt.Errorf("failed to remove token for user %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("token for user %s for removal: %w", userID, ErrNotFound)
	}
	return nil
}

// RemoveAllTokens revokes every session of the given user.
func (r *GORMUserRepository) RemoveAllTokens(userID string) error {
	if err := r.db.Delete(&models.AuthToken{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to remove tokens for user %s: %w", userID, err)
	}
	return nil
}
