package repositories

import "tugas/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
	// DeleteWithTasks removes the user together with all owned tasks and
	// issued tokens, atomically where the backing store supports it.
	DeleteWithTasks(user *models.User) error

	AddToken(token *models.AuthToken) error
	FindToken(userID, token string) (*models.AuthToken, error)
	RemoveToken(userID, token string) error
	RemoveAllTokens(userID string) error
}
