package repositories

import (
	"tugas/internal/models"
)

// TaskListOptions narrows and orders a task listing. Nil pointer fields mean
// "no bound": callers that fail to parse a limit or skip leave them nil
// rather than erroring, matching the API's permissive query handling.
type TaskListOptions struct {
	Completed *bool
	SortField string // column name from the allowed sort set; empty for store order
	SortDesc  bool
	Limit     *int
	Skip      *int
}

// TaskRepository defines the interface for task data access. Every read and
// write is scoped to an owner; there is no way to reach another user's tasks.
type TaskRepository interface {
	Create(task *models.Task) error
	ListByOwner(ownerID string, opts TaskListOptions) ([]models.Task, error)
	GetByOwnerAndID(ownerID, id string) (*models.Task, error)
	Update(task *models.Task) error
	DeleteByOwnerAndID(ownerID, id string) (*models.Task, error)
}
