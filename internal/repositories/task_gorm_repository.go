package repositories

import (
	"fmt"
	"tugas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTaskRepository is a GORM implementation of TaskRepository.
type GORMTaskRepository struct {
	db *gorm.DB
}

// NewGORMTaskRepository creates a new instance of GORMTaskRepository.
func NewGORMTaskRepository(db *gorm.DB) *GORMTaskRepository {
	return &GORMTaskRepository{
		db: db,
	}
}

// Create creates a new task in the database.
func (r *GORMTaskRepository) Create(task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListByOwner retrieves the owner's tasks, applying the optional completed
// filter, sort order and limit/skip bounds.
func (r *GORMTaskRepository) ListByOwner(ownerID string, opts TaskListOptions) ([]models.Task, error) {
	q := r.db.Where("owner_id = ?", ownerID)

	if opts.Completed != nil {
		q = q.Where("completed = ?", *opts.Completed)
	}
	if opts.SortField != "" {
		dir := "asc"
		if opts.SortDesc {
			dir = "desc"
		}
		// SortField comes from a fixed whitelist, never from raw user input.
		q = q.Order(fmt.Sprintf("%s %s", opts.SortField, dir))
	}
	if opts.Skip != nil {
		q = q.Offset(*opts.Skip)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks for owner %s: %w", ownerID, err)
	}
	return tasks, nil
}

// GetByOwnerAndID retrieves a single task, only if the given owner owns it.
func (r *GORMTaskRepository) GetByOwnerAndID(ownerID, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("task with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task by ID %s: %w", id, err)
	}
	return &task, nil
}

// Update updates an existing task in the database.
func (r *GORMTaskRepository) Update(task *models.Task) error {
	res := r.db.Save(task)
	if res.Error != nil {
		return fmt.Errorf("failed to update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task with ID %s for update: %w", task.ID, ErrNotFound)
	}
	return nil
}

// DeleteByOwnerAndID deletes the task and returns the deleted record, so the
// handler can echo it back the way the API promises.
func (r *GORMTaskRepository) DeleteByOwnerAndID(ownerID, id string) (*models.Task, error) {
	task, err := r.GetByOwnerAndID(ownerID, id)
	if err != nil {
		return nil, err
	}
	res := r.db.Delete(&models.Task{}, "id = ? AND owner_id = ?", id, ownerID)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete task %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("task with ID %s for deletion: %w", id, ErrNotFound)
	}
	return task, nil
}
