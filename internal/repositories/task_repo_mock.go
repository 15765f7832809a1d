package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"
	"tugas/internal/models"

	"github.com/google/uuid"
)

// MockTaskRepository is an in-memory implementation of TaskRepository.
type MockTaskRepository struct {
	tasks map[string]models.Task
	mu    sync.RWMutex
}

// NewMockTaskRepository creates a new instance of MockTaskRepository.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		tasks: make(map[string]models.Task),
	}
}

// Create adds a new task.
func (r *MockTaskRepository) Create(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	r.tasks[task.ID] = *task
	return nil
}

// ListByOwner returns the owner's tasks honoring the same filter, sort and
// bound semantics as the GORM implementation.
func (r *MockTaskRepository) ListByOwner(ownerID string, opts TaskListOptions) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	taskList := make([]models.Task, 0)
	for _, t := range r.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		if opts.Completed != nil && t.Completed != *opts.Completed {
			continue
		}
		taskList = append(taskList, t)
	}

	if opts.SortField != "" {
		sort.SliceStable(taskList, func(i, j int) bool {
			a, b := taskList[i], taskList[j]
			if opts.SortDesc {
				a, b = b, a
			}
			switch opts.SortField {
			case "created_at":
				return a.CreatedAt.Before(b.CreatedAt)
			case "updated_at":
				return a.UpdatedAt.Before(b.UpdatedAt)
			case "description":
				return a.Description < b.Description
			case "completed":
				return !a.Completed && b.Completed
			default:
				return false
			}
		})
	}

	if opts.Skip != nil {
		if *opts.Skip >= len(taskList) {
			return []models.Task{}, nil
		}
		taskList = taskList[*opts.Skip:]
	}
	if opts.Limit != nil && *opts.Limit < len(taskList) {
		taskList = taskList[:*opts.Limit]
	}
	return taskList, nil
}

// GetByOwnerAndID returns the task only when the owner matches.
func (r *MockTaskRepository) GetByOwnerAndID(ownerID, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, fmt.Errorf("task with ID %s: %w", id, ErrNotFound)
	}
	return &task, nil
}

// Update modifies an existing task.
func (r *MockTaskRepository) Update(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tasks[task.ID]
	if !ok {
		return fmt.Errorf("task with ID %s for update: %w", task.ID, ErrNotFound)
	}
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

// DeleteByOwnerAndID removes the task and returns the removed record.
func (r *MockTaskRepository) DeleteByOwnerAndID(ownerID, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, fmt.Errorf("task with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.tasks, id)
	return &task, nil
}
