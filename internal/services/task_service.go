package services

import (
	"fmt"
	"strings"

	"tugas/internal/models"
	"tugas/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// TaskService handles business logic related to tasks. Every operation is
// scoped to an owner.
type TaskService struct {
	repo     repositories.TaskRepository
	validate *validator.Validate
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo repositories.TaskRepository) *TaskService {
	return &TaskService{
		repo:     repo,
		validate: validator.New(),
	}
}

// CreateTask creates a new task for the given owner.
func (s *TaskService) CreateTask(ownerID string, task *models.Task) error {
	task.OwnerID = ownerID
	task.Description = strings.TrimSpace(task.Description)

	if err := s.validate.Struct(task); err != nil {
		return asValidationError(err)
	}
	return s.repo.Create(task)
}

// ListTasks retrieves the owner's tasks with the given filter, sort and
// pagination options.
func (s *TaskService) ListTasks(ownerID string, opts repositories.TaskListOptions) ([]models.Task, error) {
	return s.repo.ListByOwner(ownerID, opts)
}

// GetTask retrieves a single task owned by the given owner.
func (s *TaskService) GetTask(ownerID, id string) (*models.Task, error) {
	return s.repo.GetByOwnerAndID(ownerID, id)
}

// UpdateTask applies a partial update restricted to description and
// completed. Any other key rejects the whole update before the task is even
// looked up.
func (s *TaskService) UpdateTask(ownerID, id string, updates map[string]interface{}) (*models.Task, error) {
	for key := range updates {
		if key != "description" && key != "completed" {
			return nil, fmt.Errorf("field '%s': %w", key, ErrInvalidUpdate)
		}
	}

	task, err := s.repo.GetByOwnerAndID(ownerID, id)
	if err != nil {
		return nil, err
	}

	if value, ok := updates["description"]; ok {
		description, ok := value.(string)
		if !ok {
			return nil, &ValidationError{Fields: map[string]string{"description": "must be a string"}}
		}
		task.Description = strings.TrimSpace(description)
	}
	if value, ok := updates["completed"]; ok {
		completed, ok := value.(bool)
		if !ok {
			return nil, &ValidationError{Fields: map[string]string{"completed": "must be a boolean"}}
		}
		task.Completed = completed
	}

	if err := s.validate.Struct(task); err != nil {
		return nil, asValidationError(err)
	}
	if err := s.repo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes the task and returns the removed record.
func (s *TaskService) DeleteTask(ownerID, id string) (*models.Task, error) {
	return s.repo.DeleteByOwnerAndID(ownerID, id)
}
