package handlers

import (
	"log"

	"tugas/internal/middleware"
	"tugas/internal/models"
	"tugas/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	service *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{
		service: service,
	}
}

// RegisterRoutes registers the task routes with the Fiber app. Every task
// route requires an authenticated owner.
func (h *TaskHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	taskRoutes := router.Group("/tasks", auth)
	taskRoutes.Post("/", h.HandleCreateTask)
	taskRoutes.Get("/", h.HandleListTasks)
	taskRoutes.Get("/:id", h.HandleGetTask)
	taskRoutes.Patch("/:id", h.HandleUpdateTask)
	taskRoutes.Delete("/:id", h.HandleDeleteTask)
}

// CreateTaskRequest represents the request body for task creation.
type CreateTaskRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// HandleCreateTask creates a new task owned by the current user.
func (h *TaskHandler) HandleCreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create task body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user := middleware.CurrentUser(c)
	task := models.Task{
		Description: req.Description,
		Completed:   req.Completed,
	}
	if err := h.service.CreateTask(user.ID, &task); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleListTasks lists the current user's tasks.
//
// GET /tasks?completed=true
// GET /tasks?limit=2&skip=2
// GET /tasks?sortBy=createdAt:desc
func (h *TaskHandler) HandleListTasks(c *fiber.Ctx) error {
	opts := services.ParseTaskListOptions(
		c.Query("completed"),
		c.Query("sortBy"),
		c.Query("limit"),
		c.Query("skip"),
	)

	user := middleware.CurrentUser(c)
	tasks, err := h.service.ListTasks(user.ID, opts)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(tasks)
}

// HandleGetTask retrieves a single task. A task owned by somebody else is
// indistinguishable from a missing one.
func (h *TaskHandler) HandleGetTask(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	task, err := h.service.GetTask(user.ID, c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(task)
}

// HandleUpdateTask applies a partial update. Keys outside
// description/completed reject the whole request, even for tasks that do not
// exist.
func (h *TaskHandler) HandleUpdateTask(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		log.Printf("Error parsing task update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user := middleware.CurrentUser(c)
	task, err := h.service.UpdateTask(user.ID, c.Params("id"), updates)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(task)
}

// HandleDeleteTask deletes the task and returns the deleted record.
func (h *TaskHandler) HandleDeleteTask(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	task, err := h.service.DeleteTask(user.ID, c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(task)
}
