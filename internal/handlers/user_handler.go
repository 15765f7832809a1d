package handlers

import (
	"io"
	"log"
	"path/filepath"
	"strings"

	"tugas/internal/middleware"
	"tugas/internal/models"
	"tugas/internal/notifications"
	"tugas/internal/services"

	"github.com/gofiber/fiber/v2"
)

const maxAvatarBytes = 1_000_000

// UserHandler handles HTTP requests for accounts, sessions and avatars.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
	dispatcher  *notifications.Dispatcher
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService, dispatcher *notifications.Dispatcher) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		dispatcher:  dispatcher,
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The auth
// handler guards the session-bound routes; registration, login and avatar
// fetch stay public.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Get("/:id/avatar", h.HandleGetAvatar)

	userRoutes.Post("/logout", auth, h.HandleLogout)
	userRoutes.Post("/logoutAll", auth, h.HandleLogoutAll)
	userRoutes.Get("/me", auth, h.HandleGetProfile)
	userRoutes.Patch("/me", auth, h.HandleUpdateProfile)
	userRoutes.Delete("/me", auth, h.HandleDeleteAccount)
	userRoutes.Post("/me/avatar", auth, h.HandleUploadAvatar)
	userRoutes.Delete("/me/avatar", auth, h.HandleDeleteAvatar)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	}
	if err := h.authService.RegisterUser(&user); err != nil {
		return handleServiceError(c, err)
	}

	// Best-effort: a failed welcome email never fails the signup.
	h.dispatcher.SendWelcome(user.Email, user.Name)

	token, err := h.authService.IssueToken(&user)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles user login and issues a session token.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.authService.VerifyCredentials(req.Email, req.Password)
	if err != nil {
		return handleServiceError(c, err)
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// HandleLogout revokes exactly the session token used for this request.
func (h *UserHandler) HandleLogout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	token := middleware.CurrentToken(c)

	if err := h.authService.RevokeToken(user, token); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// HandleLogoutAll revokes every session of the current user.
func (h *UserHandler) HandleLogoutAll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if err := h.authService.RevokeAllTokens(user); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Logged out all sessions successfully",
	})
}

// HandleGetProfile returns the current user's public fields.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// HandleUpdateProfile applies a partial profile update. Keys outside
// name/email/age/password reject the whole request.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user := middleware.CurrentUser(c)
	if err := h.userService.UpdateProfile(user, updates); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user)
}

// HandleDeleteAccount deletes the current user together with all their tasks
// and returns the deleted record.
func (h *UserHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if err := h.userService.DeleteAccount(user); err != nil {
		return handleServiceError(c, err)
	}

	h.dispatcher.SendCancellation(user.Email, user.Name)

	return c.JSON(user)
}

// HandleUploadAvatar accepts a multipart upload in the "avatar" field,
// normalizes it and stores it on the current user.
func (h *UserHandler) HandleUploadAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload an image",
		})
	}

	if fileHeader.Size > maxAvatarBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image must be smaller than 1MB",
		})
	}

	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".jpeg", ".jpg", ".png":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload a jpeg, jpg or png image",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return handleServiceError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return handleServiceError(c, err)
	}

	user := middleware.CurrentUser(c)
	if err := h.userService.SetAvatar(user, data); err != nil {
		// Undecodable payloads map to 400, persistence failures to 500.
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Image uploaded successfully",
	})
}

// HandleDeleteAvatar clears the current user's avatar.
func (h *UserHandler) HandleDeleteAvatar(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if err := h.userService.ClearAvatar(user); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Avatar image deleted successfully",
	})
}

// HandleGetAvatar serves any user's avatar PNG. This endpoint is public.
func (h *UserHandler) HandleGetAvatar(c *fiber.Ctx) error {
	avatar, err := h.userService.GetAvatar(c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(avatar)
}
