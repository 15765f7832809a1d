package handlers

import (
	"errors"
	"log"

	"tugas/internal/repositories"
	"tugas/internal/services"

	"github.com/gofiber/fiber/v2"
)

// handleServiceError maps service failures onto the API's status scheme:
// validation and disallowed updates are 400, missing or unowned resources
// are 404, everything unexpected is 500.
func handleServiceError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	case errors.Is(err, services.ErrInvalidUpdate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid updates",
		})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email already registered",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to login",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	default:
		log.Printf("Unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
