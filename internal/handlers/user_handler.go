package handlers

import (
	"errors"
	"fmt"
	"log"

	"userstore/internal/models"
	"userstore/internal/repositories"
	"userstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// validationErrorResponse renders validator failures as a 400 with one
// message per failing field.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// HandleGetUserByID retrieves a single user by their ID.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	userID := c.Params("id")
	user, err := h.service.GetByID(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("User with ID %s not found", userID),
			})
		}
		log.Printf("Error getting user by ID %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve user",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleListUsers returns one page of users plus pagination metadata.
// Query parameters: count (1-100, default 10), page (>= 1, default 1), and
// the optional username/email substring filters.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	count := c.QueryInt("count", 10)
	page := c.QueryInt("page", 1)
	if count < 1 || count > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "count must be between 1 and 100",
		})
	}
	if page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "page must be 1 or greater",
		})
	}

	var filter repositories.UserFilter
	if username := c.Query("username"); username != "" {
		filter.Username = &username
	}
	if email := c.Query("email"); email != "" {
		filter.Email = &email
	}

	users, err := h.service.GetByFilter(filter, count, page)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}

	total, err := h.service.Count(filter)
	if err != nil {
		log.Printf("Error counting users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count users",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"count": count,
	})
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Description string `json:"description"`
}

// HandleCreateUser creates a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Description: req.Description,
	}
	created, err := h.service.Create(user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not create user",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create user",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateUserRequest is the request body for a partial user update. Absent
// fields are left untouched.
type UpdateUserRequest struct {
	Username    *string `json:"username" validate:"omitempty,min=1,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Description *string `json:"description"`
}

// HandleUpdateUser applies a partial update to an existing user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	patch := repositories.UserPatch{
		Username:    req.Username,
		Email:       req.Email,
		Description: req.Description,
	}
	updated, err := h.service.Update(userID, patch)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("User with ID %s not found", userID),
			})
		}
		if errors.Is(err, models.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not update user",
				"error":   err.Error(),
			})
		}
		log.Printf("Error updating user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update user",
			"error":   err.Error(),
		})
	}

	return c.JSON(updated)
}

// HandleDeleteUser deletes a user by their ID.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	if err := h.service.Delete(userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("User with ID %s not found", userID),
			})
		}
		log.Printf("Error deleting user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete user",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
