package handlers

import (
	"errors"
	"log"

	"userstore/internal/models"
	"userstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for user addresses.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address routes, nested under /users.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/users/:id/addresses")
	addressRoutes.Get("/", h.HandleListAddresses)
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Delete("/:addressId", h.HandleDeleteAddress)
}

// HandleListAddresses returns all addresses owned by a user.
func (h *AddressHandler) HandleListAddresses(c *fiber.Ctx) error {
	userID := c.Params("id")
	addresses, err := h.service.ListForUser(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
				"error":   err.Error(),
			})
		}
		log.Printf("Error listing addresses for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve addresses",
			"error":   err.Error(),
		})
	}
	return c.JSON(addresses)
}

// CreateAddressRequest is the request body for creating an address.
type CreateAddressRequest struct {
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}

// HandleCreateAddress stores a new address for a user.
func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	userID := c.Params("id")

	var req CreateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	address := &models.Address{
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		IsPrimary: req.IsPrimary,
	}
	created, err := h.service.Create(userID, address)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating address for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create address",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleDeleteAddress deletes an address owned by a user.
func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	userID := c.Params("id")
	addressID := c.Params("addressId")
	if err := h.service.Delete(userID, addressID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Address not found",
				"error":   err.Error(),
			})
		}
		log.Printf("Error deleting address %s for user %s: %v", addressID, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete address",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
