package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resource-service/internal/api/dto"
	"github.com/spec-kit/resource-service/internal/service"
	"github.com/spec-kit/resource-service/internal/validation"
)

// UsersHandler exposes the user resource.
type UsersHandler struct {
	service   *service.UserService
	validator *validation.Validator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, validator *validation.Validator) *UsersHandler {
	return &UsersHandler{service: userService, validator: validator}
}

// CreateUser handles POST /users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	req, err := bindJSON[dto.CreateUserRequest](c, h.validator.Struct)
	if err != nil {
		return err
	}
	user, err := h.service.CreateUser(c.UserContext(), service.UserInput{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// ListUsers handles GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(items)
}

// GetUser handles GET /users/:id.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.service.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateUser handles PUT /users/:id.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := bindJSON[dto.UpdateUserRequest](c, h.validator.Struct)
	if err != nil {
		return err
	}
	user, err := h.service.UpdateUser(c.UserContext(), id, service.UserInput{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateUserResponse{
		Message: "user updated successfully",
		User:    dto.NewUserResponse(user),
	})
}

// DeleteUser handles DELETE /users/:id.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "user deleted successfully"})
}
