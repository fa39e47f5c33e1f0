package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/resource-service/pkg/util/errorutil"
)

// normalizer is implemented by request payloads that trim their fields.
type normalizer interface {
	Normalize()
}

// parseID reads the :id route parameter as a positive integer.
func parseID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id must be a positive integer", map[string]any{"id": raw})
	}
	return id, nil
}

// bindJSON decodes the body into req, normalizes it and runs struct validation.
func bindJSON[T any, P interface {
	*T
	normalizer
}](c *fiber.Ctx, validate func(any) error) (*T, error) {
	req := P(new(T))
	if err := c.BodyParser(req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}
	return (*T)(req), nil
}
