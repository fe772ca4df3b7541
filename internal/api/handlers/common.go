package handlers

import (
	"errors"
	"fmt"
	"strings"

	"bid-leveler/internal/service"
	"bid-leveler/pkg/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = validator.New()

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// bindBody decodes and validates a JSON request body. It returns the client-facing
// message when the body is rejected, "" otherwise.
func bindBody(c *fiber.Ctx, dst any) string {
	if err := c.BodyParser(dst); err != nil {
		return "Invalid request body"
	}
	if err := validate.Struct(dst); err != nil {
		return validationMessage(err)
	}
	return ""
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return "Validation failed: " + strings.Join(fields, "; ")
}

func pathID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

// serviceError maps service sentinels to HTTP statuses. Anything else is logged and
// reported as a 500 with the fallback message.
func serviceError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrBidNotFound),
		errors.Is(err, service.ErrComparisonNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNoBids), errors.Is(err, service.ErrNoText):
		return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrUnsupportedFormat):
		return errorJSON(c, fiber.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrUserExists):
		return errorJSON(c, fiber.StatusConflict, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	logger.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
	return errorJSON(c, fiber.StatusInternalServerError, fallback)
}

func currentUser(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := middleware.UserID(c)
	return id, err == nil
}
