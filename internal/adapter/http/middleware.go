package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "resume-builder/pkg/errors"
	"resume-builder/pkg/logger"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with an id, taken from the X-Request-ID
// header when the caller sent one.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
		return c.Next()
	}
}

func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var api *apperrors.ApiError
			var fe *fiber.Error
			switch {
			case errors.As(err, &api):
				status = api.Code
			case errors.As(err, &fe):
				status = fe.Code
			default:
				status = fiber.StatusInternalServerError
			}
		}
		logger.FromContext(c.UserContext()).Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
		)
		return err
	}
}

// ErrorHandler writes every error as an ApiError body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var api *apperrors.ApiError
	var fe *fiber.Error
	switch {
	case errors.As(err, &api):
	case errors.As(err, &fe):
		api = apperrors.New(fe.Code, fe.Message)
	default:
		logger.FromContext(c.UserContext()).Error("unhandled error", "error", err)
		api = apperrors.Internal("Internal server error")
	}
	api = api.WithRequestID(logger.RequestID(c.UserContext()))
	return c.Status(api.Code).JSON(api)
}
