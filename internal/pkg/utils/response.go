package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vrp-microservice/internal/pkg/errors"
)

type SuccessResponse struct {
	Data     interface{}      `json:"data"`
	Warnings []errors.Warning `json:"warnings,omitempty"`
	Meta     *Meta            `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total    int     `json:"total,omitempty"`
	Page     int     `json:"page,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

// SendSuccessWithWarnings attaches non-fatal validation warnings to an
// otherwise successful response.
func SendSuccessWithWarnings(c *fiber.Ctx, data interface{}, warnings []errors.Warning, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data:     data,
		Warnings: warnings,
		Meta:     meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	if valErr, ok := err.(*errors.ValidationError); ok {
		appErr := errors.New(string(valErr.Kind), valErr.Message, 400).WithDetails(map[string]interface{}{
			"field": valErr.Field,
			"value": valErr.Value,
		})
		return c.Status(400).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(500).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
