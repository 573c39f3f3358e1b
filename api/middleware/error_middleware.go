package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/nilotpaul/spaboot/util"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError

	var apiErr *util.AppError
	if errors.As(err, &apiErr) {
		status = apiErr.Status

		slog.Error("HTTP API error", "errMsg", apiErr.Msg, "status", status, "err", apiErr.Err, "path", c.Path())

		return c.Status(status).JSON(fiber.Map{
			"status": status,
			"errMsg": apiErr.Msg,
		})
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code

		return c.Status(status).JSON(fiber.Map{
			"status": status,
			"errMsg": fiberErr.Message,
		})
	}

	slog.Error("HTTP API error", "err", err, "path", c.Path())

	return c.Status(status).JSON(fiber.Map{
		"status": status,
		"errMsg": "something went wrong",
	})
}
