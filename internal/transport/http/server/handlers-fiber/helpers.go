package handlers_fiber

import (
	"errors"
	"net/http"

	"activity-signup/internal/entities"
	api "activity-signup/internal/oapi"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	msg := api.DetailInternal

	switch {
	case errors.Is(err, entities.ErrActivityNotFound):
		status = http.StatusNotFound
		msg = api.DetailActivityNotFound
	case errors.Is(err, entities.ErrAlreadyRegistered):
		status = http.StatusBadRequest
		msg = api.DetailAlreadyRegistered
	case errors.Is(err, entities.ErrNotRegistered):
		status = http.StatusBadRequest
		msg = api.DetailNotRegistered
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		msg = err.Error()
	}

	return c.Status(status).JSON(api.ErrorResponse{Detail: msg})
}
