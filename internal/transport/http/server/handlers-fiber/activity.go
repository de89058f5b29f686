package handlers_fiber

import (
	"net/http"

	"activity-signup/internal/mapper"
	api "activity-signup/internal/oapi"

	"github.com/gofiber/fiber/v2"
)

// GetRoot redirects to the static index page.
func (h *Handler) GetRoot(c *fiber.Ctx) error {
	return c.Redirect(h.indexPath, http.StatusTemporaryRedirect)
}

// GetActivities returns every activity keyed by name.
func (h *Handler) GetActivities(c *fiber.Ctx) error {
	activities, err := h.uc.Activities(c.UserContext())
	if err != nil {
		h.log.Errorw("failed to list activities", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToOAPIActivities(activities))
}

// PostActivitiesActivityNameSignup signs a participant up for an activity.
func (h *Handler) PostActivitiesActivityNameSignup(c *fiber.Ctx, activityName string, params api.PostActivitiesActivityNameSignupParams) error {
	msg, err := h.uc.SignUp(c.UserContext(), activityName, params.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(api.MessageResponse{Message: msg})
}

// DeleteActivitiesActivityNameParticipantsEmail removes a participant from an activity.
func (h *Handler) DeleteActivitiesActivityNameParticipantsEmail(c *fiber.Ctx, activityName string, email string) error {
	msg, err := h.uc.Unregister(c.UserContext(), activityName, email)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(api.MessageResponse{Message: msg})
}
