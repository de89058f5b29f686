package oapi

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /)
	GetRoot(c *fiber.Ctx) error
	// (GET /activities)
	GetActivities(c *fiber.Ctx) error
	// (POST /activities/{activityName}/signup)
	PostActivitiesActivityNameSignup(c *fiber.Ctx, activityName string, params PostActivitiesActivityNameSignupParams) error
	// (DELETE /activities/{activityName}/participants/{email})
	DeleteActivitiesActivityNameParticipantsEmail(c *fiber.Ctx, activityName string, email string) error
}

// ServerInterfaceWrapper decodes path and query parameters before calling the handler.
// Decoded values are copied out of the request buffer and may be retained.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetRoot operation middleware
func (siw *ServerInterfaceWrapper) GetRoot(c *fiber.Ctx) error {
	return siw.Handler.GetRoot(c)
}

// GetActivities operation middleware
func (siw *ServerInterfaceWrapper) GetActivities(c *fiber.Ctx) error {
	return siw.Handler.GetActivities(c)
}

// PostActivitiesActivityNameSignup operation middleware
func (siw *ServerInterfaceWrapper) PostActivitiesActivityNameSignup(c *fiber.Ctx) error {
	activityName, err := pathParam(c, "activityName")
	if err != nil {
		return invalidParam(c, "path", "activityName")
	}

	args := c.Context().QueryArgs()
	if !args.Has("email") {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
			Detail: []ValidationError{{
				Loc:  []string{"query", "email"},
				Msg:  "field required",
				Type: "value_error.missing",
			}},
		})
	}
	params := PostActivitiesActivityNameSignupParams{
		Email: string(args.Peek("email")),
	}

	return siw.Handler.PostActivitiesActivityNameSignup(c, activityName, params)
}

// DeleteActivitiesActivityNameParticipantsEmail operation middleware
func (siw *ServerInterfaceWrapper) DeleteActivitiesActivityNameParticipantsEmail(c *fiber.Ctx) error {
	activityName, err := pathParam(c, "activityName")
	if err != nil {
		return invalidParam(c, "path", "activityName")
	}
	email, err := pathParam(c, "email")
	if err != nil {
		return invalidParam(c, "path", "email")
	}

	return siw.Handler.DeleteActivitiesActivityNameParticipantsEmail(c, activityName, email)
}

// RegisterHandlers creates http.Handler with routes for the activities API.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.Get("/", wrapper.GetRoot)
	router.Get("/activities", wrapper.GetActivities)
	router.Post("/activities/:activityName/signup", wrapper.PostActivitiesActivityNameSignup)
	router.Delete("/activities/:activityName/participants/:email", wrapper.DeleteActivitiesActivityNameParticipantsEmail)
}

func pathParam(c *fiber.Ctx, name string) (string, error) {
	return url.PathUnescape(utils.CopyString(c.Params(name)))
}

func invalidParam(c *fiber.Ctx, in, name string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
		Detail: []ValidationError{{
			Loc:  []string{in, name},
			Msg:  "invalid escape sequence",
			Type: "value_error",
		}},
	})
}
