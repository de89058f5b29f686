package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"activity-signup/config"
	"activity-signup/internal/entities"
	api "activity-signup/internal/oapi"
	"activity-signup/internal/repository/memory"
	"activity-signup/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleActivities() map[string]entities.Activity {
	return map[string]entities.Activity{
		"Test Activity": {
			Description:     "A test activity for testing purposes",
			Schedule:        "Test Schedule",
			MaxParticipants: 5,
			Participants:    []string{"test1@example.com", "test2@example.com"},
		},
		"Empty Activity": {
			Description:     "An activity with no participants",
			Schedule:        "Empty Schedule",
			MaxParticipants: 10,
			Participants:    []string{},
		},
	}
}

func newTestApp(t *testing.T, seed map[string]entities.Activity) *fiber.App {
	t.Helper()

	staticDir, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "static"))
	require.NoError(t, err)

	cfg := &config.Config{
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Static: config.StaticConfig{Dir: staticDir, Index: "/static/index.html"},
	}
	log := zap.NewNop().Sugar()
	repo := memory.NewWithActivities(log, seed)
	uc := usecase.New(log, repo, cfg.HTTP.RequestTimeout)
	return New(cfg, log, uc)
}

func do(t *testing.T, app *fiber.App, method, target string) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func signupURL(name, email string) string {
	return fmt.Sprintf("/activities/%s/signup?email=%s", url.PathEscape(name), url.QueryEscape(email))
}

func participantURL(name, email string) string {
	return fmt.Sprintf("/activities/%s/participants/%s", url.PathEscape(name), url.PathEscape(email))
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func listActivities(t *testing.T, app *fiber.App) api.Activities {
	t.Helper()

	resp := do(t, app, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[api.Activities](t, resp)
}

func TestRootRedirect(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	resp := do(t, app, http.MethodGet, "/")
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "/static/index.html", resp.Header.Get("Location"))
}

func TestStaticIndex(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	resp := do(t, app, http.MethodGet, "/static/index.html")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "<html")
	require.NotContains(t, string(body), "innerHTML")
}

func TestSignupMarkupEmailReturnedVerbatim(t *testing.T) {
	app := newTestApp(t, sampleActivities())
	email := `<img src=x onerror=alert(1)>`

	resp := do(t, app, http.MethodPost, signupURL("Test Activity", email))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Signed up "+email+" for Test Activity", decode[api.MessageResponse](t, resp).Message)

	require.Contains(t, listActivities(t, app)["Test Activity"].Participants, email)

	resp = do(t, app, http.MethodDelete, participantURL("Test Activity", email))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotContains(t, listActivities(t, app)["Test Activity"].Participants, email)
}

func TestHealthzAndMetrics(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/healthz").StatusCode)

	do(t, app, http.MethodPost, signupURL("Empty Activity", "m@example.com"))
	resp := do(t, app, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "activity_signups_total")
}

func TestGetActivities(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	data := listActivities(t, app)
	require.Len(t, data, 2)

	a := data["Test Activity"]
	require.Equal(t, "A test activity for testing purposes", a.Description)
	require.Equal(t, "Test Schedule", a.Schedule)
	require.Equal(t, 5, a.MaxParticipants)
	require.Equal(t, []string{"test1@example.com", "test2@example.com"}, a.Participants)
}

func TestGetActivitiesRawShape(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	resp := do(t, app, http.MethodGet, "/activities")
	require.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get(fiber.HeaderContentType))

	raw := decode[map[string]map[string]any](t, resp)
	for name, fields := range raw {
		require.IsType(t, "", fields["description"], name)
		require.IsType(t, "", fields["schedule"], name)
		require.IsType(t, float64(0), fields["max_participants"], name)
		require.IsType(t, []any{}, fields["participants"], name)
	}
}

func TestSignup(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	resp := do(t, app, http.MethodPost, signupURL("Test Activity", "newuser@example.com"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Signed up newuser@example.com for Test Activity", decode[api.MessageResponse](t, resp).Message)

	require.Contains(t, listActivities(t, app)["Test Activity"].Participants, "newuser@example.com")
}

func TestSignupErrors(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	resp := do(t, app, http.MethodPost, signupURL("Non-existent Activity", "user@example.com"))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, api.DetailActivityNotFound, decode[api.ErrorResponse](t, resp).Detail)

	resp = do(t, app, http.MethodPost, signupURL("Test Activity", "test1@example.com"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, api.DetailAlreadyRegistered, decode[api.ErrorResponse](t, resp).Detail)

	require.Len(t, listActivities(t, app)["Test Activity"].Participants, 2)
}

func TestSignupMissingEmail(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	resp := do(t, app, http.MethodPost, "/activities/"+url.PathEscape("Test Activity")+"/signup")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[api.ValidationErrorResponse](t, resp)
	require.Len(t, body.Detail, 1)
	require.Equal(t, []string{"query", "email"}, body.Detail[0].Loc)
}

func TestSignupEmptyEmail(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	resp := do(t, app, http.MethodPost, "/activities/"+url.PathEscape("Test Activity")+"/signup?email=")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, listActivities(t, app)["Test Activity"].Participants, "")
}

func TestSignupURLEncoding(t *testing.T) {
	seed := sampleActivities()
	seed["Test & Fun Activity!"] = entities.Activity{Description: "special", Schedule: "Test", MaxParticipants: 5}
	app := newTestApp(t, seed)

	for _, tc := range []struct{ activity, email string }{
		{"Test Activity", "user+test@example.com"},
		{"Test Activity", "üser@example.com"},
		{"Test & Fun Activity!", "user@example.com"},
		{"Empty Activity", strings.Repeat("a", 100) + "@" + strings.Repeat("b", 100) + ".com"},
	} {
		resp := do(t, app, http.MethodPost, signupURL(tc.activity, tc.email))
		require.Equal(t, http.StatusOK, resp.StatusCode, tc.activity)
		require.Contains(t, listActivities(t, app)[tc.activity].Participants, tc.email)
	}
}

func TestActivityNamesCaseSensitive(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	require.Equal(t, http.StatusOK, do(t, app, http.MethodPost, signupURL("Test Activity", "user@example.com")).StatusCode)
	require.Equal(t, http.StatusNotFound, do(t, app, http.MethodPost, signupURL("test activity", "user@example.com")).StatusCode)
}

func TestSignupBeyondCapacity(t *testing.T) {
	seed := sampleActivities()
	a := seed["Test Activity"]
	a.MaxParticipants = 2
	seed["Test Activity"] = a
	app := newTestApp(t, seed)

	resp := do(t, app, http.MethodPost, signupURL("Test Activity", "newuser@example.com"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listActivities(t, app)["Test Activity"].Participants, 3)
}

func TestUnregister(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	resp := do(t, app, http.MethodDelete, participantURL("Test Activity", "test1@example.com"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Unregistered test1@example.com from Test Activity", decode[api.MessageResponse](t, resp).Message)

	participants := listActivities(t, app)["Test Activity"].Participants
	require.Equal(t, []string{"test2@example.com"}, participants)
}

func TestUnregisterErrors(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	resp := do(t, app, http.MethodDelete, participantURL("Non-existent Activity", "user@example.com"))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, api.DetailActivityNotFound, decode[api.ErrorResponse](t, resp).Detail)

	resp = do(t, app, http.MethodDelete, participantURL("Test Activity", "notregistered@example.com"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, api.DetailNotRegistered, decode[api.ErrorResponse](t, resp).Detail)
}

func TestUnregisterURLEncoding(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	_ = do(t, app, http.MethodPost, signupURL("Test Activity", "user+test@example.com"))
	resp := do(t, app, http.MethodDelete, participantURL("Test Activity", "user+test@example.com"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotContains(t, listActivities(t, app)["Test Activity"].Participants, "user+test@example.com")
}

func TestChessClubScenario(t *testing.T) {
	app := newTestApp(t, map[string]entities.Activity{
		"Chess Club": {Description: "chess", Schedule: "Fridays", MaxParticipants: 12, Participants: []string{}},
	})

	require.Equal(t, http.StatusOK, do(t, app, http.MethodPost, signupURL("Chess Club", "x@e.com")).StatusCode)
	require.Equal(t, []string{"x@e.com"}, listActivities(t, app)["Chess Club"].Participants)

	require.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, signupURL("Chess Club", "x@e.com")).StatusCode)

	require.Equal(t, http.StatusOK, do(t, app, http.MethodDelete, participantURL("Chess Club", "x@e.com")).StatusCode)
	require.Empty(t, listActivities(t, app)["Chess Club"].Participants)
}

func TestMultipleParticipantsManagement(t *testing.T) {
	app := newTestApp(t, sampleActivities())
	emails := []string{"user1@example.com", "user2@example.com", "user3@example.com"}

	for _, e := range emails {
		require.Equal(t, http.StatusOK, do(t, app, http.MethodPost, signupURL("Empty Activity", e)).StatusCode)
	}
	require.Equal(t, emails, listActivities(t, app)["Empty Activity"].Participants)

	require.Equal(t, http.StatusOK, do(t, app, http.MethodDelete, participantURL("Empty Activity", emails[1])).StatusCode)
	require.Equal(t, []string{emails[0], emails[2]}, listActivities(t, app)["Empty Activity"].Participants)
}

func TestMethodsNotAllowed(t *testing.T) {
	app := newTestApp(t, sampleActivities())

	for _, method := range []string{http.MethodPost, http.MethodPut} {
		status := do(t, app, method, "/activities").StatusCode
		require.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, status, method)
	}
}
