package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"activity-signup/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(RequestLogger(zap.New(core).Sugar()))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	entries := logs.FilterMessage("http").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "GET", fields["method"])
	require.Equal(t, "/ping?x=1", fields["path"])
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.NotEmpty(t, fields["request_id"])
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestRequestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core).Sugar()))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(http.StatusInternalServerError, "boom") })

	for _, target := range []string{"/ok", "/boom"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	entries := logs.FilterMessage("http").All()
	require.Len(t, entries, 2)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	require.EqualValues(t, http.StatusInternalServerError, entries[1].ContextMap()["status"])
}

func TestMetrics(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/items/:id", "200")
	before := testutil.ToFloat64(counter)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, before+1, testutil.ToFloat64(counter))
}
