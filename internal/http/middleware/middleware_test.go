package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/api/svgs", func(c *fiber.Ctx) error {
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		return c.SendString(rid)
	})

	t.Run("mints a uuid when the header is absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/svgs", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		rid := resp.Header.Get(RequestIDHeader)
		_, err = uuid.Parse(rid)
		assert.NoError(t, err, "generated request id should be a uuid")

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, rid, string(body), "handler should see the same id via locals")
	})

	t.Run("propagates a client-supplied id unchanged", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/svgs", nil)
		req.Header.Set(RequestIDHeader, "upstream-7f3a")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "upstream-7f3a", resp.Header.Get(RequestIDHeader))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "upstream-7f3a", string(body))
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	// The logger reads request_id from locals, so RequestID must run first.
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Delete("/api/svgs/abc", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	req := httptest.NewRequest("DELETE", "/api/svgs/abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.NotEmpty(t, entry["request_id"])
	assert.Equal(t, "DELETE", entry["method"])
	assert.Equal(t, "/api/svgs/abc", entry["path"])
	assert.Equal(t, float64(fiber.StatusNotFound), entry["status"])
	assert.NotNil(t, entry["latency"])
	assert.NotEmpty(t, entry["ts"])
}
