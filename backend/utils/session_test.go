package utils

import (
	"io"
	"net/http/httptest"
	"testing"

	"readquest/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()
	store, err := NewSessionStore(cfg, NewNopLogger())
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/login", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set("admin", "lucia")
		return sess.Save()
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		name, _ := sess.Get("admin").(string)
		return c.SendString(name)
	})
	return app
}

func TestSessionCookieName(t *testing.T) {
	for _, tt := range []struct {
		configured string
		want       string
	}{
		{"rq_sess", "rq_sess"},
		{"", "readquest_admin"},
	} {
		app := sessionApp(t, &config.Config{SessionCookieName: tt.configured})

		resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var sessionID string
		for _, c := range resp.Cookies() {
			if c.Name == tt.want {
				sessionID = c.Value
			}
		}
		require.NotEmpty(t, sessionID, "session cookie %q not set", tt.want)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Cookie", tt.want+"="+sessionID)
		resp, err = app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "lucia", string(body))
	}
}
