package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	auth_case "github.com/Xenn-00/stufen-meister/internal/use-cases/auth-case"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyEcho struct{}

func (keyEcho) T(lang string, key string, _ map[string]any) string { return lang + ":" + key }

type errorEnvelope struct {
	Status string `json:"status"`
	Error  struct {
		Code      int    `json:"code"`
		Type      string `json:"type"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
		Details   []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func readEnvelope(t *testing.T, body io.Reader) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware(keyEcho{})})
	app.Use(RequestIDMiddleware())
	app.Use(AcceptLanguageMiddleware())
	return app
}

func TestErrorHandler_AppError(t *testing.T) {
	app := newApp()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return app_errors.NewValidationError([]app_errors.FieldError{
			{Field: "status", Reason: "required", MessageKey: "validation.required"},
		})
	})

	req := httptest.NewRequest(fiber.MethodGet, "/fail", nil)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")
	req.Header.Set("X-Request-ID", "SM-fest")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := readEnvelope(t, resp.Body)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, app_errors.ErrValidation, env.Error.Type)
	assert.Equal(t, "de:invalid_request", env.Error.Message)
	assert.Equal(t, "SM-fest", env.Error.RequestID)
	require.Len(t, env.Error.Details, 1)
	assert.Equal(t, "de:validation.required", env.Error.Details[0].Message)
}

func TestErrorHandler_PlainAndFiberErrors(t *testing.T) {
	app := newApp()
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("kaputt") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "en:internal_error", readEnvelope(t, resp.Body).Error.Message)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/gibt-es-nicht", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, app_errors.ErrNotFound, readEnvelope(t, resp.Body).Error.Type)
}

func TestRequestID(t *testing.T) {
	app := newApp()
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(c.Locals("request_id").(string)) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "SM-"))
	assert.Equal(t, string(body), resp.Header.Get("X-Request-ID"))
}

func newAuthApp(t *testing.T) (*fiber.App, *utils.PasetoMaker, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	maker, err := utils.NewPasetoMaker(utils.GenerateSymmetricKey())
	require.NoError(t, err)

	app := newApp()
	app.Get("/me", AuthMiddleware(maker, rdb), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id"), "jti": c.Locals("jti"), "device": c.Locals("device_name")})
	})
	return app, maker, rdb
}

func TestAuthMiddleware(t *testing.T) {
	app, maker, rdb := newAuthApp(t)
	ctx := context.Background()

	token, err := maker.CreateToken("user-1", "anna", "anna@example.com", "jti-1", time.Hour)
	require.NoError(t, err)

	get := func(header string) (int, errorEnvelope, map[string]string) {
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		var env errorEnvelope
		var ok map[string]string
		if resp.StatusCode == fiber.StatusOK {
			require.NoError(t, json.Unmarshal(raw, &ok))
		} else {
			require.NoError(t, json.Unmarshal(raw, &env))
		}
		return resp.StatusCode, env, ok
	}

	code, env, _ := get("")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "en:auth.missing_token", env.Error.Message)

	code, env, _ = get("Token " + token)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "en:auth.invalid_token_format", env.Error.Message)

	code, env, _ = get("Bearer kaputt")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "en:auth.invalid_token", env.Error.Message)

	// gültiges Token ohne Session, z. B. nach Logout
	code, env, _ = get("Bearer " + token)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "en:auth.session_expired", env.Error.Message)

	session := &auth_case.SessionTracker{JTI: "jti-1", UserID: "user-1", Device: "Linux"}
	require.Nil(t, utils.SetCacheData(ctx, rdb, auth_case.SessionKey("jti-1"), session, time.Hour))

	code, _, ok := get("Bearer " + token)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "user-1", ok["user_id"])
	assert.Equal(t, "jti-1", ok["jti"])
	assert.Equal(t, "Linux", ok["device"])
}
