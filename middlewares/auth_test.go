package middlewares_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"atelier-backend/middlewares"
)

func TestBearerAuthRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	token, err := middlewares.GenerateJWT("user-1", "tenant_a")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/ping", middlewares.IsAuthenticatedHeader(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user":   c.Locals("userID"),
			"schema": c.Locals("schema"),
		})
	})

	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestErrorHandlerValidationErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Post("/thing", func(c *fiber.Ctx) error {
		var in struct {
			Email string `json:"email" validate:"required,email"`
		}
		if err := middlewares.BindAndValidate(c, &in); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "success"})
	})

	req := httptest.NewRequest(fiber.MethodPost, "/thing", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodPost, "/thing", strings.NewReader(`{"email":"a@b.co"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestErrorHandlerFiberError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
