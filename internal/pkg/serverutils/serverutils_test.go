package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	SessionId string `json:"session_id" validate:"omitempty,max=4"`
	Chat      string `json:"chat" validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Chat: "bonjour"}))

	err := ValidateRequest(sampleRequest{SessionId: "beaucoup trop long"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"session_id": "max=4", "chat": "required"}, verr.Fields)
}

func decode(t *testing.T, app *fiber.App, path, token string) (int, BaseResponse[any]) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "Session not found") })
	app.Get("/validation", func(c *fiber.Ctx) error { return ValidateRequest(sampleRequest{}) })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("boom") })

	tests := []struct {
		path    string
		code    int
		message string
	}{
		{"/fiber", 404, "Session not found"},
		{"/validation", 400, "Validation failed"},
		{"/plain", 500, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := decode(t, app, tt.path, "")
			assert.Equal(t, tt.code, code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "test-secret"
	app := fiber.New()
	app.Use(JwtMiddleware(secret), AdminOnly)
	app.Get("/admin", func(c *fiber.Ctx) error { return c.JSON(SuccessResponse("ok", c.Locals("user_id"))) })

	admin, err := SignToken(secret, "alice", RoleAdmin)
	require.NoError(t, err)
	student, err := SignToken(secret, "bob", "student")
	require.NoError(t, err)
	forged, err := SignToken("other-secret", "mallory", RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		code  int
	}{
		{"missing", "", 401},
		{"forged", forged, 401},
		{"not admin", student, 403},
		{"admin", admin, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := decode(t, app, "/admin", tt.token)
			assert.Equal(t, tt.code, code)
			if tt.code == 200 {
				assert.Equal(t, "alice", body.Data)
			}
		})
	}
}

func TestJwtMiddleware_NoSecret(t *testing.T) {
	app := fiber.New()
	app.Use(JwtMiddleware(""))
	app.Get("/admin", func(c *fiber.Ctx) error { return c.SendStatus(200) })

	code, _ := decode(t, app, "/admin", "whatever")
	assert.Equal(t, 503, code)
}
