package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	secret := "test-secret-key-12345678901234567890123456789012"
	codec := token.NewCodec(secret, time.Hour)
	expiredCodec := token.NewCodec(secret, -time.Hour)

	app.Get("/test", AuthRequired(codec), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	validToken, err := codec.Issue("64f1c0ffee0ddba11ca7e5e1")
	require.NoError(t, err)
	expiredToken, err := expiredCodec.Issue("64f1c0ffee0ddba11ca7e5e1")
	require.NoError(t, err)

	tests := []struct {
		name           string
		token          string
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "happy path",
			token:          validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token",
			token:          "",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "no token, authorization denied",
		},
		{
			name:           "malformed token",
			token:          "malformed.token.here",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "token is not valid",
		},
		{
			name:           "expired token",
			token:          expiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "token is not valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "64f1c0ffee0ddba11ca7e5e1", body["userID"])
			} else {
				assert.Equal(t, tt.expectedMsg, body["msg"])
			}
		})
	}
}
