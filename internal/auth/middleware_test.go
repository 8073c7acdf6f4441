package auth_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/library-service/internal/api/http"
	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/observability"
)

type probeResponse struct {
	SubjectID string `json:"subjectId"`
	Role      string `json:"role"`
	IsAdmin   bool   `json:"isAdmin"`
}

func newProtectedApp(t *testing.T, tokens *auth.TokenManager) *fiber.App {
	t.Helper()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	middleware := auth.NewMiddleware(tokens, auth.NewRevocationList(nil))
	app.Get("/protected", middleware.Handle, func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFromContext(c)
		require.True(t, ok)
		return c.JSON(probeResponse{
			SubjectID: identity.SubjectID,
			Role:      identity.Role,
			IsAdmin:   identity.IsAdmin,
		})
	})
	return app
}

func TestMiddleware_MissingToken(t *testing.T) {
	app := newProtectedApp(t, auth.NewTokenManager("test-secret", 60))

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing token", body["message"])
}

func TestMiddleware_InvalidToken(t *testing.T) {
	app := newProtectedApp(t, auth.NewTokenManager("test-secret", 60))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid token", body["message"])
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	app := newProtectedApp(t, auth.NewTokenManager("test-secret", 60))

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_ValidTokenPopulatesIdentity(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 60)
	app := newProtectedApp(t, tokens)

	token, _, err := tokens.GenerateToken("user-42", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body probeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-42", body.SubjectID)
	assert.Equal(t, "admin", body.Role)
	assert.True(t, body.IsAdmin)
}

func TestMiddleware_MalformedScheme(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 60)
	app := newProtectedApp(t, tokens)

	token, _, err := tokens.GenerateToken("user-1", "member")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRevocationList_NilClientNeverRevokes(t *testing.T) {
	list := auth.NewRevocationList(nil)

	require.NoError(t, list.Revoke(context.Background(), "token-id", time.Now().Add(time.Hour)))
	assert.False(t, list.IsRevoked(context.Background(), "token-id"))
}
