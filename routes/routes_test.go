package routes

import (
	"net/http/httptest"
	"testing"
	"time"

	"deliveryhub/middleware"
	"deliveryhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	SetupRoutes(app)
	return app
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: "user-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTSecret)
	require.NoError(t, err)
	return token
}

func TestRecommendationsRequireAuth(t *testing.T) {
	app := newTestApp()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/recommendations"},
		{"POST", "/api/v1/recommendations/generate"},
		{"POST", "/api/v1/recommendations/some-id/accept"},
		{"POST", "/api/v1/recommendations/some-id/dismiss"},
		{"GET", "/api/v1/orders"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode, "%s %s", p.method, p.path)
	}
}

func TestRecommendationsRejectNonCustomerRoles(t *testing.T) {
	middleware.JWTSecret = []byte("test-secret")
	defer func() { middleware.JWTSecret = nil }()

	app := newTestApp()

	for _, role := range []string{"driver", "admin"} {
		req := httptest.NewRequest("GET", "/api/v1/recommendations", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, role))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode, "role %s", role)
	}
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	middleware.JWTSecret = []byte("test-secret")
	defer func() { middleware.JWTSecret = nil }()

	app := newTestApp()

	req := httptest.NewRequest("GET", "/api/v1/admin/drivers", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "customer"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestUnknownRouteReturns404(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/api/v1/nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
