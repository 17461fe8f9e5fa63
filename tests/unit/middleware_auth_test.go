package unit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func callWithAuth(t *testing.T, cfg config.Config, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	handler := middleware.AuthJWT(cfg)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, captured
}

func TestAuthJWT_ValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "unit-test-secret"}
	now := time.Now()
	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  "42",
		"name": "taro",
		"role": "USER",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Minute).Unix(),
	})

	rec, c := callWithAuth(t, cfg, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, c)
	assert.Equal(t, int64(42), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "USER", c.Get(middleware.CtxUserRoleKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: "unit-test-secret"}
	rec, _ := callWithAuth(t, cfg, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	cfg := config.Config{JWTSecret: "unit-test-secret"}
	now := time.Now()
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "42", "iat": now.Unix(), "exp": now.Add(time.Minute).Unix(),
	})

	rec, _ := callWithAuth(t, cfg, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "unit-test-secret"}
	now := time.Now()
	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": "42", "iat": now.Add(-2 * time.Hour).Unix(), "exp": now.Add(-time.Hour).Unix(),
	})

	rec, _ := callWithAuth(t, cfg, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	cfg := config.Config{JWTSecret: "unit-test-secret"}
	rec, _ := callWithAuth(t, cfg, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard(t *testing.T) {
	e := echo.New()

	run := func(role string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(middleware.CtxUserRoleKey, role)

		handler := middleware.AdminRoleGuard()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, run("USER").Code)
	assert.Equal(t, http.StatusUnauthorized, run("").Code)
}
