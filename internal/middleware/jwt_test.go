package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sneaker-store/internal/model"
	"github.com/iliyamo/sneaker-store/internal/utils"
)

const testSecret = "test-secret"

func invoke(t *testing.T, mw echo.MiddlewareFunc, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, handler(c))
	return rec, c
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := invoke(t, JWTAuth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _ := invoke(t, JWTAuth(testSecret), "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	access, err := utils.NewAccessToken("other-secret", model.User{ID: 1, Role: model.RoleUser}, 1)
	require.NoError(t, err)

	rec, _ := invoke(t, JWTAuth(testSecret), "Bearer "+access.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  1,
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec, _ := invoke(t, JWTAuth(testSecret), "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthInjectsIdentityClaims(t *testing.T) {
	u := model.User{ID: 42, Username: "jordan", Email: "jordan@example.com", Role: model.RoleAdmin}
	access, err := utils.NewAccessToken(testSecret, u, 1)
	require.NoError(t, err)

	rec, c := invoke(t, JWTAuth(testSecret), "Bearer "+access.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	// JWT numeric claims decode as float64.
	assert.Equal(t, float64(42), c.Get("user_id"))
	assert.Equal(t, "jordan", c.Get("username"))
	assert.Equal(t, "jordan@example.com", c.Get("email"))
	assert.Equal(t, "admin", c.Get("role"))
}
