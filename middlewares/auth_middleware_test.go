package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patiponrmutl/DASystem/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, sub uint, role models.Role, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"name": "Test User",
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func doRequest(token string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	handler := func(c echo.Context) error {
		uid, _ := c.Get("user_id").(uint)
		role, _ := c.Get("role").(models.Role)
		return c.JSON(http.StatusOK, map[string]any{"user_id": uid, "role": role})
	}
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	e.GET("/protected", handler)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec := doRequest("", RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	rec := doRequest("not-a-jwt", RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{"sub": 1, "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rec := doRequest(tok, RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	tok := signToken(t, 1, models.RoleUser, -time.Hour)
	rec := doRequest(tok, RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	tok := signToken(t, 7, models.RolePrincipal, time.Hour)
	rec := doRequest(tok, RequireAuth(testSecret))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"principal"}`, rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	reviewerOnly := RequireRole(models.RoleAdmin, models.RolePrincipal)

	tests := []struct {
		role models.Role
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RolePrincipal, http.StatusOK},
		{models.RoleUser, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			tok := signToken(t, 1, tt.role, time.Hour)
			rec := doRequest(tok, RequireAuth(testSecret), reviewerOnly)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRoleWithoutAuthContext(t *testing.T) {
	// role never set → deny
	rec := doRequest("", RequireRole(models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
