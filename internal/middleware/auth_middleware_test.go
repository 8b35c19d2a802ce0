package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storeRating/domain"
	"storeRating/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEcho(tokens *utils.JWTManager) *echo.Echo {
	e := echo.New()
	whoami := func(c echo.Context) error {
		id, ok := CurrentUserID(c)
		if !ok {
			return c.String(http.StatusOK, "anonymous")
		}
		role, _ := CurrentRole(c)
		return c.JSON(http.StatusOK, map[string]any{"id": id, "role": role})
	}

	e.GET("/private", whoami, AuthMiddleware(tokens))
	e.GET("/optional", whoami, OptionalAuth(tokens))
	e.GET("/admin", whoami, AuthMiddleware(tokens), AdminOnly())
	e.GET("/owner", whoami, AuthMiddleware(tokens), RequireRole(domain.RoleStoreOwner))
	return e
}

func do(e *echo.Echo, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewJWTManager("secret", time.Hour)
	e := newAuthEcho(tokens)

	token, err := tokens.GenerateJWT(7, "normal_user")
	require.NoError(t, err)

	rec := do(e, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"role":"normal_user"}`, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(e, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/private", "Token "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/private", "Bearer garbage").Code)

	other, err := utils.NewJWTManager("other", time.Hour).GenerateJWT(7, "admin")
	require.NoError(t, err)
	rec = do(e, "/private", "Bearer "+other)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestOptionalAuth(t *testing.T) {
	tokens := utils.NewJWTManager("secret", time.Hour)
	e := newAuthEcho(tokens)

	rec := do(e, "/optional", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())

	token, err := tokens.GenerateJWT(3, "store_owner")
	require.NoError(t, err)
	rec = do(e, "/optional", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":3`)

	assert.Equal(t, http.StatusUnauthorized, do(e, "/optional", "Bearer garbage").Code)
}

func TestRequireRole(t *testing.T) {
	tokens := utils.NewJWTManager("secret", time.Hour)
	e := newAuthEcho(tokens)

	admin, err := tokens.GenerateJWT(1, "admin")
	require.NoError(t, err)
	owner, err := tokens.GenerateJWT(2, "store_owner")
	require.NoError(t, err)
	user, err := tokens.GenerateJWT(3, "normal_user")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(e, "/admin", "Bearer "+admin).Code)
	assert.Equal(t, http.StatusForbidden, do(e, "/admin", "Bearer "+owner).Code)
	assert.Equal(t, http.StatusForbidden, do(e, "/admin", "Bearer "+user).Code)

	assert.Equal(t, http.StatusOK, do(e, "/owner", "Bearer "+owner).Code)
	assert.Equal(t, http.StatusForbidden, do(e, "/owner", "Bearer "+admin).Code)
}

func TestTokenWithUnknownRole(t *testing.T) {
	tokens := utils.NewJWTManager("secret", time.Hour)
	e := newAuthEcho(tokens)

	token, err := tokens.GenerateJWT(1, "superuser")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/private", "Bearer "+token).Code)
}
