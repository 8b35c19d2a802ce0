package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storeRating/domain"
	"storeRating/internal/middleware"
	"storeRating/internal/rest"
	"storeRating/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStoreService struct {
	callerID *uint
}

func (s *stubStoreService) ListStores(ctx context.Context, filter domain.StoreFilter) ([]domain.StoreWithRating, error) {
	return []domain.StoreWithRating{}, nil
}

func (s *stubStoreService) GetStoreDetail(ctx context.Context, id uint, callerID *uint) (domain.StoreWithRating, error) {
	s.callerID = callerID
	return domain.StoreWithRating{ID: id}, nil
}

func (s *stubStoreService) GetOwnerDashboard(ctx context.Context, ownerID uint) (domain.OwnerDashboard, error) {
	return domain.OwnerDashboard{Stores: []domain.StoreSummary{}, Ratings: []domain.OwnerRating{}}, nil
}

func newStoreRouter(svc *stubStoreService, tokens *utils.JWTManager) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	SetupStoreRoutes(e.Group("/api"), rest.NewStoreHandler(svc, time.Second), tokens)
	return e
}

func get(e *echo.Echo, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStoreListIgnoresStaleToken(t *testing.T) {
	tokens := utils.NewJWTManager("router-secret", time.Hour)
	expired, err := utils.NewJWTManager("router-secret", -time.Minute).GenerateJWT(3, "normal_user")
	require.NoError(t, err)

	e := newStoreRouter(&stubStoreService{}, tokens)

	for _, auth := range []string{"", "Bearer " + expired, "Bearer junk"} {
		rec := get(e, "/api/stores", auth)
		assert.Equal(t, http.StatusOK, rec.Code, "authorization %q", auth)
		assert.JSONEq(t, `[]`, rec.Body.String())
	}
}

func TestStoreDetailOptionalAuth(t *testing.T) {
	tokens := utils.NewJWTManager("router-secret", time.Hour)
	valid, err := tokens.GenerateJWT(3, "normal_user")
	require.NoError(t, err)

	svc := &stubStoreService{}
	e := newStoreRouter(svc, tokens)

	assert.Equal(t, http.StatusOK, get(e, "/api/stores/1", "").Code)
	assert.Nil(t, svc.callerID)

	assert.Equal(t, http.StatusOK, get(e, "/api/stores/1", "Bearer "+valid).Code)
	require.NotNil(t, svc.callerID)
	assert.EqualValues(t, 3, *svc.callerID)

	assert.Equal(t, http.StatusUnauthorized, get(e, "/api/stores/1", "Bearer junk").Code)
}

func TestOwnerDashboardRoute(t *testing.T) {
	tokens := utils.NewJWTManager("router-secret", time.Hour)
	owner, err := tokens.GenerateJWT(2, "store_owner")
	require.NoError(t, err)
	user, err := tokens.GenerateJWT(3, "normal_user")
	require.NoError(t, err)

	e := newStoreRouter(&stubStoreService{}, tokens)

	assert.Equal(t, http.StatusOK, get(e, "/api/stores/owner/dashboard", "Bearer "+owner).Code)
	assert.Equal(t, http.StatusForbidden, get(e, "/api/stores/owner/dashboard", "Bearer "+user).Code)
}
