package rest

import (
	"context"
	"net/http"
	"testing"

	"storeRating/domain"
	"storeRating/internal/middleware"
	"storeRating/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminUsers struct {
	users      map[uint]domain.User
	lastFilter domain.UserFilter
	lastPatch  domain.UserPatch
}

func (f *fakeAdminUsers) CreateUser(ctx context.Context, user *domain.User) (domain.User, error) {
	u := *user
	u.ID = uint(len(f.users) + 1)
	u.Password = ""
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeAdminUsers) GetAllUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	f.lastFilter = filter
	return []domain.User{}, nil
}

func (f *fakeAdminUsers) GetUserByID(ctx context.Context, id uint) (domain.UserDetail, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.UserDetail{}, domain.ErrUserNotFound
	}
	detail := domain.UserDetail{User: u}
	if u.Role == domain.RoleStoreOwner {
		avg := domain.NewAverageRating(0)
		detail.AverageRating = &avg
	}
	return detail, nil
}

func (f *fakeAdminUsers) UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error) {
	f.lastPatch = patch
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeAdminUsers) DeleteUser(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return domain.ErrSelfDelete
	}
	if _, ok := f.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeAdminStores struct {
	fakeStoreService
	lastPatch domain.StorePatch
	created   []domain.Store
}

func (f *fakeAdminStores) CreateStore(ctx context.Context, store *domain.Store) (domain.Store, error) {
	if store.OwnerID != nil && *store.OwnerID == 99 {
		return domain.Store{}, domain.ErrInvalidStoreOwner
	}
	s := *store
	s.ID = 1
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeAdminStores) UpdateStore(ctx context.Context, id uint, patch domain.StorePatch) (domain.Store, error) {
	f.lastPatch = patch
	return domain.Store{ID: id}, nil
}

func (f *fakeAdminStores) DeleteStore(ctx context.Context, id uint) error {
	return nil
}

type fakeDashboard struct{}

func (fakeDashboard) GetStats(ctx context.Context) (domain.DashboardStats, error) {
	return domain.DashboardStats{TotalUsers: 4, TotalStores: 2, TotalRatings: 9}, nil
}

func newAdminTestEcho(users *fakeAdminUsers, stores *fakeAdminStores) *echo.Echo {
	e := newTestEcho()
	h := NewAdminHandler(users, stores, fakeDashboard{}, utils.NewValidator(), testTimeout)

	admin := e.Group("/admin", middleware.AuthMiddleware(testTokens), middleware.AdminOnly())
	admin.GET("/dashboard", h.Dashboard)
	admin.POST("/users", h.CreateUser)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:id", h.GetUser)
	admin.PUT("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.POST("/stores", h.CreateStore)
	admin.GET("/stores", h.ListStores)
	admin.GET("/stores/:id", h.GetStore)
	admin.PUT("/stores/:id", h.UpdateStore)
	admin.DELETE("/stores/:id", h.DeleteStore)
	return e
}

func newAdminFixture() (*fakeAdminUsers, *fakeAdminStores) {
	users := &fakeAdminUsers{users: map[uint]domain.User{
		1: {ID: 1, Name: "Administrator Account One", Email: "admin@example.com", Role: domain.RoleAdmin},
		2: {ID: 2, Name: "Store Owner Account Two", Email: "owner@example.com", Role: domain.RoleStoreOwner},
	}}
	return users, &fakeAdminStores{}
}

func TestAdminRequiresAdminRole(t *testing.T) {
	e := newAdminTestEcho(newAdminFixture())

	assert.Equal(t, http.StatusUnauthorized, request(e, http.MethodGet, "/admin/dashboard", "", "").Code)
	assert.Equal(t, http.StatusForbidden, request(e, http.MethodGet, "/admin/dashboard", "", bearer(t, 2, "store_owner")).Code)

	rec := request(e, http.MethodGet, "/admin/dashboard", "", bearer(t, 1, "admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalUsers":4,"totalStores":2,"totalRatings":9}`, rec.Body.String())
}

func TestAdminDeleteSelf(t *testing.T) {
	users, stores := newAdminFixture()
	e := newAdminTestEcho(users, stores)
	auth := bearer(t, 1, "admin")

	rec := request(e, http.MethodDelete, "/admin/users/1", "", auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, users.users, uint(1))

	rec = request(e, http.MethodDelete, "/admin/users/2", "", auth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, users.users, uint(2))

	assert.Equal(t, http.StatusNotFound, request(e, http.MethodDelete, "/admin/users/2", "", auth).Code)
}

func TestAdminGetUserOwnerAverage(t *testing.T) {
	e := newAdminTestEcho(newAdminFixture())
	auth := bearer(t, 1, "admin")

	rec := request(e, http.MethodGet, "/admin/users/2", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"averageRating":0.0`)

	rec = request(e, http.MethodGet, "/admin/users/1", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "averageRating")
}

func TestAdminListUsersQuery(t *testing.T) {
	users, stores := newAdminFixture()
	e := newAdminTestEcho(users, stores)

	rec := request(e, http.MethodGet, "/admin/users?name=jo&role=store_owner&sortBy=password&sortOrder=DESC", "", bearer(t, 1, "admin"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jo", users.lastFilter.Name)
	assert.Equal(t, domain.RoleStoreOwner, users.lastFilter.Role)
	assert.Equal(t, domain.Sort{By: "password", Order: domain.SortDesc}, users.lastFilter.Sort)
}

func TestAdminUpdateUserPartial(t *testing.T) {
	users, stores := newAdminFixture()
	e := newAdminTestEcho(users, stores)
	auth := bearer(t, 1, "admin")

	rec := request(e, http.MethodPut, "/admin/users/2", `{"role":"normal_user"}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, users.lastPatch.Name)
	assert.Nil(t, users.lastPatch.Email)
	require.NotNil(t, users.lastPatch.Role)
	assert.Equal(t, domain.RoleNormalUser, *users.lastPatch.Role)

	assert.Equal(t, http.StatusBadRequest, request(e, http.MethodPut, "/admin/users/2", `{"role":"root"}`, auth).Code)
	assert.Equal(t, http.StatusBadRequest, request(e, http.MethodPut, "/admin/users/2", `{"name":"short"}`, auth).Code)
	assert.Equal(t, http.StatusNotFound, request(e, http.MethodPut, "/admin/users/7", `{}`, auth).Code)
}

func TestAdminCreateUser(t *testing.T) {
	users, stores := newAdminFixture()
	e := newAdminTestEcho(users, stores)
	auth := bearer(t, 1, "admin")

	body := `{"name":"Brand New Store Owner Person","email":"new@example.com","password":"Abc123!a","role":"store_owner"}`
	rec := request(e, http.MethodPost, "/admin/users", body, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"store_owner"`)

	body = `{"name":"Brand New Store Owner Person","email":"new@example.com","password":"abc12345"}`
	assert.Equal(t, http.StatusBadRequest, request(e, http.MethodPost, "/admin/users", body, auth).Code)
}

func TestAdminStores(t *testing.T) {
	users, stores := newAdminFixture()
	e := newAdminTestEcho(users, stores)
	auth := bearer(t, 1, "admin")

	rec := request(e, http.MethodPost, "/admin/stores", `{"name":"Corner Shop","email":"shop@example.com","address":"1 Main","owner_id":2}`, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, stores.created, 1)
	require.NotNil(t, stores.created[0].OwnerID)
	assert.EqualValues(t, 2, *stores.created[0].OwnerID)

	rec = request(e, http.MethodPost, "/admin/stores", `{"name":"Corner Shop","email":"x@example.com","address":"1 Main","owner_id":99}`, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid store owner")

	assert.Equal(t, http.StatusBadRequest,
		request(e, http.MethodPost, "/admin/stores", `{"name":"Corner Shop","email":"x@example.com"}`, auth).Code)

	rec = request(e, http.MethodPut, "/admin/stores/1", `{"owner_id":0}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stores.lastPatch.OwnerID)
	assert.Zero(t, *stores.lastPatch.OwnerID)
	assert.Nil(t, stores.lastPatch.Name)

	rec = request(e, http.MethodGet, "/admin/stores?sortBy=email", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "email", stores.lastFilter.Sort.By)

	assert.Equal(t, http.StatusOK, request(e, http.MethodGet, "/admin/stores/1", "", auth).Code)
	assert.Equal(t, http.StatusOK, request(e, http.MethodDelete, "/admin/stores/1", "", auth).Code)
}
