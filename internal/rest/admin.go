package rest

import (
	"context"
	"net/http"
	"time"

	"storeRating/domain"
	"storeRating/internal/middleware"
	"storeRating/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AdminUserService interface {
	CreateUser(ctx context.Context, user *domain.User) (domain.User, error)
	GetAllUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	GetUserByID(ctx context.Context, id uint) (domain.UserDetail, error)
	UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error)
	DeleteUser(ctx context.Context, actorID, id uint) error
}

type AdminStoreService interface {
	ListStores(ctx context.Context, filter domain.StoreFilter) ([]domain.StoreWithRating, error)
	GetStoreDetail(ctx context.Context, id uint, callerID *uint) (domain.StoreWithRating, error)
	CreateStore(ctx context.Context, store *domain.Store) (domain.Store, error)
	UpdateStore(ctx context.Context, id uint, patch domain.StorePatch) (domain.Store, error)
	DeleteStore(ctx context.Context, id uint) error
}

type DashboardService interface {
	GetStats(ctx context.Context) (domain.DashboardStats, error)
}

type AdminHandler struct {
	userService      AdminUserService
	storeService     AdminStoreService
	dashboardService DashboardService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewAdminHandler(
	userService AdminUserService,
	storeService AdminStoreService,
	dashboardService DashboardService,
	validate *validator.Validate,
	timeout time.Duration,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		storeService:     storeService,
		dashboardService: dashboardService,
		validator:        validate,
		timeout:          timeout,
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=16,password_strength"`
	Address  string `json:"address" validate:"max=400"`
	Role     string `json:"role" validate:"omitempty,role"`
}

// UpdateUserRequest fields left out of the body are not changed.
type UpdateUserRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=20,max=60"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Address *string `json:"address" validate:"omitempty,max=400"`
	Role    *string `json:"role" validate:"omitempty,role"`
}

type UserQuery struct {
	Name      string `query:"name"`
	Email     string `query:"email"`
	Address   string `query:"address"`
	Role      string `query:"role"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID *uint  `json:"owner_id"`
}

// UpdateStoreRequest fields left out of the body are not changed; owner_id 0 removes the owner.
type UpdateStoreRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Address *string `json:"address" validate:"omitempty,max=400"`
	OwnerID *uint   `json:"owner_id"`
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.dashboardService.GetStats(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return badRequest(c, "invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate create user request", err)
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.CreateUser(ctx, &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	var q UserQuery
	if err := c.Bind(&q); err != nil {
		logger.Error("Failed to bind user query", err)
		return badRequest(c, "invalid query")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetAllUsers(ctx, domain.UserFilter{
		Name:    q.Name,
		Email:   q.Email,
		Address: q.Address,
		Role:    domain.Role(q.Role),
		Sort:    domain.NewSort(q.SortBy, q.SortOrder),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) GetUser(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return badRequest(c, "invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate update user request", err)
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	patch := domain.UserPatch{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.UpdateUser(ctx, id, patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}

	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.DeleteUser(ctx, actorID, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("User deleted successfully"))
}

func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return badRequest(c, "invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate create store request", err)
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, err := h.storeService.CreateStore(ctx, &domain.Store{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, store)
}

func (h *AdminHandler) ListStores(c echo.Context) error {
	var q StoreQuery
	if err := c.Bind(&q); err != nil {
		logger.Error("Failed to bind store query", err)
		return badRequest(c, "invalid query")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stores, err := h.storeService.ListStores(ctx, q.Filter())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stores)
}

func (h *AdminHandler) GetStore(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid store id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, err := h.storeService.GetStoreDetail(ctx, id, nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, store)
}

func (h *AdminHandler) UpdateStore(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid store id")
	}

	var req UpdateStoreRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return badRequest(c, "invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate update store request", err)
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, err := h.storeService.UpdateStore(ctx, id, domain.StorePatch{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, store)
}

func (h *AdminHandler) DeleteStore(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid store id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.storeService.DeleteStore(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Store deleted successfully"))
}
