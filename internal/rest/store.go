package rest

import (
	"context"
	"net/http"
	"time"

	"storeRating/domain"
	"storeRating/internal/middleware"
	"storeRating/pkg/logger"

	"github.com/labstack/echo/v4"
)

type StoreService interface {
	ListStores(ctx context.Context, filter domain.StoreFilter) ([]domain.StoreWithRating, error)
	GetStoreDetail(ctx context.Context, id uint, callerID *uint) (domain.StoreWithRating, error)
	GetOwnerDashboard(ctx context.Context, ownerID uint) (domain.OwnerDashboard, error)
}

type StoreHandler struct {
	storeService StoreService
	timeout      time.Duration
}

func NewStoreHandler(storeService StoreService, timeout time.Duration) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		timeout:      timeout,
	}
}

// StoreQuery is the filter and sort query string shared by public and admin store listings.
type StoreQuery struct {
	Search    string `query:"search"`
	Name      string `query:"name"`
	Email     string `query:"email"`
	Address   string `query:"address"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

func (q StoreQuery) Filter() domain.StoreFilter {
	return domain.StoreFilter{
		Search:  q.Search,
		Name:    q.Name,
		Email:   q.Email,
		Address: q.Address,
		Sort:    domain.NewSort(q.SortBy, q.SortOrder),
	}
}

func (h *StoreHandler) ListStores(c echo.Context) error {
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

// GetStore answers anonymous callers too; authenticated callers also get user_rating.
func (h *StoreHandler) GetStore(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid store id")
	}

	var callerID *uint
	if uid, ok := middleware.CurrentUserID(c); ok {
		callerID = &uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, err := h.storeService.GetStoreDetail(ctx, id, callerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) OwnerDashboard(c echo.Context) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dashboard, err := h.storeService.GetOwnerDashboard(ctx, ownerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboard)
}
