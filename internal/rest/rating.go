package rest

import (
	"context"
	"net/http"
	"time"

	"storeRating/domain"
	"storeRating/internal/middleware"
	"storeRating/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RatingService interface {
	SubmitOrUpdate(ctx context.Context, userID, storeID uint, value int) (domain.Rating, error)
	GetUserRatings(ctx context.Context, userID uint) ([]domain.UserRating, error)
}

type RatingHandler struct {
	ratingService RatingService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewRatingHandler(ratingService RatingService, validate *validator.Validate, timeout time.Duration) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validate,
		timeout:       timeout,
	}
}

type SubmitRatingRequest struct {
	StoreID uint `json:"store_id" validate:"required"`
	Rating  int  `json:"rating" validate:"required,min=1,max=5"`
}

// Submit creates the caller's rating for a store or replaces the existing one.
func (h *RatingHandler) Submit(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind rating request", err)
		return badRequest(c, "invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate rating request", err)
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rating, err := h.ratingService.SubmitOrUpdate(ctx, userID, req.StoreID, req.Rating)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rating)
}

func (h *RatingHandler) MyRatings(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ratings, err := h.ratingService.GetUserRatings(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ratings)
}
