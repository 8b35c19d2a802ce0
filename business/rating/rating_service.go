package rating

import (
	"context"
	"errors"
	"fmt"

	"storeRating/domain"
	"storeRating/pkg/logger"
	"storeRating/pkg/metrics"
)

// RatingRepository contract interface
type RatingRepository interface {
	Upsert(ctx context.Context, rating *domain.Rating) error
	FindByUser(ctx context.Context, userID uint) ([]domain.UserRating, error)
}

// StoreRepository contract interface
type StoreRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Store, error)
}

type ratingService struct {
	ratingRepo RatingRepository
	storeRepo  StoreRepository
}

func NewRatingService(ratingRepo RatingRepository, storeRepo StoreRepository) *ratingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
	}
}

// SubmitOrUpdate records the user's rating for a store. A second submission
// for the same store overwrites the first; id and created_at are kept.
func (s *ratingService) SubmitOrUpdate(ctx context.Context, userID, storeID uint, value int) (domain.Rating, error) {
	if !domain.ValidRating(value) {
		logger.Error("Invalid rating value", "rating", value)
		return domain.Rating{}, domain.ErrInvalidRating
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when submit rating")
		return domain.Rating{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		logger.Error("Failed to find rated store", err)
		return domain.Rating{}, err
	}

	rating := domain.Rating{
		UserID:  userID,
		StoreID: storeID,
		Rating:  value,
	}

	if err := s.ratingRepo.Upsert(ctx, &rating); err != nil {
		logger.Error("Failed to upsert rating", err)
		if errors.Is(err, domain.ErrReferenceMissing) {
			return domain.Rating{}, domain.ErrStoreNotFound
		}
		return domain.Rating{}, err
	}

	metrics.ObserveRating(rating.Rating)

	return rating, nil
}

// GetUserRatings lists the user's ratings, newest first.
func (s *ratingService) GetUserRatings(ctx context.Context, userID uint) ([]domain.UserRating, error) {
	ratings, err := s.ratingRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user ratings", err)
		return nil, err
	}

	return ratings, nil
}
