package postgres

import (
	"context"
	"errors"
	"fmt"

	"storeRating/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert inserts the rating or, when the (user_id, store_id) pair already has
// one, overwrites its value in place. The statement is a single
// INSERT .. ON CONFLICT DO UPDATE, so concurrent submissions for the same pair
// always converge on one row. rating is refreshed from RETURNING *, keeping the
// existing row id and created_at on update.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Omit("User", "Store").
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"rating"}),
			},
			clause.Returning{},
		).
		Create(rating).Error
	if err != nil {
		return translateError(err, "upsert rating", nil, nil)
	}

	return nil
}

// FindByUser lists the user's ratings, newest first.
func (r *RatingRepository) FindByUser(ctx context.Context, userID uint) ([]domain.UserRating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ratings := []domain.UserRating{}
	err := r.DB.WithContext(ctx).
		Table("ratings r").
		Select("r.id, r.rating, r.store_id, s.name AS store_name, s.address AS store_address, r.created_at").
		Joins("JOIN stores s ON s.id = r.store_id").
		Where("r.user_id = ?", userID).
		Order("r.created_at DESC, r.id DESC").
		Scan(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user ratings: %w", err)
	}

	return ratings, nil
}

// FindUserRating returns the user's rating value for the store, or nil when there is none.
func (r *RatingRepository) FindUserRating(ctx context.Context, userID, storeID uint) (*int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row domain.Rating
	err := r.DB.WithContext(ctx).
		Select("rating").
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user rating: %w", err)
	}

	return &row.Rating, nil
}

// FindByOwner lists every rating on the owner's stores with the rater and store names, newest first.
func (r *RatingRepository) FindByOwner(ctx context.Context, ownerID uint) ([]domain.OwnerRating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ratings := []domain.OwnerRating{}
	err := r.DB.WithContext(ctx).
		Table("ratings r").
		Select("r.id, r.user_id, r.store_id, r.rating, r.created_at, "+
			"u.name AS user_name, u.email AS user_email, s.name AS store_name").
		Joins("JOIN stores s ON s.id = r.store_id").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("s.owner_id = ?", ownerID).
		Order("r.created_at DESC, r.id DESC").
		Scan(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find owner ratings: %w", err)
	}

	return ratings, nil
}

// AverageForOwner pools every rating across all of the owner's stores. Zero when there are none.
func (r *RatingRepository) AverageForOwner(ctx context.Context, ownerID uint) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var avg float64
	err := r.DB.WithContext(ctx).
		Table("ratings r").
		Select("COALESCE(AVG(r.rating), 0)::float8").
		Joins("JOIN stores s ON s.id = r.store_id").
		Where("s.owner_id = ?", ownerID).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average owner ratings: %w", err)
	}

	return avg, nil
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&domain.Rating{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}

	return n, nil
}
