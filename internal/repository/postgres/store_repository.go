package postgres

import (
	"context"
	"fmt"
	"time"

	"storeRating/domain"

	"gorm.io/gorm"
)

var storeSortColumns = map[string]string{
	"name":    "s.name",
	"email":   "s.email",
	"address": "s.address",
}

const storeAggregateColumns = "s.id, s.name, s.email, s.address, s.owner_id, " +
	"COALESCE(AVG(r.rating), 0)::float8 AS average_rating, COUNT(r.id) AS total_ratings"

type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{
		DB: db,
	}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit("Owner").Create(store).Error; err != nil {
		return translateError(err, "create store", nil, domain.ErrEmailInUse)
	}

	return nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id uint) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, fmt.Errorf("context error: %w", err)
	}

	var store domain.Store
	if err := r.DB.WithContext(ctx).First(&store, id).Error; err != nil {
		return domain.Store{}, translateError(err, "find store", domain.ErrStoreNotFound, nil)
	}

	return store, nil
}

func (r *StoreRepository) aggregate(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("stores s").
		Select(storeAggregateColumns).
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Group("s.id")
}

// FindAllWithRating lists stores with their average and count. Every supplied
// filter is a case-insensitive substring match; Search matches name or address.
func (r *StoreRepository) FindAllWithRating(ctx context.Context, filter domain.StoreFilter) ([]domain.StoreWithRating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.aggregate(ctx)
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("(s.name ILIKE ? OR s.address ILIKE ?)", pattern, pattern)
	}
	if filter.Name != "" {
		query = query.Where("s.name ILIKE ?", containsPattern(filter.Name))
	}
	if filter.Email != "" {
		query = query.Where("s.email ILIKE ?", containsPattern(filter.Email))
	}
	if filter.Address != "" {
		query = query.Where("s.address ILIKE ?", containsPattern(filter.Address))
	}

	stores := []domain.StoreWithRating{}
	err := query.Order(filter.Sort.Clause(storeSortColumns, "name", "s.id ASC")).Scan(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) FindByIDWithRating(ctx context.Context, id uint) (domain.StoreWithRating, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoreWithRating{}, fmt.Errorf("context error: %w", err)
	}

	var store domain.StoreWithRating
	result := r.aggregate(ctx).Where("s.id = ?", id).Scan(&store)
	if result.Error != nil {
		return domain.StoreWithRating{}, fmt.Errorf("failed to find store: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.StoreWithRating{}, domain.ErrStoreNotFound
	}

	return store, nil
}

func (r *StoreRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.StoreSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	stores := []domain.StoreSummary{}
	err := r.DB.WithContext(ctx).Model(&domain.Store{}).
		Select("id, name").
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Scan(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find owner stores: %w", err)
	}

	return stores, nil
}

// Update writes name, email, address and owner_id. A nil OwnerID clears the owner.
func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	store.UpdatedAt = time.Now().UTC()

	result := r.DB.WithContext(ctx).Model(&domain.Store{}).Where("id = ?", store.ID).
		Select("name", "email", "address", "owner_id", "updated_at").
		Updates(store)
	if result.Error != nil {
		return translateError(result.Error, "update store", nil, domain.ErrEmailInUse)
	}

	if result.RowsAffected == 0 {
		return domain.ErrStoreNotFound
	}

	return nil
}

// Delete removes the store together with its ratings.
func (r *StoreRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Store{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete store: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.ErrStoreNotFound
	}

	return nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&domain.Store{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count stores: %w", err)
	}

	return n, nil
}
