package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storeRating/domain"
	"storeRating/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// StoreRepository contract interface
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	FindByID(ctx context.Context, id uint) (domain.Store, error)
	FindAllWithRating(ctx context.Context, filter domain.StoreFilter) ([]domain.StoreWithRating, error)
	FindByIDWithRating(ctx context.Context, id uint) (domain.StoreWithRating, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.StoreSummary, error)
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id uint) error
}

// RatingRepository contract interface
type RatingRepository interface {
	FindUserRating(ctx context.Context, userID, storeID uint) (*int, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]domain.OwnerRating, error)
	AverageForOwner(ctx context.Context, ownerID uint) (float64, error)
}

// UserRepository is used to vet store owners.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type storeService struct {
	storeRepo  StoreRepository
	ratingRepo RatingRepository
	userRepo   UserRepository
	validate   *validator.Validate
}

func NewStoreService(storeRepo StoreRepository, ratingRepo RatingRepository, userRepo UserRepository, validate *validator.Validate) *storeService {
	return &storeService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		validate:   validate,
	}
}

func (s *storeService) ListStores(ctx context.Context, filter domain.StoreFilter) ([]domain.StoreWithRating, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list stores")
		return nil, fmt.Errorf("context error: %w", err)
	}

	filter.Search = strings.TrimSpace(filter.Search)

	stores, err := s.storeRepo.FindAllWithRating(ctx, filter)
	if err != nil {
		logger.Error("Failed to find stores", err)
		return nil, err
	}

	return stores, nil
}

// GetStoreDetail returns one store with its aggregates. When callerID is set
// the caller's own rating, if any, is attached.
func (s *storeService) GetStoreDetail(ctx context.Context, id uint, callerID *uint) (domain.StoreWithRating, error) {
	store, err := s.storeRepo.FindByIDWithRating(ctx, id)
	if err != nil {
		logger.Error("Failed to find store", err)
		return domain.StoreWithRating{}, err
	}

	if callerID != nil {
		rating, err := s.ratingRepo.FindUserRating(ctx, *callerID, id)
		if err != nil {
			logger.Error("Failed to find user rating", err)
			return domain.StoreWithRating{}, err
		}
		store.UserRating = rating
	}

	return store, nil
}

// GetOwnerDashboard lists the owner's stores, every rating on them and the
// pooled average across all of them. An owner without stores gets the empty dashboard.
func (s *storeService) GetOwnerDashboard(ctx context.Context, ownerID uint) (domain.OwnerDashboard, error) {
	dashboard := domain.OwnerDashboard{
		Stores:  []domain.StoreSummary{},
		Ratings: []domain.OwnerRating{},
	}

	stores, err := s.storeRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		logger.Error("Failed to find owner stores", err)
		return domain.OwnerDashboard{}, err
	}
	if len(stores) == 0 {
		return dashboard, nil
	}
	dashboard.Stores = stores

	ratings, err := s.ratingRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		logger.Error("Failed to find owner ratings", err)
		return domain.OwnerDashboard{}, err
	}
	if ratings != nil {
		dashboard.Ratings = ratings
	}

	avg, err := s.ratingRepo.AverageForOwner(ctx, ownerID)
	if err != nil {
		logger.Error("Failed to average owner ratings", err)
		return domain.OwnerDashboard{}, err
	}
	dashboard.AverageRating = domain.NewAverageRating(avg)

	return dashboard, nil
}

func (s *storeService) check(value any, rule, message string) error {
	if err := s.validate.Var(value, rule); err != nil {
		logger.Error("Validation failed", "detail", message, err)
		return domain.NewError(domain.ErrInvalidInput, message)
	}
	return nil
}

// resolveOwner returns nil for no owner, otherwise the id of a user holding store_owner.
func (s *storeService) resolveOwner(ctx context.Context, ownerID *uint) (*uint, error) {
	if ownerID == nil || *ownerID == 0 {
		return nil, nil
	}

	owner, err := s.userRepo.FindByID(ctx, *ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Error("Store owner not found", "owner_id", *ownerID)
			return nil, domain.ErrInvalidStoreOwner
		}
		logger.Error("Failed to find store owner", err)
		return nil, err
	}

	if owner.Role != domain.RoleStoreOwner {
		logger.Error("User is not a store owner", "owner_id", owner.ID, "role", owner.Role)
		return nil, domain.ErrInvalidStoreOwner
	}

	id := owner.ID
	return &id, nil
}

func (s *storeService) CreateStore(ctx context.Context, store *domain.Store) (domain.Store, error) {
	store.Name = strings.TrimSpace(store.Name)
	store.Email = strings.ToLower(strings.TrimSpace(store.Email))
	store.Address = strings.TrimSpace(store.Address)

	if err := s.check(store.Name, "required,max=255", "store name is required"); err != nil {
		return domain.Store{}, err
	}
	if err := s.check(store.Email, "required,email,max=255", "valid email is required"); err != nil {
		return domain.Store{}, err
	}
	if err := s.check(store.Address, "required,max=400", "address is required and cannot exceed 400 characters"); err != nil {
		return domain.Store{}, err
	}

	ownerID, err := s.resolveOwner(ctx, store.OwnerID)
	if err != nil {
		return domain.Store{}, err
	}

	newStore := domain.Store{
		Name:    store.Name,
		Email:   store.Email,
		Address: store.Address,
		OwnerID: ownerID,
	}

	if err := s.storeRepo.Create(ctx, &newStore); err != nil {
		logger.Error("Failed to create store", err)
		return domain.Store{}, err
	}

	return newStore, nil
}

func (s *storeService) UpdateStore(ctx context.Context, id uint, patch domain.StorePatch) (domain.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find store", err)
		return domain.Store{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := s.check(name, "required,max=255", "store name is required"); err != nil {
			return domain.Store{}, err
		}
		store.Name = name
	}

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if err := s.check(email, "required,email,max=255", "valid email is required"); err != nil {
			return domain.Store{}, err
		}
		store.Email = email
	}

	if patch.Address != nil {
		address := strings.TrimSpace(*patch.Address)
		if err := s.check(address, "required,max=400", "address is required and cannot exceed 400 characters"); err != nil {
			return domain.Store{}, err
		}
		store.Address = address
	}

	if patch.OwnerID != nil {
		ownerID, err := s.resolveOwner(ctx, patch.OwnerID)
		if err != nil {
			return domain.Store{}, err
		}
		store.OwnerID = ownerID
	}

	if err := s.storeRepo.Update(ctx, &store); err != nil {
		logger.Error("Failed to update store", err)
		return domain.Store{}, err
	}

	return store, nil
}

func (s *storeService) DeleteStore(ctx context.Context, id uint) error {
	if err := s.storeRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete store", err)
		return err
	}

	return nil
}
