package store

import (
	"context"
	"encoding/json"
	"testing"

	"storeRating/domain"
	"storeRating/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStoreRepo struct {
	stores     map[uint]domain.Store
	ratings    map[uint][]int
	nextID     uint
	lastFilter domain.StoreFilter
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: map[uint]domain.Store{}, ratings: map[uint][]int{}, nextID: 1}
}

func (f *fakeStoreRepo) Create(ctx context.Context, store *domain.Store) error {
	for _, s := range f.stores {
		if s.Email == store.Email {
			return domain.ErrEmailInUse
		}
	}
	store.ID = f.nextID
	f.nextID++
	f.stores[store.ID] = *store
	return nil
}

func (f *fakeStoreRepo) FindByID(ctx context.Context, id uint) (domain.Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return domain.Store{}, domain.ErrStoreNotFound
	}
	return s, nil
}

func (f *fakeStoreRepo) withRating(s domain.Store) domain.StoreWithRating {
	values := f.ratings[s.ID]
	var sum int
	for _, v := range values {
		sum += v
	}
	out := domain.StoreWithRating{ID: s.ID, Name: s.Name, Email: s.Email, Address: s.Address, OwnerID: s.OwnerID, TotalRatings: int64(len(values))}
	if len(values) > 0 {
		out.AverageRating = domain.AverageRating(float64(sum) / float64(len(values)))
	}
	return out
}

func (f *fakeStoreRepo) FindAllWithRating(ctx context.Context, filter domain.StoreFilter) ([]domain.StoreWithRating, error) {
	f.lastFilter = filter
	out := []domain.StoreWithRating{}
	for _, s := range f.stores {
		out = append(out, f.withRating(s))
	}
	return out, nil
}

func (f *fakeStoreRepo) FindByIDWithRating(ctx context.Context, id uint) (domain.StoreWithRating, error) {
	s, ok := f.stores[id]
	if !ok {
		return domain.StoreWithRating{}, domain.ErrStoreNotFound
	}
	return f.withRating(s), nil
}

func (f *fakeStoreRepo) FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.StoreSummary, error) {
	out := []domain.StoreSummary{}
	for _, s := range f.stores {
		if s.OwnerID != nil && *s.OwnerID == ownerID {
			out = append(out, domain.StoreSummary{ID: s.ID, Name: s.Name})
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) Update(ctx context.Context, store *domain.Store) error {
	if _, ok := f.stores[store.ID]; !ok {
		return domain.ErrStoreNotFound
	}
	f.stores[store.ID] = *store
	return nil
}

func (f *fakeStoreRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.stores[id]; !ok {
		return domain.ErrStoreNotFound
	}
	delete(f.stores, id)
	delete(f.ratings, id)
	return nil
}

type fakeRatingRepo struct {
	mine    map[uint]int
	byOwner []domain.OwnerRating
	avg     float64
}

func (f *fakeRatingRepo) FindUserRating(ctx context.Context, userID, storeID uint) (*int, error) {
	v, ok := f.mine[storeID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *fakeRatingRepo) FindByOwner(ctx context.Context, ownerID uint) ([]domain.OwnerRating, error) {
	return f.byOwner, nil
}

func (f *fakeRatingRepo) AverageForOwner(ctx context.Context, ownerID uint) (float64, error) {
	return f.avg, nil
}

type fakeUserRepo map[uint]domain.User

func (f fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	u, ok := f[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func newService() (*storeService, *fakeStoreRepo, *fakeRatingRepo) {
	stores := newFakeStoreRepo()
	ratings := &fakeRatingRepo{mine: map[uint]int{}}
	users := fakeUserRepo{
		1: {ID: 1, Role: domain.RoleStoreOwner},
		2: {ID: 2, Role: domain.RoleNormalUser},
	}
	return NewStoreService(stores, ratings, users, utils.NewValidator()), stores, ratings
}

func uintPtr(v uint) *uint { return &v }

func TestCreateStoreOwnerRules(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	s, err := svc.CreateStore(ctx, &domain.Store{Name: "Corner Shop", Email: "Shop@Example.com", Address: "1 Main", OwnerID: uintPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, "shop@example.com", s.Email)
	require.NotNil(t, s.OwnerID)
	assert.EqualValues(t, 1, *s.OwnerID)

	_, err = svc.CreateStore(ctx, &domain.Store{Name: "B", Email: "b@example.com", Address: "x", OwnerID: uintPtr(2)})
	assert.Equal(t, domain.ErrInvalidStoreOwner, err)

	_, err = svc.CreateStore(ctx, &domain.Store{Name: "C", Email: "c@example.com", Address: "x", OwnerID: uintPtr(99)})
	assert.Equal(t, domain.ErrInvalidStoreOwner, err)

	s, err = svc.CreateStore(ctx, &domain.Store{Name: "D", Email: "d@example.com", Address: "x", OwnerID: uintPtr(0)})
	require.NoError(t, err)
	assert.Nil(t, s.OwnerID)

	_, err = svc.CreateStore(ctx, &domain.Store{Name: "", Email: "e@example.com", Address: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateStore(ctx, &domain.Store{Name: "E", Email: "shop@example.com", Address: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStoreClearsOwner(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	s, err := svc.CreateStore(ctx, &domain.Store{Name: "Corner Shop", Email: "shop@example.com", Address: "1 Main", OwnerID: uintPtr(1)})
	require.NoError(t, err)

	name := "Renamed Shop"
	updated, err := svc.UpdateStore(ctx, s.ID, domain.StorePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Shop", updated.Name)
	require.NotNil(t, updated.OwnerID)

	updated, err = svc.UpdateStore(ctx, s.ID, domain.StorePatch{OwnerID: uintPtr(0)})
	require.NoError(t, err)
	assert.Nil(t, updated.OwnerID)

	_, err = svc.UpdateStore(ctx, s.ID, domain.StorePatch{OwnerID: uintPtr(2)})
	assert.Equal(t, domain.ErrInvalidStoreOwner, err)

	_, err = svc.UpdateStore(ctx, 999, domain.StorePatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStoreDetail(t *testing.T) {
	svc, stores, ratings := newService()
	ctx := context.Background()

	s, err := svc.CreateStore(ctx, &domain.Store{Name: "Corner Shop", Email: "shop@example.com", Address: "1 Main"})
	require.NoError(t, err)
	stores.ratings[s.ID] = []int{5, 3, 4}
	ratings.mine[s.ID] = 3

	anon, err := svc.GetStoreDetail(ctx, s.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, anon.UserRating)
	assert.EqualValues(t, 3, anon.TotalRatings)

	body, err := json.Marshal(anon)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"average_rating":4.0`)
	assert.NotContains(t, string(body), "user_rating")

	mine, err := svc.GetStoreDetail(ctx, s.ID, uintPtr(7))
	require.NoError(t, err)
	require.NotNil(t, mine.UserRating)
	assert.Equal(t, 3, *mine.UserRating)

	_, err = svc.GetStoreDetail(ctx, 999, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListStoresTrimsSearch(t *testing.T) {
	svc, stores, _ := newService()

	_, err := svc.ListStores(context.Background(), domain.StoreFilter{Search: "  coffee "})
	require.NoError(t, err)
	assert.Equal(t, "coffee", stores.lastFilter.Search)
}

func TestOwnerDashboardEmpty(t *testing.T) {
	svc, _, _ := newService()

	dash, err := svc.GetOwnerDashboard(context.Background(), 1)
	require.NoError(t, err)

	body, err := json.Marshal(dash)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stores":[],"averageRating":0,"ratings":[]}`, string(body))
}

func TestOwnerDashboard(t *testing.T) {
	svc, _, ratings := newService()
	ctx := context.Background()

	_, err := svc.CreateStore(ctx, &domain.Store{Name: "A", Email: "a@example.com", Address: "x", OwnerID: uintPtr(1)})
	require.NoError(t, err)
	_, err = svc.CreateStore(ctx, &domain.Store{Name: "B", Email: "b@example.com", Address: "x", OwnerID: uintPtr(1)})
	require.NoError(t, err)

	ratings.byOwner = []domain.OwnerRating{{ID: 2, Rating: 5}, {ID: 1, Rating: 2}}
	ratings.avg = 3.5

	dash, err := svc.GetOwnerDashboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, dash.Stores, 2)
	assert.Len(t, dash.Ratings, 2)
	assert.InDelta(t, 3.5, float64(dash.AverageRating), 0.0001)
}

func TestDeleteStore(t *testing.T) {
	svc, stores, _ := newService()
	ctx := context.Background()

	s, err := svc.CreateStore(ctx, &domain.Store{Name: "A", Email: "a@example.com", Address: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStore(ctx, s.ID))
	assert.Empty(t, stores.stores)
	assert.ErrorIs(t, svc.DeleteStore(ctx, s.ID), domain.ErrNotFound)
}
