package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meridian/catalog/api/internal/database"
	"github.com/meridian/catalog/api/internal/model"
)

// ============================================================================
// Mocks
// ============================================================================

type mockServiceRepo struct {
	createFunc  func(ctx context.Context, svc *model.Service) error
	listFunc    func(ctx context.Context, q model.ListQuery) ([]*model.Service, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Service, error)
	updateFunc  func(ctx context.Context, svc *model.Service) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockServiceRepo) Create(ctx context.Context, svc *model.Service) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, svc)
	}
	return nil
}

func (m *mockServiceRepo) List(ctx context.Context, q model.ListQuery) ([]*model.Service, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return nil, nil
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id string) (*model.Service, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, database.ErrNotFound
}

func (m *mockServiceRepo) Update(ctx context.Context, svc *model.Service) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, svc)
	}
	return nil
}

func (m *mockServiceRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockCache struct {
	store       map[string]interface{}
	invalidated [][]string
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string]interface{})}
}

func (m *mockCache) Get(key string) (interface{}, bool) {
	v, ok := m.store[key]
	return v, ok
}

func (m *mockCache) Set(key string, value interface{}, tags ...string) {
	m.store[key] = value
}

func (m *mockCache) Invalidate(tags ...string) {
	m.invalidated = append(m.invalidated, tags)
}

func (m *mockCache) invalidatedTags() []string {
	var all []string
	for _, tags := range m.invalidated {
		all = append(all, tags...)
	}
	return all
}

func newTestCatalog(repo *mockServiceRepo, cache *mockCache) *CatalogService {
	return NewCatalogService(CatalogServiceConfig{Repo: repo, Cache: cache})
}

func validInput() ServiceInput {
	return ServiceInput{
		Name:        "Consulting",
		Description: "1hr session",
		Price:       "99.50",
		IsActive:    "true",
		IsFeatured:  "false",
	}
}

// ============================================================================
// Create
// ============================================================================

func TestCreate_Success(t *testing.T) {
	now := time.Now()
	repo := &mockServiceRepo{
		createFunc: func(ctx context.Context, svc *model.Service) error {
			svc.ID = "service:new"
			svc.CreatedAt = now
			svc.UpdatedAt = now
			return nil
		},
	}
	cache := newMockCache()

	svc, err := newTestCatalog(repo, cache).Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if svc.Price != 99.5 {
		t.Errorf("expected coerced price 99.5, got %v", svc.Price)
	}
	if !svc.IsActive || svc.IsFeatured {
		t.Errorf("unexpected flags: active=%v featured=%v", svc.IsActive, svc.IsFeatured)
	}
	if !svc.CreatedAt.Equal(svc.UpdatedAt) {
		t.Error("expected created_at == updated_at on creation")
	}

	tags := cache.invalidatedTags()
	if len(tags) != 1 || tags[0] != TagServices {
		t.Errorf("expected collection tag invalidation, got %v", tags)
	}
}

func TestCreate_DefaultsFlagsWhenAbsent(t *testing.T) {
	var captured *model.Service
	repo := &mockServiceRepo{
		createFunc: func(ctx context.Context, svc *model.Service) error {
			captured = svc
			return nil
		},
	}

	in := validInput()
	in.IsActive = ""
	in.IsFeatured = "banana"

	if _, err := newTestCatalog(repo, newMockCache()).Create(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !captured.IsActive {
		t.Error("isActive should default to true when absent")
	}
	if captured.IsFeatured {
		t.Error("isFeatured should default to false when unparseable")
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*ServiceInput)
		wantField string
	}{
		{"empty name", func(in *ServiceInput) { in.Name = "" }, "name"},
		{"whitespace name", func(in *ServiceInput) { in.Name = "   " }, "name"},
		{"empty description", func(in *ServiceInput) { in.Description = "" }, "description"},
		{"unparseable price", func(in *ServiceInput) { in.Price = "ten" }, "price"},
		{"negative price", func(in *ServiceInput) { in.Price = "-1" }, "price"},
		{"infinite price", func(in *ServiceInput) { in.Price = "Inf" }, "price"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockServiceRepo{
				createFunc: func(ctx context.Context, svc *model.Service) error {
					t.Fatal("validation failure must not reach storage")
					return nil
				},
			}
			cache := newMockCache()

			in := validInput()
			tc.mutate(&in)

			_, err := newTestCatalog(repo, cache).Create(context.Background(), in)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, fe := range verr.Fields {
				if fe.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tc.wantField, verr.Fields)
			}
			if len(cache.invalidated) != 0 {
				t.Error("validation failure must not invalidate cache")
			}
		})
	}
}

func TestCreate_StorageFailureIsGeneric(t *testing.T) {
	repo := &mockServiceRepo{
		createFunc: func(ctx context.Context, svc *model.Service) error {
			return errors.New("connection refused to db-internal-host:8000")
		},
	}
	cache := newMockCache()

	_, err := newTestCatalog(repo, cache).Create(context.Background(), validInput())
	if !errors.Is(err, ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}
	if len(cache.invalidated) != 0 {
		t.Error("failed write must not invalidate cache")
	}
}

// ============================================================================
// List
// ============================================================================

func TestList_ReturnsRepoResults(t *testing.T) {
	expected := []*model.Service{{ID: "service:a", Name: "Consulting"}}
	repo := &mockServiceRepo{
		listFunc: func(ctx context.Context, q model.ListQuery) ([]*model.Service, error) {
			return expected, nil
		},
	}

	got := newTestCatalog(repo, newMockCache()).List(context.Background(), model.ListQuery{Status: model.StatusFilterAll})
	if len(got) != 1 || got[0].ID != "service:a" {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestList_EmptyOnStorageFailure(t *testing.T) {
	repo := &mockServiceRepo{
		listFunc: func(ctx context.Context, q model.ListQuery) ([]*model.Service, error) {
			return nil, database.ErrConnection
		},
	}

	got := newTestCatalog(repo, newMockCache()).List(context.Background(), model.ListQuery{Status: model.StatusFilterAll})
	if got == nil {
		t.Fatal("read path must return an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestList_ServesFromCache(t *testing.T) {
	calls := 0
	repo := &mockServiceRepo{
		listFunc: func(ctx context.Context, q model.ListQuery) ([]*model.Service, error) {
			calls++
			return []*model.Service{{ID: "service:a"}}, nil
		},
	}
	cache := newMockCache()
	catalog := newTestCatalog(repo, cache)

	q := model.ListQuery{Search: "consult", Status: model.StatusFilterActive}
	catalog.List(context.Background(), q)
	catalog.List(context.Background(), q)

	if calls != 1 {
		t.Errorf("expected repository hit once, got %d", calls)
	}
}

func TestList_NilRepositorySliceBecomesEmpty(t *testing.T) {
	// A repository may report success with a nil slice; the listing
	// contract is a non-nil array so the response encodes as [].
	repo := &mockServiceRepo{
		listFunc: func(ctx context.Context, q model.ListQuery) ([]*model.Service, error) {
			return nil, nil
		},
	}
	cache := newMockCache()

	services := newTestCatalog(repo, cache).List(context.Background(), model.ListQuery{Status: model.StatusFilterAll})
	if services == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(services) != 0 {
		t.Fatalf("expected 0 services, got %d", len(services))
	}

	// The cached value must be the non-nil slice too.
	if v, ok := cache.Get(listCacheKey(model.ListQuery{Status: model.StatusFilterAll})); ok {
		if cached, ok := v.([]*model.Service); !ok || cached == nil {
			t.Error("expected cache to hold a non-nil slice")
		}
	} else {
		t.Error("expected list result to be cached")
	}
}

func TestList_CacheKeyIgnoresWhitespaceSearch(t *testing.T) {
	// A whitespace-only search applies no constraint, so it must share a
	// cache key with the unconstrained query.
	k1 := listCacheKey(model.ListQuery{Search: "", Status: model.StatusFilterAll})
	k2 := listCacheKey(model.ListQuery{Search: "   ", Status: model.StatusFilterAll})
	k3 := listCacheKey(model.ListQuery{Search: "x", Status: model.StatusFilterAll})

	if k1 != k2 {
		t.Errorf("expected identical keys, got %q vs %q", k1, k2)
	}
	if k1 == k3 {
		t.Error("constrained query must not share a key with the unconstrained one")
	}
}

func TestList_CacheKeyNormalizesSearchTerm(t *testing.T) {
	// The repository folds the term with trim + lowercase, so spellings
	// yielding the same result set must share one cache entry.
	base := listCacheKey(model.ListQuery{Search: "spa", Status: model.StatusFilterAll})
	padded := listCacheKey(model.ListQuery{Search: "  spa  ", Status: model.StatusFilterAll})
	upper := listCacheKey(model.ListQuery{Search: "SPA", Status: model.StatusFilterAll})

	if base != padded {
		t.Errorf("expected identical keys for padded term, got %q vs %q", base, padded)
	}
	if base != upper {
		t.Errorf("expected identical keys for uppercased term, got %q vs %q", base, upper)
	}

	other := listCacheKey(model.ListQuery{Search: "sauna", Status: model.StatusFilterAll})
	if base == other {
		t.Error("different terms must not share a key")
	}
}

// ============================================================================
// Get
// ============================================================================

func TestGet_NotFound(t *testing.T) {
	repo := &mockServiceRepo{}

	_, err := newTestCatalog(repo, newMockCache()).Get(context.Background(), "service:missing")
	if !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestGet_Success(t *testing.T) {
	repo := &mockServiceRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Service, error) {
			return &model.Service{ID: id, Name: "Consulting"}, nil
		},
	}

	svc, err := newTestCatalog(repo, newMockCache()).Get(context.Background(), "service:a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.ID != "service:a" {
		t.Errorf("unexpected record: %+v", svc)
	}
}

// ============================================================================
// Update
// ============================================================================

func TestUpdate_Success(t *testing.T) {
	var captured *model.Service
	repo := &mockServiceRepo{
		updateFunc: func(ctx context.Context, svc *model.Service) error {
			captured = svc
			svc.UpdatedAt = time.Now()
			return nil
		},
	}
	cache := newMockCache()

	in := ServiceInput{Name: "X", Description: "Y", Price: "5", IsActive: "false", IsFeatured: "true"}
	svc, err := newTestCatalog(repo, cache).Update(context.Background(), "service:a", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.ID != "service:a" {
		t.Errorf("expected update of service:a, got %q", captured.ID)
	}
	if svc.Name != "X" || svc.Price != 5 || svc.IsActive || !svc.IsFeatured {
		t.Errorf("expected full replace of mutable fields, got %+v", svc)
	}

	tags := cache.invalidatedTags()
	if len(tags) != 1 || tags[0] != TagServices {
		t.Errorf("expected collection tag invalidation, got %v", tags)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockServiceRepo{
		updateFunc: func(ctx context.Context, svc *model.Service) error {
			return database.ErrNotFound
		},
	}
	cache := newMockCache()

	_, err := newTestCatalog(repo, cache).Update(context.Background(), "service:missing", validInput())
	if !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound, got %v", err)
	}
	if len(cache.invalidated) != 0 {
		t.Error("failed update must not invalidate cache")
	}
}

func TestUpdate_ValidationRunsBeforeStorage(t *testing.T) {
	repo := &mockServiceRepo{
		updateFunc: func(ctx context.Context, svc *model.Service) error {
			t.Fatal("validation failure must not reach storage")
			return nil
		},
	}

	in := validInput()
	in.Price = "not-a-number"

	_, err := newTestCatalog(repo, newMockCache()).Update(context.Background(), "service:a", in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

// ============================================================================
// Delete
// ============================================================================

func TestDelete_Success_InvalidatesBothTags(t *testing.T) {
	repo := &mockServiceRepo{}
	cache := newMockCache()

	if err := newTestCatalog(repo, cache).Delete(context.Background(), "service:a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags := cache.invalidatedTags()
	if len(tags) != 2 || tags[0] != TagServices || tags[1] != TagServicesPage {
		t.Errorf("expected collection and page tags invalidated, got %v", tags)
	}
}

func TestDelete_SecondDeleteFails(t *testing.T) {
	deleted := false
	repo := &mockServiceRepo{
		deleteFunc: func(ctx context.Context, id string) error {
			if deleted {
				return database.ErrNotFound
			}
			deleted = true
			return nil
		},
	}
	catalog := newTestCatalog(repo, newMockCache())

	if err := catalog.Delete(context.Background(), "service:a"); err != nil {
		t.Fatalf("first delete should succeed, got %v", err)
	}
	if err := catalog.Delete(context.Background(), "service:a"); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("second delete must fail with ErrServiceNotFound, got %v", err)
	}
}
