package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/meridian/catalog/api/internal/database"
	"github.com/meridian/catalog/api/internal/model"
)

// Invalidation tags for cached service reads. Every successful
// mutation invalidates the collection tag; delete also invalidates
// the listing page tag.
const (
	TagServices     = "services"
	TagServicesPage = "services:page"
)

// ServiceRepository defines the interface for service storage
type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	List(ctx context.Context, q model.ListQuery) ([]*model.Service, error)
	GetByID(ctx context.Context, id string) (*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id string) error
}

// ResultCache caches read results under invalidation tags
type ResultCache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, tags ...string)
	Invalidate(tags ...string)
}

// CatalogService is the gateway for all service CRUD. It validates
// input at the boundary, delegates persistence to the repository, and
// notifies the injected cache of invalidations after every successful
// mutation. All errors are recovered here; nothing below this layer
// reaches handlers.
type CatalogService struct {
	repo  ServiceRepository
	cache ResultCache
}

// CatalogServiceConfig holds dependencies for CatalogService
type CatalogServiceConfig struct {
	Repo  ServiceRepository
	Cache ResultCache
}

// NewCatalogService creates a new catalog service
func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	return &CatalogService{
		repo:  cfg.Repo,
		cache: cfg.Cache,
	}
}

// Create validates the input and inserts a new service. Validation
// failures perform no write and report the failing fields; storage
// failures are logged and surfaced as a generic ErrStorageFailure.
func (s *CatalogService) Create(ctx context.Context, input ServiceInput) (*model.Service, error) {
	d, verr := parseServiceInput(input)
	if verr != nil {
		return nil, verr
	}

	svc := &model.Service{
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		IsActive:    d.IsActive,
		IsFeatured:  d.IsFeatured,
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		slog.Error("creating service",
			slog.String("name", d.Name),
			slog.String("error", err.Error()),
		)
		return nil, ErrStorageFailure
	}

	s.cache.Invalidate(TagServices)
	return svc, nil
}

// List returns services matching the query, newest first. The read
// path is non-fatal: persistence failures are logged and an empty
// slice is returned so the listing always renders.
func (s *CatalogService) List(ctx context.Context, q model.ListQuery) []*model.Service {
	key := listCacheKey(q)
	if v, ok := s.cache.Get(key); ok {
		if services, ok := v.([]*model.Service); ok {
			return services
		}
	}

	services, err := s.repo.List(ctx, q)
	if err != nil {
		slog.Error("listing services",
			slog.String("search", q.Search),
			slog.String("status", string(q.Status)),
			slog.String("error", err.Error()),
		)
		return []*model.Service{}
	}

	// A nil slice would render as JSON null; the listing contract is
	// an array, possibly empty.
	if services == nil {
		services = []*model.Service{}
	}

	s.cache.Set(key, services, TagServices, TagServicesPage)
	return services
}

// Get returns a single service by ID
func (s *CatalogService) Get(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		slog.Error("fetching service",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, ErrStorageFailure
	}
	return svc, nil
}

// Update validates the input and replaces all five mutable fields of
// an existing service, refreshing updated_at. Updating a nonexistent
// id is a failure.
func (s *CatalogService) Update(ctx context.Context, id string, input ServiceInput) (*model.Service, error) {
	d, verr := parseServiceInput(input)
	if verr != nil {
		return nil, verr
	}

	svc := &model.Service{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		IsActive:    d.IsActive,
		IsFeatured:  d.IsFeatured,
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		slog.Error("updating service",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, ErrStorageFailure
	}

	s.cache.Invalidate(TagServices)
	return svc, nil
}

// Delete removes a service by ID. Deleting a nonexistent id is a
// failure, never a silent no-op. Both the collection tag and the
// listing page tag are invalidated.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrServiceNotFound
		}
		slog.Error("deleting service",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return ErrStorageFailure
	}

	s.cache.Invalidate(TagServices, TagServicesPage)
	return nil
}

// listCacheKey builds a canonical cache key for a list query. The
// search term is trimmed and lowercased exactly as the repository's
// predicate folds it, so spellings that produce the same result set
// share one entry; queries that apply no constraint share a key
// regardless of how the absence was spelled.
func listCacheKey(q model.ListQuery) string {
	v := url.Values{}
	if q.HasSearch() {
		v.Set("search", strings.ToLower(strings.TrimSpace(q.Search)))
	}
	if q.Status == model.StatusFilterActive || q.Status == model.StatusFilterInactive {
		v.Set("status", string(q.Status))
	}
	return "services:list?" + v.Encode()
}
