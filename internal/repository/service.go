package repository

import (
	"context"
	"fmt"

	"github.com/meridian/catalog/api/internal/database"
	"github.com/meridian/catalog/api/internal/model"
)

// ServiceRepository handles service data access
type ServiceRepository struct {
	db database.Database
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db database.Database) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create inserts a new service. The database assigns the record ID and
// both timestamps; the created record is written back into svc.
func (r *ServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	query := `
		CREATE service CONTENT {
			name: $name,
			description: $description,
			price: $price,
			is_active: $is_active,
			is_featured: $is_featured,
			created_at: time::now(),
			updated_at: time::now()
		}
	`

	vars := map[string]interface{}{
		"name":        svc.Name,
		"description": svc.Description,
		"price":       svc.Price,
		"is_active":   svc.IsActive,
		"is_featured": svc.IsFeatured,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := firstServiceRecord(result)
	if err != nil {
		return err
	}

	svc.ID = created.ID
	svc.CreatedAt = created.CreatedAt
	svc.UpdatedAt = created.UpdatedAt
	return nil
}

// List retrieves services matching the query, ordered by created_at
// descending with id descending as tie-breaker.
func (r *ServiceRepository) List(ctx context.Context, q model.ListQuery) ([]*model.Service, error) {
	query, vars := buildListQuery(q)

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, ok := extractQueryResults(result)
	if !ok {
		return []*model.Service{}, nil
	}

	services := make([]*model.Service, 0, len(records))
	for _, rec := range records {
		data, ok := rec.(map[string]interface{})
		if !ok {
			continue
		}
		services = append(services, parseServiceRecord(data))
	}
	return services, nil
}

// GetByID retrieves a service by record ID.
// Returns database.ErrNotFound if no such record exists.
func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*model.Service, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok || data["id"] == nil {
		return nil, database.ErrNotFound
	}
	return parseServiceRecord(data), nil
}

// Update replaces the five mutable fields of an existing service and
// refreshes updated_at. Returns database.ErrNotFound if the record does
// not exist. The updated record is written back into svc.
func (r *ServiceRepository) Update(ctx context.Context, svc *model.Service) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			description = $description,
			price = $price,
			is_active = $is_active,
			is_featured = $is_featured,
			updated_at = time::now()
	`

	vars := map[string]interface{}{
		"id":          svc.ID,
		"name":        svc.Name,
		"description": svc.Description,
		"price":       svc.Price,
		"is_active":   svc.IsActive,
		"is_featured": svc.IsFeatured,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	// UPDATE of a nonexistent record returns an empty result set
	updated, err := firstServiceRecord(result)
	if err != nil {
		return err
	}

	svc.CreatedAt = updated.CreatedAt
	svc.UpdatedAt = updated.UpdatedAt
	return nil
}

// Delete removes a service by record ID. Returns database.ErrNotFound
// if the record does not exist, so a second delete of the same id fails.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id) RETURN BEFORE`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	if _, err := firstServiceRecord(result); err != nil {
		return err
	}
	return nil
}

// firstServiceRecord extracts the first service record from a SurrealDB
// response, returning database.ErrNotFound when the result set is empty.
func firstServiceRecord(result []interface{}) (*model.Service, error) {
	records, ok := extractQueryResults(result)
	if !ok || len(records) == 0 {
		return nil, database.ErrNotFound
	}

	data, ok := records[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected record shape %T", database.ErrQuery, records[0])
	}
	return parseServiceRecord(data), nil
}

// parseServiceRecord converts a raw SurrealDB document into a Service
func parseServiceRecord(data map[string]interface{}) *model.Service {
	return &model.Service{
		ID:          extractRecordID(data["id"]),
		Name:        getString(data, "name"),
		Description: getString(data, "description"),
		Price:       getFloat(data, "price"),
		IsActive:    getBool(data, "is_active"),
		IsFeatured:  getBool(data, "is_featured"),
		CreatedAt:   getTime(data, "created_at"),
		UpdatedAt:   getTime(data, "updated_at"),
	}
}
