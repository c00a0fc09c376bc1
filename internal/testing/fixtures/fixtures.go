// Package fixtures provides test data factories for acceptance
// testing.
//
// Each factory method creates entities with sensible defaults while
// allowing customization via option functions. Factories handle
// database insertion and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	svc := f.CreateService(t)
//	inactive := f.CreateService(t, fixtures.Inactive())
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/meridian/catalog/api/internal/database"
	"github.com/meridian/catalog/api/internal/model"
	"github.com/meridian/catalog/api/internal/repository"
)

// Factory creates test entities in the database
type Factory struct {
	repo *repository.ServiceRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		repo: repository.NewServiceRepository(db),
	}
}

// randomID generates a random hex suffix for unique names
func randomID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ServiceOpts customizes service creation
type ServiceOpts struct {
	Name        string
	Description string
	Price       float64
	IsActive    bool
	IsFeatured  bool
}

// Inactive marks the created service inactive
func Inactive() func(*ServiceOpts) {
	return func(o *ServiceOpts) { o.IsActive = false }
}

// Featured marks the created service featured
func Featured() func(*ServiceOpts) {
	return func(o *ServiceOpts) { o.IsFeatured = true }
}

// Named sets the service name
func Named(name string) func(*ServiceOpts) {
	return func(o *ServiceOpts) { o.Name = name }
}

// Described sets the service description
func Described(desc string) func(*ServiceOpts) {
	return func(o *ServiceOpts) { o.Description = desc }
}

// Priced sets the service price
func Priced(price float64) func(*ServiceOpts) {
	return func(o *ServiceOpts) { o.Price = price }
}

// CreateService creates a service with optional customizations
func (f *Factory) CreateService(t *testing.T, opts ...func(*ServiceOpts)) *model.Service {
	t.Helper()

	o := &ServiceOpts{
		Name:        fmt.Sprintf("Service %s", randomID()),
		Description: "A test service",
		Price:       50.0,
		IsActive:    true,
	}
	for _, fn := range opts {
		fn(o)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := &model.Service{
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price,
		IsActive:    o.IsActive,
		IsFeatured:  o.IsFeatured,
	}

	if err := f.repo.Create(ctx, svc); err != nil {
		t.Fatalf("fixtures: creating service: %v", err)
	}

	return svc
}
