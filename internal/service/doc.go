// Package service implements the business logic for the Catalog API.
//
// CatalogService is the single gateway for service CRUD. The contract
// with its callers:
//
//   - Input arrives loose (form text) and is parsed and validated in
//     one explicit step before any domain logic runs. Validation
//     failures name the failing field and never touch storage.
//   - Storage failures are logged with operation context and surfaced
//     as a generic ErrStorageFailure; detail never leaks to callers.
//   - The list path is non-fatal: on failure it logs and returns an
//     empty result set so the dashboard still renders.
//   - Every successful mutation invalidates cache tags through an
//     injected ResultCache handle; there is no process-wide cache
//     singleton.
//
// Services depend on repository interfaces declared in this package,
// keeping the storage implementation swappable in tests.
package service
