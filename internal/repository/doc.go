// Package repository implements data access for the Catalog API.
//
// Repositories translate domain operations into SurrealQL and convert
// raw SurrealDB documents back into model types. They depend only on
// the database.Database interface, never on a concrete connection.
//
// The list path builds its WHERE clause dynamically from a
// model.ListQuery: a status equality check and a case-insensitive
// substring match across name and description, AND-combined, always
// ordered by created_at descending with id descending as tie-breaker.
//
// Repositories return database.ErrNotFound for operations that target
// a nonexistent record; classifying and logging failures is the
// service layer's job.
package repository
