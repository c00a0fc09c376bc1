// Package model defines the domain types for the Catalog API.
//
// The catalog persists a single flat collection of Service documents.
// Each service carries a record ID assigned by SurrealDB at creation,
// a timestamp pair (created_at set once, updated_at refreshed on every
// successful mutation), and two status flags.
//
// # Querying
//
// ListQuery describes the two filter axes the dashboard exposes: a
// free-text search over name and description (case-insensitive
// substring) and a tri-state status filter over is_active. The two
// axes combine with AND; the two searched fields combine with OR.
//
// # Errors
//
// API errors follow RFC 9457 Problem Details:
//
//	type ProblemDetails struct {
//	    Type   string `json:"type"`
//	    Title  string `json:"title"`
//	    Status int    `json:"status"`
//	    Detail string `json:"detail,omitempty"`
//	}
//
// Validation failures additionally carry field-level errors so the
// form can point at the offending input.
package model
