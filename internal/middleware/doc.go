// Package middleware provides HTTP middleware for the catalog API:
// request IDs, structured request logging, panic recovery, CORS,
// gzip compression, and token bucket rate limiting.
package middleware
