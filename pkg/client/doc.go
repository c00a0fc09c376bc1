// Package client is a Go client for the catalog API. It pairs a thin
// HTTP client with a FilterController that debounces search input and
// maintains the listing's query state, matching the behavior of the
// dashboard UI.
package client
