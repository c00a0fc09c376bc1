// Package handler implements the HTTP layer of the Catalog API.
//
// Handlers translate HTTP requests into gateway calls and gateway
// results into responses. They never contain business logic: payloads
// are passed to the service layer as untyped text for it to parse and
// validate, and every service error funnels through MapServiceError
// so status codes stay consistent.
//
// Successful responses use a {"data": ...} envelope; collections add
// a count and always encode an array, never null. Errors are RFC 9457
// Problem Details.
package handler
