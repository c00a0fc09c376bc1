// Package cache provides a tag-keyed in-memory cache for read results.
//
// Entries are stored under an exact cache key (one key per distinct
// list query) and labeled with invalidation tags. Mutations never
// touch individual keys; they invalidate tags, which drops every
// entry labeled with that tag at once. Entries also expire after a
// TTL as a backstop, swept by a background cleanup loop.
//
// The gateway owns the tag vocabulary; this package only stores and
// drops opaque values.
package cache
