package repository

import (
	"strings"

	"github.com/meridian/catalog/api/internal/model"
)

// buildListQuery translates a ListQuery into a SurrealQL SELECT.
//
// The status and text constraint classes combine with AND; within the
// text constraint, name and description combine with OR. Matching is
// case-insensitive via simple lowercase folding on both sides. Results
// are ordered newest-first with record id as the deterministic
// tie-breaker, and no LIMIT is applied.
func buildListQuery(q model.ListQuery) (string, map[string]interface{}) {
	conds := make([]string, 0, 2)
	vars := make(map[string]interface{})

	switch q.Status {
	case model.StatusFilterActive:
		conds = append(conds, "is_active = $is_active")
		vars["is_active"] = true
	case model.StatusFilterInactive:
		conds = append(conds, "is_active = $is_active")
		vars["is_active"] = false
	}

	if q.HasSearch() {
		conds = append(conds,
			"(string::contains(string::lowercase(name), $needle) OR string::contains(string::lowercase(description), $needle))")
		vars["needle"] = strings.ToLower(strings.TrimSpace(q.Search))
	}

	query := "SELECT * FROM service"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	return query, vars
}
