// Package sqlxrepos implements the storage repositories on postgres via sqlx.
package sqlxrepos

import (
	"strings"

	"github.com/Fukuzeya/zim-student-companion-sub000/core"
)

// orderByClause renders orderings as an ORDER BY clause. Fields outside the
// allowed set are ignored rather than interpolated into the query.
func orderByClause(orderings []core.DBOrdering, allowed map[string]bool, fallback string) string {
	var parts []string
	for _, o := range orderings {
		if allowed[o.Field] {
			parts = append(parts, o.String())
		}
	}
	if len(parts) == 0 {
		parts = append(parts, fallback)
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}
