package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/corehub/internal/domain/query"
)

// buildWhere translates a filter into a WHERE clause (without the WHERE
// keyword) plus its bind arguments. Every referenced column must belong
// to the schema; anything else is rejected before it reaches SQL.
// An empty filter yields an empty clause.
func buildWhere(f query.Filter, allowed map[string]bool) (string, []any, error) {
	var conds []string
	var args []any

	for _, p := range f.Predicates {
		if !allowed[p.Field] {
			return "", nil, fmt.Errorf("filter on unknown column %q", p.Field)
		}

		value := p.Value
		if t, ok := value.(time.Time); ok {
			value = bindTime(t)
		}

		switch p.Op {
		case query.OpEq:
			conds = append(conds, p.Field+" = ?")
			args = append(args, value)
		case query.OpEqFold:
			conds = append(conds, "LOWER("+p.Field+") = LOWER(?)")
			args = append(args, value)
		case query.OpContains:
			// INSTR sidesteps LIKE wildcard escaping in user input.
			conds = append(conds, "INSTR(LOWER("+p.Field+"), LOWER(?)) > 0")
			args = append(args, value)
		case query.OpSince:
			conds = append(conds, p.Field+" >= ?")
			args = append(args, value)
		default:
			return "", nil, fmt.Errorf("unknown predicate op %d", p.Op)
		}
	}

	if f.SearchTerm != "" && len(f.SearchFields) > 0 {
		var terms []string
		for _, field := range f.SearchFields {
			if !allowed[field] {
				return "", nil, fmt.Errorf("search on unknown column %q", field)
			}
			terms = append(terms, "INSTR(LOWER("+field+"), LOWER(?)) > 0")
			args = append(args, f.SearchTerm)
		}
		conds = append(conds, "("+strings.Join(terms, " OR ")+")")
	}

	return strings.Join(conds, " AND "), args, nil
}

// buildOrderBy translates a sort into an ORDER BY clause (without the
// keywords). Ties on the sort column are broken by ascending id so
// pagination is stable; sorting by id itself needs no tie-break.
func buildOrderBy(s query.Sort, allowed map[string]bool) (string, error) {
	if s.Field == "" {
		return "id ASC", nil
	}
	if !allowed[s.Field] {
		return "", fmt.Errorf("sort on unknown column %q", s.Field)
	}

	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}

	if s.Field == "id" {
		return "id " + direction, nil
	}
	return s.Field + " " + direction + ", id ASC", nil
}
