package reports

import (
	"fmt"
	"strings"
)

// Op enumerates the comparison operators a report filter may use.
type Op int

const (
	OpEquals Op = iota
	OpLike
	OpIn
)

// Filter is one column comparison. Values always travel as bind parameters;
// only the whitelisted column name is spliced into SQL.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Clause ORs its filters together. Clauses compiled side by side AND.
type Clause struct {
	Any []Filter
}

func equals(column string, value any) Clause {
	return Clause{Any: []Filter{{Column: column, Op: OpEquals, Value: value}}}
}

func like(column string, value string) Clause {
	return Clause{Any: []Filter{{Column: column, Op: OpLike, Value: value}}}
}

// likeAny matches a search term against any of the given columns.
func likeAny(columns []string, value string) Clause {
	c := Clause{}
	for _, col := range columns {
		c.Any = append(c.Any, Filter{Column: col, Op: OpLike, Value: value})
	}
	return c
}

// compileWhere renders clauses into an " AND ..." SQL fragment plus its bind
// arguments. An empty clause list compiles to the empty string so callers
// can append the result to a query unconditionally.
func compileWhere(clauses []Clause) (string, []any) {
	var conds []string
	var args []any

	for _, c := range clauses {
		var parts []string
		for _, f := range c.Any {
			switch f.Op {
			case OpEquals:
				parts = append(parts, f.Column+" = ?")
				args = append(args, f.Value)
			case OpLike:
				parts = append(parts, f.Column+" ILIKE ?")
				args = append(args, "%"+fmt.Sprint(f.Value)+"%")
			case OpIn:
				parts = append(parts, f.Column+" IN ?")
				args = append(args, f.Value)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if len(parts) == 1 {
			conds = append(conds, parts[0])
		} else {
			conds = append(conds, "("+strings.Join(parts, " OR ")+")")
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(conds, " AND "), args
}
