package repository

import (
	"strconv"
	"strings"
)

// Args accumulates positional query arguments. Bind appends a value and
// returns its placeholder, so text and arguments cannot drift apart.
type Args []interface{}

// Bind appends v and returns the matching "$n" placeholder.
func (a *Args) Bind(v interface{}) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

type condition struct {
	clause string
	value  interface{}
}

// Filter is an ordered list of (clause, value) pairs. Each clause holds one
// "?" that is replaced by the value's placeholder when rendered.
type Filter struct {
	conds []condition
}

// Where returns a copy of f with the clause appended.
func (f Filter) Where(clause string, value interface{}) Filter {
	conds := make([]condition, len(f.conds), len(f.conds)+1)
	copy(conds, f.conds)
	return Filter{conds: append(conds, condition{clause: clause, value: value})}
}

// Len returns the number of clauses.
func (f Filter) Len() int { return len(f.conds) }

// Render binds every value into args and returns the clauses joined with
// AND. An empty filter renders as TRUE.
func (f Filter) Render(args *Args) string {
	if len(f.conds) == 0 {
		return "TRUE"
	}
	parts := make([]string, len(f.conds))
	for i, c := range f.conds {
		parts[i] = strings.Replace(c.clause, "?", args.Bind(c.value), 1)
	}
	return strings.Join(parts, " AND ")
}
