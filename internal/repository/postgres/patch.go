package postgres

import (
	"fmt"
	"strings"
)

// setBuilder accumulates the SET clause of a partial UPDATE. Column names
// are code constants; only values become positional parameters.
type setBuilder struct {
	assignments []string
	args        []any
}

// set assigns a parameterized value to column.
func (b *setBuilder) set(column string, value any) {
	b.args = append(b.args, value)
	b.assignments = append(b.assignments, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// setNull clears column.
func (b *setBuilder) setNull(column string) {
	b.assignments = append(b.assignments, column+" = NULL")
}

// empty reports whether no column has been assigned.
func (b *setBuilder) empty() bool {
	return len(b.assignments) == 0
}

// arg appends a parameter outside the SET clause (e.g. for WHERE) and
// returns its placeholder.
func (b *setBuilder) arg(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// build renders "UPDATE table SET ..., updated_at = NOW() WHERE <where>".
// where is produced by the caller using arg().
func (b *setBuilder) build(table, where string) string {
	assignments := append(append([]string(nil), b.assignments...), "updated_at = NOW()")
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(assignments, ", "), where)
}
