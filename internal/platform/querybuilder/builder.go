// Package querybuilder assembles parameterized Postgres statements. It
// covers only the shapes the repositories need: filtered selects, upsert
// inserts and deletes, all with $n placeholders.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate, appending its bind values to args.
type Condition interface {
	render(sql *strings.Builder, args *[]any, next *int)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) render(sql *strings.Builder, args *[]any, next *int) {
	sql.WriteString(c.column)
	sql.WriteString(" = ")
	sql.WriteString(placeholder(*next))
	*args = append(*args, c.value)
	*next++
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

// An empty IN list renders as a always-false predicate rather than invalid SQL.
func (c inCondition) render(sql *strings.Builder, args *[]any, next *int) {
	if len(c.values) == 0 {
		sql.WriteString("1=0")
		return
	}

	sql.WriteString(c.column)
	sql.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			sql.WriteString(", ")
		}
		sql.WriteString(placeholder(*next))
		*args = append(*args, v)
		*next++
	}
	sql.WriteString(")")
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) render(sql *strings.Builder, _ *[]any, _ *int) {
	sql.WriteString(c.column)
	sql.WriteString(" IS NULL")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(b.columns, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	next := 1
	renderWhere(&sql, b.where, &args, &next)

	if len(b.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(strconv.Itoa(b.limit))
	}

	return sql.String(), args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL after the VALUES list, typically an ON CONFLICT
// or RETURNING clause. The suffix must not carry its own bind values.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(b.table)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(b.columns, ", "))
	sql.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	next := 1
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			sql.WriteString(", ")
		}
		sql.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString(placeholder(next))
			args = append(args, value)
			next++
		}
		sql.WriteString(")")
	}

	if b.suffix != "" {
		sql.WriteString(" ")
		sql.WriteString(b.suffix)
	}

	return sql.String(), args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditional DELETE.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	var sql strings.Builder
	sql.WriteString("DELETE FROM ")
	sql.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	next := 1
	renderWhere(&sql, b.where, &args, &next)

	return sql.String(), args, nil
}

func renderWhere(sql *strings.Builder, conditions []Condition, args *[]any, next *int) {
	if len(conditions) == 0 {
		return
	}
	sql.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			sql.WriteString(" AND ")
		}
		c.render(sql, args, next)
	}
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}
