// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package boundary

import (
	"fmt"
	"strings"

	"github.com/luxfi/graphkernel/ids"
)

// safeColumns is the fixed set of columns a BoundedQueryBuilder may select
// or order by; it is never extended at runtime.
var safeColumns = map[string]struct{}{
	"id": {}, "session_id": {}, "role": {}, "phase": {},
	"salience": {}, "created_at": {}, "content_hash": {},
}

// QueryBuilder assembles a parameterized SELECT that can never reference a
// turn id outside the guard's authorized set: the id list is always bound
// through the single $1 array parameter, and every column comes from typed
// setters validated against safeColumns. The table name passed to
// NewQueryBuilder is inserted into the query as given; it is not checked
// against any list.
type QueryBuilder struct {
	table   string
	columns []string
	filters []string
	orderBy []string
}

// NewQueryBuilder starts a builder selecting from table.
func NewQueryBuilder(table string) *QueryBuilder {
	return &QueryBuilder{table: table}
}

// Select adds columns to the projection. Returns an error for any column
// not on the safelist.
func (b *QueryBuilder) Select(columns ...string) error {
	for _, c := range columns {
		if _, ok := safeColumns[c]; !ok {
			return fmt.Errorf("boundary: column %q is not on the safelist", c)
		}
		b.columns = append(b.columns, c)
	}
	return nil
}

// FilterEquals adds "AND column = 'value'" using a safelisted column and a
// literal value quoted by this method, never caller-concatenated SQL.
func (b *QueryBuilder) FilterEquals(column, value string) error {
	if _, ok := safeColumns[column]; !ok {
		return fmt.Errorf("boundary: column %q is not on the safelist", column)
	}
	b.filters = append(b.filters, fmt.Sprintf("%s = '%s'", column, strings.ReplaceAll(value, "'", "''")))
	return nil
}

// OrderBy appends an ORDER BY column. Returns an error for any column not
// on the safelist.
func (b *QueryBuilder) OrderBy(column string) error {
	if _, ok := safeColumns[column]; !ok {
		return fmt.Errorf("boundary: column %q is not on the safelist", column)
	}
	b.orderBy = append(b.orderBy, column)
	return nil
}

// Build returns the SQL string and the $1 positional argument: the
// authorized turn id list. No other positional parameters exist. Column
// names in the returned string come only from the safelist; the table name
// is the one given to NewQueryBuilder, used verbatim.
func (b *QueryBuilder) Build(guard *Guard) (string, []ids.TurnID) {
	columns := "*"
	if len(b.columns) > 0 {
		columns = strings.Join(b.columns, ", ")
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ANY($1)", columns, b.table)
	if len(b.filters) > 0 {
		query += " AND " + strings.Join(b.filters, " AND ")
	}
	if len(b.orderBy) > 0 {
		query += " ORDER BY " + strings.Join(b.orderBy, ", ")
	}

	return query, guard.AuthorizedIDs
}
