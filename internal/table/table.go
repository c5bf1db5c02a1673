// Package table provides an ordered, keyed in-memory table for omics and
// clinical data, with the set operations the registry builds on.
package table

// Missing-value sentinels as they appear in TCGA delimited files.
var missingSentinels = map[string]struct{}{
	"":                 {},
	"NA":               {},
	"null":             {},
	"[Not Available]":  {},
	"[Not Applicable]": {},
	"[Not Evaluated]":  {},
	"[Unknown]":        {},
	"[Discrepancy]":    {},
}

// IsMissing reports whether a cell value counts as missing.
func IsMissing(v string) bool {
	_, ok := missingSentinels[v]
	return ok
}

// Row maps field name to cell value. Missing cells may be absent from the
// map or hold a missing sentinel; both read back as missing.
type Row map[string]string

// Table is a collection of rows uniquely keyed by an identifier column.
// Row order follows insertion and is preserved by every derived table.
type Table struct {
	indexName string
	index     []string
	rows      map[string]Row
	columns   []string
	colSet    map[string]struct{}
}

// New creates an empty table whose rows are keyed by the named identifier.
func New(indexName string) *Table {
	return &Table{
		indexName: indexName,
		rows:      make(map[string]Row),
		colSet:    make(map[string]struct{}),
	}
}

// IndexName returns the name of the identifier column.
func (t *Table) IndexName() string {
	return t.indexName
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.index)
}

// Index returns the row identifiers in order. The slice is a copy.
func (t *Table) Index() []string {
	out := make([]string, len(t.index))
	copy(out, t.index)
	return out
}

// Columns returns the column names in first-seen order. The slice is a copy.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether a row with the given identifier exists.
func (t *Table) Has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

// Row returns the row for the given identifier.
func (t *Table) Row(id string) (Row, bool) {
	r, ok := t.rows[id]
	return r, ok
}

// Value returns the cell at (id, field); ok is false when the row does not
// exist. A missing cell in an existing row returns ("", true).
func (t *Table) Value(id, field string) (string, bool) {
	r, ok := t.rows[id]
	if !ok {
		return "", false
	}
	return r[field], true
}

// Set stores one row under id. A repeated id merges fields into the existing
// row without changing its index position, so joins stay order-stable.
func (t *Table) Set(id string, row Row) {
	existing, ok := t.rows[id]
	if !ok {
		existing = make(Row, len(row))
		t.rows[id] = existing
		t.index = append(t.index, id)
	}
	for field, v := range row {
		existing[field] = v
		t.addColumn(field)
	}
}

// SetValue stores a single cell, creating the row if needed.
func (t *Table) SetValue(id, field, v string) {
	t.Set(id, Row{field: v})
}

func (t *Table) addColumn(name string) {
	if _, ok := t.colSet[name]; ok {
		return
	}
	t.colSet[name] = struct{}{}
	t.columns = append(t.columns, name)
}

// IntersectIDs returns the identifiers of this table that appear in ids,
// preserving this table's row order.
func (t *Table) IntersectIDs(ids []string) []string {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	var out []string
	for _, id := range t.index {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Reindex returns a new table with exactly one row per requested identifier,
// in the requested order. Identifiers absent from the table yield rows whose
// every column is missing; this never fails.
func (t *Table) Reindex(ids []string) *Table {
	out := New(t.indexName)
	out.columns = append(out.columns, t.columns...)
	for _, c := range t.columns {
		out.colSet[c] = struct{}{}
	}
	for _, id := range ids {
		row := make(Row, len(t.columns))
		if src, ok := t.rows[id]; ok {
			for field, v := range src {
				row[field] = v
			}
		}
		if _, dup := out.rows[id]; dup {
			continue
		}
		out.rows[id] = row
		out.index = append(out.index, id)
	}
	return out
}

// FilterIn returns the rows whose field value is one of values. An empty
// values slice means no restriction and returns a copy of the whole table.
func (t *Table) FilterIn(field string, values []string) *Table {
	if len(values) == 0 {
		return t.Reindex(t.index)
	}
	keep := make(map[string]struct{}, len(values))
	for _, v := range values {
		keep[v] = struct{}{}
	}
	var ids []string
	for _, id := range t.index {
		if _, ok := keep[t.rows[id][field]]; ok {
			ids = append(ids, id)
		}
	}
	return t.Reindex(ids)
}

// Select returns a new table projected down to the named columns, in the
// requested order. Columns the table does not have are skipped.
func (t *Table) Select(fields []string) *Table {
	out := New(t.indexName)
	var kept []string
	for _, f := range fields {
		if _, ok := t.colSet[f]; ok {
			kept = append(kept, f)
		}
	}
	for _, id := range t.index {
		row := make(Row, len(kept))
		for _, f := range kept {
			row[f] = t.rows[id][f]
		}
		out.rows[id] = row
		out.index = append(out.index, id)
	}
	out.columns = kept
	out.colSet = make(map[string]struct{}, len(kept))
	for _, f := range kept {
		out.colSet[f] = struct{}{}
	}
	return out
}

// DropMissing returns the rows that have a non-missing value in every column.
func (t *Table) DropMissing() *Table {
	var ids []string
	for _, id := range t.index {
		row := t.rows[id]
		complete := true
		for _, f := range t.columns {
			if IsMissing(row[f]) {
				complete = false
				break
			}
		}
		if complete {
			ids = append(ids, id)
		}
	}
	return t.Reindex(ids)
}

// AddColumn attaches (or replaces) a column. Rows absent from values get a
// missing cell. Row count and existing columns are never changed, and
// applying the same values twice is equivalent to applying them once.
func (t *Table) AddColumn(name string, values map[string]string) {
	t.addColumn(name)
	for _, id := range t.index {
		t.rows[id][name] = values[id]
	}
}

// RenameColumn renames a column in place. Unknown old names are ignored.
func (t *Table) RenameColumn(oldName, newName string) {
	if _, ok := t.colSet[oldName]; !ok || oldName == newName {
		return
	}
	delete(t.colSet, oldName)
	t.colSet[newName] = struct{}{}
	for i, c := range t.columns {
		if c == oldName {
			t.columns[i] = newName
		}
	}
	for _, row := range t.rows {
		if v, ok := row[oldName]; ok {
			row[newName] = v
			delete(row, oldName)
		}
	}
}

// RenameColumns applies a bulk column rename. Columns without a mapping keep
// their name; mappings for unknown columns are ignored.
func (t *Table) RenameColumns(mapping map[string]string) {
	for oldName, newName := range mapping {
		t.RenameColumn(oldName, newName)
	}
}
