package model

import (
	"strconv"
	"strings"
)

// Table is an ordered sequence of records sharing a column list.
type Table struct {
	Columns []string
	Records []Record
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name to the column list unless already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a record. Keys outside the column list are kept but not written.
func (t *Table) Append(rec Record) {
	t.Records = append(t.Records, rec)
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]Record, len(t.Records)),
	}
	for i, rec := range t.Records {
		out.Records[i] = rec.Clone()
	}
	return out
}

// Filter returns a new table with the same columns holding the records keep accepts.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := NewTable(t.Columns...)
	for _, rec := range t.Records {
		if keep(rec) {
			out.Append(rec.Clone())
		}
	}
	return out
}

// Row returns the record's cells in column order.
func (t *Table) Row(i int) []string {
	rec := t.Records[i]
	row := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = rec[c]
	}
	return row
}

// Concat stacks tables vertically. Columns are the union in first-seen order;
// cells missing from a table come out empty.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			out.AddColumn(c)
		}
		for _, rec := range t.Records {
			out.Append(rec.Clone())
		}
	}
	return out
}

// DropDuplicates removes rows identical to an earlier row across every column,
// keeping the first occurrence.
func (t *Table) DropDuplicates() *Table {
	out := NewTable(t.Columns...)
	seen := make(map[string]struct{}, len(t.Records))
	for i, rec := range t.Records {
		key := rowKey(t.Row(i))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.Append(rec.Clone())
	}
	return out
}

// rowKey encodes cells with length prefixes so distinct rows never share a key.
func rowKey(cells []string) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(strconv.Itoa(len(c)))
		b.WriteByte(':')
		b.WriteString(c)
	}
	return b.String()
}
