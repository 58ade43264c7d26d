package employee

import (
	"fmt"
	"strings"
)

// sortableFields maps accepted field names, lower-cased, to columns. It accepts
// the wire names, the entity property names and the column names.
var sortableFields = map[string]string{
	"id":         ColumnID,
	"firstname":  ColumnFirstName,
	"first_name": ColumnFirstName,
	"lastname":   ColumnLastName,
	"last_name":  ColumnLastName,
	"email":      ColumnEmail,
	"email_id":   ColumnEmail,
}

// Sort orders query results by a single column
type Sort struct {
	Column     string
	Descending bool
}

// SortByID is the default ordering
var SortByID = Sort{Column: ColumnID}

// SortAscending resolves a field name to an ascending Sort.
// Unknown names yield ErrInvalidSortField.
func SortAscending(field string) (Sort, error) {
	column, ok := sortableFields[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}
	return Sort{Column: column}, nil
}

// OrDefault returns SortByID for the zero Sort
func (s Sort) OrDefault() Sort {
	if s.Column == "" {
		return SortByID
	}
	return s
}

// Less compares two employees by the sort column, falling back to id on ties.
// Strings compare case-insensitively first so "alice" sorts before "Bob", which
// is how a case-insensitive database collation orders them.
func (s Sort) Less(a, b *Employee) bool {
	var cmp int
	switch s.Column {
	case ColumnFirstName:
		cmp = compareFolded(a.FirstName, b.FirstName)
	case ColumnLastName:
		cmp = compareFolded(a.LastName, b.LastName)
	case ColumnEmail:
		cmp = compareFolded(a.Email, b.Email)
	}
	if cmp == 0 {
		switch {
		case a.ID < b.ID:
			cmp = -1
		case a.ID > b.ID:
			cmp = 1
		}
	}
	if s.Descending {
		return cmp > 0
	}
	return cmp < 0
}

func compareFolded(a, b string) int {
	if cmp := strings.Compare(strings.ToLower(a), strings.ToLower(b)); cmp != 0 {
		return cmp
	}
	return strings.Compare(a, b)
}
