package employee

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByEmail_Clause(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		pattern string
	}{
		{name: "substring", email: "jane", pattern: "%jane%"},
		{name: "empty matches all", email: "", pattern: "%%"},
		{name: "blank matches all", email: "   ", pattern: "%%"},
		{name: "wildcards escaped", email: "a_b%c", pattern: `%a\_b\%c%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := FilterByEmail(tt.email).Clause()
			assert.Equal(t, `email_id LIKE ? ESCAPE '\'`, query)
			assert.Equal(t, []any{tt.pattern}, args)
		})
	}
}

func TestFilterByEmail_IsSatisfiedBy(t *testing.T) {
	jane := &Employee{Email: "jane@x.com"}

	assert.True(t, FilterByEmail("").IsSatisfiedBy(jane))
	assert.True(t, FilterByEmail("  ").IsSatisfiedBy(jane))
	assert.True(t, FilterByEmail("@x.").IsSatisfiedBy(jane))
	assert.False(t, FilterByEmail("john").IsSatisfiedBy(jane))
	assert.False(t, FilterByEmail("j_ne").IsSatisfiedBy(jane))
}

func TestAnd(t *testing.T) {
	spec := And(FilterByEmail("jane"), nil, FilterByEmail("x.com"))

	query, args := spec.Clause()
	assert.Equal(t, `(email_id LIKE ? ESCAPE '\') AND (email_id LIKE ? ESCAPE '\')`, query)
	assert.Equal(t, []any{"%jane%", "%x.com%"}, args)

	assert.True(t, spec.IsSatisfiedBy(&Employee{Email: "jane@x.com"}))
	assert.False(t, spec.IsSatisfiedBy(&Employee{Email: "jane@y.com"}))

	empty := And()
	query, args = empty.Clause()
	assert.Equal(t, "1 = 1", query)
	assert.Empty(t, args)
	assert.True(t, empty.IsSatisfiedBy(&Employee{}))
}

func TestSortAscending(t *testing.T) {
	tests := map[string]string{
		"id":         ColumnID,
		"firstName":  ColumnFirstName,
		"firstname":  ColumnFirstName,
		"first_name": ColumnFirstName,
		"LASTNAME":   ColumnLastName,
		"email":      ColumnEmail,
		"email_id":   ColumnEmail,
	}

	for field, column := range tests {
		t.Run(field, func(t *testing.T) {
			s, err := SortAscending(field)
			require.NoError(t, err)
			assert.Equal(t, column, s.Column)
			assert.False(t, s.Descending)
		})
	}

	_, err := SortAscending("salary; DROP TABLE employees")
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestSort_Less(t *testing.T) {
	employees := []*Employee{
		{ID: 3, FirstName: "Carol", Email: "c@x.com"},
		{ID: 1, FirstName: "Bob", Email: "b@x.com"},
		{ID: 2, FirstName: "Bob", Email: "a@x.com"},
	}

	byName, err := SortAscending("firstName")
	require.NoError(t, err)
	sort.SliceStable(employees, func(i, j int) bool { return byName.Less(employees[i], employees[j]) })
	assert.Equal(t, []int64{1, 2, 3}, ids(employees))

	byEmail := Sort{Column: ColumnEmail}
	sort.SliceStable(employees, func(i, j int) bool { return byEmail.Less(employees[i], employees[j]) })
	assert.Equal(t, []int64{2, 1, 3}, ids(employees))

	desc := Sort{Column: ColumnID, Descending: true}
	sort.SliceStable(employees, func(i, j int) bool { return desc.Less(employees[i], employees[j]) })
	assert.Equal(t, []int64{3, 2, 1}, ids(employees))

	assert.Equal(t, SortByID, Sort{}.OrDefault())
}

func TestSort_Less_IgnoresCase(t *testing.T) {
	employees := []*Employee{
		{ID: 1, LastName: "Bob"},
		{ID: 2, LastName: "alice"},
		{ID: 3, LastName: "bob"},
		{ID: 4, LastName: "Alice"},
		{ID: 5, LastName: "Bob"},
	}

	byName, err := SortAscending("lastName")
	require.NoError(t, err)
	sort.SliceStable(employees, func(i, j int) bool { return byName.Less(employees[i], employees[j]) })

	// equal names fall back to byte order, then id
	assert.Equal(t, []int64{4, 2, 1, 5, 3}, ids(employees))
}

func TestNewPageRequest(t *testing.T) {
	req, err := NewPageRequest(2, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, req.Offset())

	_, err = NewPageRequest(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidPageRequest)

	_, err = NewPageRequest(0, 0)
	assert.ErrorIs(t, err, ErrInvalidPageRequest)

	_, err = NewPageRequest(math.MaxInt/2+1, 2)
	assert.ErrorIs(t, err, ErrInvalidPageRequest)

	_, err = NewPageRequest(2, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidPageRequest)

	req, err = NewPageRequest(math.MaxInt, 1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, req.Offset())

	assert.ErrorIs(t, PageRequest{Page: math.MaxInt, Size: 3}.Validate(), ErrInvalidPageRequest)
}

func TestNewPage(t *testing.T) {
	content := []EmployeeDto{{ID: 1}, {ID: 2}}

	page := NewPage(content, PageRequest{Page: 0, Size: 2}, 5)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.NumberOfElements)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	assert.True(t, page.HasNext())

	last := NewPage([]EmployeeDto{{ID: 5}}, PageRequest{Page: 2, Size: 2}, 5)
	assert.True(t, last.Last)
	assert.False(t, last.HasNext())

	empty := NewPage(nil, PageRequest{Page: 0, Size: 2}, 0)
	assert.NotNil(t, empty.Content)
	assert.True(t, empty.Empty)
	assert.True(t, empty.Last)
	assert.Equal(t, 0, empty.TotalPages)

	beyond := NewPage(nil, PageRequest{Page: math.MaxInt, Size: 1}, 5)
	assert.True(t, beyond.Last)
	assert.False(t, beyond.First)

	huge := NewPage(nil, PageRequest{Page: 1, Size: math.MaxInt}, 5)
	assert.Equal(t, 1, huge.TotalPages)
	assert.True(t, huge.Last)
}

func TestResourceNotFoundError(t *testing.T) {
	err := NewNotFoundError(999999)
	assert.Equal(t, "Employee not exist with given id: 999999", err.Error())

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func ids(employees []*Employee) []int64 {
	out := make([]int64, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.ID)
	}
	return out
}
