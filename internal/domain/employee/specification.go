package employee

import "strings"

// Specification is a composable predicate over employees. Clause renders it as
// a SQL WHERE fragment with ? placeholders; IsSatisfiedBy evaluates it in memory.
// Both forms must agree.
type Specification interface {
	Clause() (query string, args []any)
	IsSatisfiedBy(e *Employee) bool
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type emailContains struct {
	value string
}

// FilterByEmail matches employees whose email contains the given substring.
// A blank value matches every employee.
func FilterByEmail(email string) Specification {
	if strings.TrimSpace(email) == "" {
		email = ""
	}
	return emailContains{value: email}
}

func (s emailContains) Clause() (string, []any) {
	return ColumnEmail + ` LIKE ? ESCAPE '\'`, []any{likePattern(s.value)}
}

func (s emailContains) IsSatisfiedBy(e *Employee) bool {
	return strings.Contains(e.Email, s.value)
}

func likePattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

type conjunction []Specification

// And combines specifications so that all of them must hold. Nil entries are skipped.
func And(specs ...Specification) Specification {
	var parts conjunction
	for _, spec := range specs {
		if spec != nil {
			parts = append(parts, spec)
		}
	}
	return parts
}

func (c conjunction) Clause() (string, []any) {
	if len(c) == 0 {
		return "1 = 1", nil
	}

	clauses := make([]string, 0, len(c))
	var args []any
	for _, spec := range c {
		q, a := spec.Clause()
		clauses = append(clauses, "("+q+")")
		args = append(args, a...)
	}
	return strings.Join(clauses, " AND "), args
}

func (c conjunction) IsSatisfiedBy(e *Employee) bool {
	for _, spec := range c {
		if !spec.IsSatisfiedBy(e) {
			return false
		}
	}
	return true
}
