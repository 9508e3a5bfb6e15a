package gopaginate

import (
	"fmt"
	"strings"
)

type (
	tConjunct struct {
		Column   string
		Operator Operator
		Value    any
	}

	// tConjunction accumulates conditions joined by AND. Conditions are only
	// appended when their value is meaningful, so an empty conjunction renders
	// no WHERE clause at all.
	tConjunction []tConjunct
)

// toSQLClause converts a conjunct to "Column Operator ?" and its value.
//
// Example:
//
//	tConjunct{Column: "c.serie", Operator: "=", Value: "A"}
//
// Result:
//
//	("c.serie = ?", "A")
func (c tConjunct) toSQLClause() (string, any) {
	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), c.Value
}

// with appends the condition unless omit is true.
func (c tConjunction) with(omit bool, column string, operator Operator, value any) tConjunction {
	if omit {
		return c
	}

	return append(c, tConjunct{Column: column, Operator: operator, Value: value})
}

// toSQLClause renders "K1 AND K2 AND K3" with the values for placeholders.
// Returns an empty string for an empty conjunction.
func (c tConjunction) toSQLClause() (string, []any) {
	andClauses := make([]string, 0, len(c))
	values := make([]any, 0, len(c))

	for _, conjunct := range c {
		andClause, value := conjunct.toSQLClause()
		andClauses = append(andClauses, andClause)
		values = append(values, value)
	}

	return strings.Join(andClauses, " AND "), values
}

// toWhereClause renders "WHERE K1 AND K2" or an empty string.
func (c tConjunction) toWhereClause() (string, []any) {
	sqlClause, values := c.toSQLClause()
	if sqlClause == "" {
		return "", nil
	}

	return "WHERE " + sqlClause, values
}
