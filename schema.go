package gopaginate

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

type primaryKey struct {
	// column is qualified with the table of the statement it is used in.
	column clause.Column
	field  *schema.Field
}

// primaryKeyOf returns the primary key of the query model, or of model when
// the query has none.
func primaryKeyOf(query *gorm.DB, model any) (primaryKey, error) {
	if query.Statement.Model != nil {
		model = query.Statement.Model
	}

	stmt := &gorm.Statement{DB: query}
	if err := stmt.Parse(model); err != nil {
		return primaryKey{}, fmt.Errorf("failed to parse model schema: %w", err)
	}

	// Composite keys without an "id" field have no prioritized field either:
	// a single column is required for distinct counting.
	field := stmt.Schema.PrioritizedPrimaryField
	if field == nil {
		return primaryKey{}, fmt.Errorf("%w: '%s'", ErrNoPrimaryKey, stmt.Schema.Name)
	}

	return primaryKey{
		column: clause.Column{Table: clause.CurrentTable, Name: field.DBName},
		field:  field,
	}, nil
}

// hasJoins returns true when the query joins other tables, either through
// Joins or through a FROM clause.
func hasJoins(query *gorm.DB) bool {
	if len(query.Statement.Joins) > 0 {
		return true
	}

	from, ok := query.Statement.Clauses["FROM"].Expression.(clause.From)

	return ok && len(from.Joins) > 0
}
