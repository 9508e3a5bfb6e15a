package gopaginate

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	clauseSelect  = "SELECT"
	clauseGroupBy = "GROUP BY"
	clauseOrderBy = "ORDER BY"
	clauseLimit   = "LIMIT"
)

// derive returns a copy of query bound to ctx. The statement of the copy is
// cloned, so stripping clauses from it never affects query.
func derive(ctx context.Context, query *gorm.DB, model any) *gorm.DB {
	if ctx == nil {
		ctx = context.Background()
	}

	tx := query.Session(&gorm.Session{Context: ctx})
	if tx.Statement.Model == nil && model != nil {
		tx.Statement.Model = model
	}

	return tx
}

func withoutClauses(tx *gorm.DB, names ...string) *gorm.DB {
	for _, name := range names {
		delete(tx.Statement.Clauses, name)
	}

	return tx
}

func withoutProjection(tx *gorm.DB) *gorm.DB {
	tx.Statement.Selects = nil
	tx.Statement.Omits = nil
	tx.Statement.Distinct = false

	return withoutClauses(tx, clauseSelect)
}

func withoutPreloads(tx *gorm.DB) *gorm.DB {
	tx.Statement.Preloads = map[string][]any{}

	return tx
}

// countDistinct counts distinct primary keys matched by the conditions of
// query. Ordering, projection, grouping, preloads and limits are dropped.
//
// Example:
//
//	SELECT COUNT(DISTINCT(`users`.`id`)) FROM `users` JOIN posts ON ... WHERE ...
func countDistinct(ctx context.Context, query *gorm.DB, model any, pk primaryKey) (int64, error) {
	tx := derive(ctx, query, model)
	tx = withoutPreloads(withoutProjection(tx))
	tx = withoutClauses(tx, clauseOrderBy, clauseGroupBy, clauseLimit)

	var total int64

	err := tx.
		Clauses(clause.Select{Expression: clause.Expr{SQL: "COUNT(DISTINCT(?))", Vars: []any{pk.column}}}).
		Scan(&total).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}

	return total, nil
}

// fetchDirect applies LIMIT/OFFSET to query and fetches the page.
func fetchDirect[T any](ctx context.Context, query *gorm.DB, cfg Config) ([]T, error) {
	var entries []T

	err := derive(ctx, query, nil).
		Limit(cfg.PageSize).
		Offset(cfg.Offset()).
		Find(&entries).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	return entries, nil
}

// fetchJoinSafe fetches a page of a query with joins in two steps, so that
// the page size counts root entities rather than joined rows:
//
//  1. primary keys of the page are selected with GROUP BY, LIMIT and OFFSET;
//  2. query is run again, restricted to those keys, with DISTINCT.
//
// The entries follow the ordering of query. Both steps keep that ordering
// while grouping or deduplicating by entity, so it must only use columns of
// the root table: ordering by a joined column, e.g. posts.created_at, is
// rejected by postgres and by mysql with ONLY_FULL_GROUP_BY.
func fetchJoinSafe[T any](ctx context.Context, query *gorm.DB, model any, pk primaryKey, cfg Config) ([]T, error) {
	keys, err := fetchPageKeys(ctx, query, model, pk, cfg)
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, nil
	}

	var entries []T

	err = withoutClauses(derive(ctx, query, nil), clauseLimit).
		Where(clause.IN{Column: pk.column, Values: keys}).
		Distinct().
		Find(&entries).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries by keys: %w", err)
	}

	return entries, nil
}

func fetchPageKeys(ctx context.Context, query *gorm.DB, model any, pk primaryKey, cfg Config) ([]any, error) {
	tx := derive(ctx, query, model)
	tx = withoutPreloads(withoutProjection(tx))
	tx = withoutClauses(tx, clauseGroupBy, clauseLimit)

	dest := reflect.New(reflect.SliceOf(pk.field.FieldType))

	err := tx.
		Clauses(
			clause.Select{Columns: []clause.Column{pk.column}},
			clause.GroupBy{Columns: []clause.Column{pk.column}},
		).
		Limit(cfg.PageSize).
		Offset(cfg.Offset()).
		Pluck(pk.field.DBName, dest.Interface()).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page keys: %w", err)
	}

	values := dest.Elem()
	keys := make([]any, 0, values.Len())
	for i := 0; i < values.Len(); i++ {
		keys = append(keys, values.Index(i).Interface())
	}

	return keys, nil
}
