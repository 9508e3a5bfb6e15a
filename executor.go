package gopaginate

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// RawExecutor runs raw statements written with "?" placeholders. Dialect
// backed pagers use it for both their count and page statements.
type RawExecutor interface {
	// Count runs a statement returning a single numeric column and row.
	Count(ctx context.Context, query string, args ...any) (int64, error)
	// Select runs a statement and scans all rows into dest, a pointer to a
	// slice.
	Select(ctx context.Context, dest any, query string, args ...any) error
}

// GORMExecutor runs raw statements through a gorm connection. Placeholders are
// converted by the gorm dialector.
type GORMExecutor struct {
	db *gorm.DB
}

func NewGORMExecutor(db *gorm.DB) *GORMExecutor {
	return &GORMExecutor{db: db}
}

// Count - implements RawExecutor.
func (e *GORMExecutor) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64

	err := e.session(ctx).Raw(query, args...).Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to execute count statement: %w", err)
	}

	return count, nil
}

// Select - implements RawExecutor.
func (e *GORMExecutor) Select(ctx context.Context, dest any, query string, args ...any) error {
	err := e.session(ctx).Raw(query, args...).Scan(dest).Error
	if err != nil {
		return fmt.Errorf("failed to execute select statement: %w", err)
	}

	return nil
}

func (e *GORMExecutor) session(ctx context.Context) *gorm.DB {
	return e.db.Session(&gorm.Session{NewDB: true, Context: ctx})
}

// SQLXExecutor runs raw statements through sqlx. Placeholders are rebound to
// the bind type of the driver.
//
// Columns without a destination field are ignored, since page statements
// return the ranking column along with the entity columns.
type SQLXExecutor struct {
	db *sqlx.DB
}

func NewSQLXExecutor(db *sqlx.DB) *SQLXExecutor {
	return &SQLXExecutor{db: db.Unsafe()}
}

// Count - implements RawExecutor.
func (e *SQLXExecutor) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64

	err := e.db.GetContext(ctx, &count, e.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute count statement: %w", err)
	}

	return count, nil
}

// Select - implements RawExecutor.
func (e *SQLXExecutor) Select(ctx context.Context, dest any, query string, args ...any) error {
	err := e.db.SelectContext(ctx, dest, e.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to execute select statement: %w", err)
	}

	return nil
}

var (
	_ RawExecutor = (*GORMExecutor)(nil)
	_ RawExecutor = (*SQLXExecutor)(nil)
)
