package gopaginate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Pager paginates gorm queries by page number. Configure it once with the
// With* methods and reuse it; Paginate does not modify the pager.
//
// The count and the page are fetched by two independent statements. Unless
// the query runs inside a transaction with a suitable isolation level, rows
// changed between them may make TotalEntries disagree with Entries.
type Pager[T any] struct {
	defaults Defaults
	dialect  *Dialect
	executor RawExecutor
	logger   *zerolog.Logger
}

func NewPager[T any]() *Pager[T] {
	return new(Pager[T])
}

// WithDefaults sets the page size used when the caller does not provide one
// and its upper bound.
func (p *Pager[T]) WithDefaults(defaults Defaults) *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	p.defaults = defaults

	return p
}

// WithDialect makes the pager count and fetch through the raw windowed
// statements of dialect instead of the structured query. Filters come from
// Config.Filters or, when absent, from the query parameters.
func (p *Pager[T]) WithDialect(dialect *Dialect) *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	p.dialect = dialect

	return p
}

// WithExecutor sets the executor of dialect statements. By default they run
// on the connection of the paginated query.
func (p *Pager[T]) WithExecutor(executor RawExecutor) *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	p.executor = executor

	return p
}

// WithLogger sets the logger. By default the logger of the context is used,
// see zerolog.Ctx.
func (p *Pager[T]) WithLogger(logger zerolog.Logger) *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	p.logger = &logger

	return p
}

// GetDefaults returns the configured defaults.
func (p *Pager[T]) GetDefaults() Defaults {
	if p == nil {
		return Defaults{}
	}

	return p.defaults
}

// GetDialect returns the configured dialect or nil.
func (p *Pager[T]) GetDialect() *Dialect {
	if p == nil {
		return nil
	}

	return p.dialect
}

// Paginate resolves params against the pager defaults and returns the
// requested page of query.
func (p *Pager[T]) Paginate(ctx context.Context, query *gorm.DB, params Params) (*Page[T], error) {
	cfg, err := ResolveConfig(p.GetDefaults(), params)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	return p.PaginateConfig(ctx, query, cfg)
}

// PaginateConfig returns the page of query described by cfg, bypassing
// defaults and params.
//
// Queries with joins are fetched in two steps, see fetchJoinSafe, so that a
// page holds PageSize distinct entities. Their ordering may only reference
// columns of the paginated model's table. Dialect pagers run raw statements
// and ignore the structure of query apart from its parameters.
func (p *Pager[T]) PaginateConfig(ctx context.Context, query *gorm.DB, cfg Config) (*Page[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}

	err := p.validate(query, cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	logger := p.loggerFor(ctx).With().
		Int("page", cfg.PageNumber).
		Int("page_size", cfg.PageSize).
		Logger()

	if p.dialect != nil {
		return p.paginateDialect(ctx, query, cfg, logger)
	}

	model := new(T)
	pk, err := primaryKeyOf(query, model)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	total, err := countDistinct(ctx, query, model, pk)
	if err != nil {
		return nil, err
	}

	var entries []T
	if hasJoins(query) {
		logger.Debug().Str("strategy", "join_safe").Int64("total", total).Msg("fetching page")
		entries, err = fetchJoinSafe[T](ctx, query, model, pk, cfg)
	} else {
		logger.Debug().Str("strategy", "direct").Int64("total", total).Msg("fetching page")
		entries, err = fetchDirect[T](ctx, query, cfg)
	}
	if err != nil {
		return nil, err
	}

	return newPage(entries, total, cfg), nil
}

func (p *Pager[T]) paginateDialect(ctx context.Context, query *gorm.DB, cfg Config, logger zerolog.Logger) (*Page[T], error) {
	var filters Filters
	if cfg.Filters != nil {
		filters = *cfg.Filters
	} else {
		var err error
		filters, err = FiltersFromQuery(query, &[]T{})
		if err != nil {
			return nil, fmt.Errorf("cannot paginate: %w", err)
		}
	}

	executor := p.executor
	if executor == nil {
		executor = NewGORMExecutor(query)
	}

	logger = logger.With().Str("strategy", "dialect").Str("dialect", p.dialect.Name).Logger()

	countSQL, countArgs := p.dialect.CountSQL(filters)
	logger.Debug().Str("sql", countSQL).Msg("counting entries")

	total, err := executor.Count(ctx, countSQL, countArgs...)
	if err != nil {
		return nil, err
	}

	pageSQL, pageArgs := p.dialect.PageSQL(filters, cfg.PageNumber, cfg.PageSize)
	logger.Debug().Str("sql", pageSQL).Int64("total", total).Msg("fetching page")

	var entries []T
	if err = executor.Select(ctx, &entries, pageSQL, pageArgs...); err != nil {
		return nil, err
	}

	return newPage(entries, total, cfg), nil
}

func (p *Pager[T]) validate(query *gorm.DB, cfg Config) error {
	if p == nil {
		return fmt.Errorf("pager is nil")
	}

	if query == nil {
		return fmt.Errorf("query is nil")
	}

	if query.Error != nil {
		return fmt.Errorf("query has error: %w", query.Error)
	}

	if err := p.defaults.validate(); err != nil {
		return err
	}

	if p.dialect != nil {
		if err := p.dialect.validate(); err != nil {
			return err
		}
	}

	return cfg.validate()
}

func (p *Pager[T]) loggerFor(ctx context.Context) *zerolog.Logger {
	if p.logger != nil {
		return p.logger
	}

	return zerolog.Ctx(ctx)
}

// Paginate returns the requested page of query using the default pager.
func Paginate[T any](ctx context.Context, query *gorm.DB, params Params) (*Page[T], error) {
	return NewPager[T]().Paginate(ctx, query, params)
}
