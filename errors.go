package gopaginate

import "errors"

var (
	ErrMalformedParam    = errors.New("gopaginate: malformed pagination parameter")
	ErrUnknownParam      = errors.New("gopaginate: unknown pagination parameter")
	ErrInvalidPageNumber = errors.New("gopaginate: page number must be positive")
	ErrInvalidPageSize   = errors.New("gopaginate: page size must be positive")
	ErrInvalidConfig     = errors.New("gopaginate: invalid pagination config")

	// ErrNoPrimaryKey is returned when the paginated model declares no primary
	// key. Distinct counting and join-safe fetching cannot work without it.
	ErrNoPrimaryKey = errors.New("gopaginate: model has no primary key")

	// ErrFilterLayout is returned when the parameters of a query do not match
	// the positional filter layout expected by FiltersFromVars.
	ErrFilterLayout = errors.New("gopaginate: unexpected filter parameter layout")

	ErrUnknownDialect = errors.New("gopaginate: unknown dialect")
	ErrInvalidDialect = errors.New("gopaginate: invalid dialect descriptor")
)
