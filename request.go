package gopaginate

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	ParamPage     = "page"
	ParamPageSize = "page_size"

	paramPageSizeCamel = "pageSize"
)

var _knownParams = []string{ParamPage, ParamPageSize, paramPageSizeCamel}

// Params are caller supplied pagination options. Values may be any integer
// type or a decimal string:
//
//	gopaginate.Params{"page": "2", "page_size": 25}
type Params map[string]any

// ParamsFromValues picks the pagination options out of an HTTP query string.
// Other keys are ignored.
func ParamsFromValues(values url.Values) Params {
	ret := make(Params, 2)
	for _, key := range _knownParams {
		if values.Has(key) {
			ret[key] = values.Get(key)
		}
	}

	return ret
}

// RawPageRequest is intended for API payloads. Inline it:
//
//	type MyFilter struct {
//	    Paging RawPageRequest `json:",inline"`
//	}
//
// Zero fields are treated as missing.
type RawPageRequest struct {
	Page     int `json:"page" yaml:"page"`
	PageSize int `json:"pageSize" yaml:"page_size"`
}

// Params converts the request into Params.
func (r RawPageRequest) Params() Params {
	ret := make(Params, 2)
	if r.Page != 0 {
		ret[ParamPage] = r.Page
	}
	if r.PageSize != 0 {
		ret[ParamPageSize] = r.PageSize
	}

	return ret
}

// Config is a resolved pagination request. Use ResolveConfig to build it from
// Defaults and Params, or fill it directly to bypass option merging.
type Config struct {
	PageNumber  int `validate:"gte=1"`
	PageSize    int `validate:"gte=1"`
	MaxPageSize int `validate:"gte=0"`
	// Filters are used by dialect backed pagers only. When nil, they are read
	// positionally from the query parameters, see FiltersFromVars.
	Filters *Filters `validate:"-"`
}

// Offset returns the number of entries preceding the requested page.
func (c Config) Offset() int {
	return Offset(c.PageNumber, c.PageSize)
}

func (c Config) validate() error {
	if err := _validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			switch fieldErrs[0].StructField() {
			case "PageNumber":
				return fmt.Errorf("%w: got %d", ErrInvalidPageNumber, c.PageNumber)
			case "PageSize":
				return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.PageSize)
			}
		}

		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// The last entry of the page, offset+PageSize, must fit into an int.
	if c.PageNumber-1 > (math.MaxInt-c.PageSize)/c.PageSize {
		return fmt.Errorf("%w: page %d of size %d is out of range", ErrInvalidPageNumber, c.PageNumber, c.PageSize)
	}

	if c.MaxPageSize != NoMaxPageSize && c.PageSize > c.MaxPageSize {
		return fmt.Errorf("%w: page size %d exceeds max page size %d", ErrInvalidConfig, c.PageSize, c.MaxPageSize)
	}

	return nil
}

// ResolveConfig merges params over defaults:
//   - missing page → DefaultPage;
//   - missing page_size → Defaults.PageSize (DefaultPageSize if unset);
//   - page_size above Defaults.MaxPageSize → clamped to Defaults.MaxPageSize.
//
// Non-numeric values, non-positive page numbers or sizes and pages whose
// offset does not fit into an int are rejected.
func ResolveConfig(defaults Defaults, params Params) (Config, error) {
	if err := defaults.validate(); err != nil {
		return Config{}, err
	}

	for key := range params {
		if !lo.Contains(_knownParams, key) {
			return Config{}, fmt.Errorf("%w '%s', closest: '%s'", ErrUnknownParam, key, closestAlias(key, _knownParams))
		}
	}

	pageNumber, err := params.intValue(DefaultPage, ParamPage)
	if err != nil {
		return Config{}, err
	}

	pageSize, err := params.intValue(defaults.GetPageSize(), ParamPageSize, paramPageSizeCamel)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		PageNumber:  pageNumber,
		PageSize:    pageSize,
		MaxPageSize: defaults.MaxPageSize,
	}
	cfg.PageSize = NormalizePageSizeMax(cfg.PageSize, cfg.MaxPageSize)

	if err = cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// intValue returns the first present key parsed as int, or fallback.
func (p Params) intValue(fallback int, keys ...string) (int, error) {
	for _, key := range keys {
		raw, ok := p[key]
		if !ok || raw == nil {
			continue
		}

		v, present, err := parseIntParam(raw)
		if err != nil {
			return 0, fmt.Errorf("%w '%s': %w", ErrMalformedParam, key, err)
		}
		if present {
			return v, nil
		}
	}

	return fallback, nil
}

func parseIntParam(raw any) (int, bool, error) {
	switch v := raw.(type) {
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false, err
		}
		return n, true, nil
	case []byte:
		return parseIntParam(string(v))
	case int:
		return v, true, nil
	case int8:
		return int(v), true, nil
	case int16:
		return int(v), true, nil
	case int32:
		return int(v), true, nil
	case int64:
		return fitInt(v)
	case uint:
		return fitUint(uint64(v))
	case uint8:
		return int(v), true, nil
	case uint16:
		return int(v), true, nil
	case uint32:
		return fitUint(uint64(v))
	case uint64:
		return fitUint(v)
	default:
		return 0, false, fmt.Errorf("unsupported value type %T", raw)
	}
}

func fitInt(v int64) (int, bool, error) {
	if v > math.MaxInt || v < math.MinInt {
		return 0, false, fmt.Errorf("value %d overflows int", v)
	}

	return int(v), true, nil
}

func fitUint(v uint64) (int, bool, error) {
	if v > math.MaxInt {
		return 0, false, fmt.Errorf("value %d overflows int", v)
	}

	return int(v), true, nil
}
