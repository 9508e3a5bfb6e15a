package gopaginate

import (
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	NoMaxPageSize   = 0
)

var _validate = validator.New()

// Defaults holds the configured page size and its optional upper bound.
// Zero values mean DefaultPageSize and NoMaxPageSize respectively.
type Defaults struct {
	PageSize    int `yaml:"page_size" json:"pageSize" validate:"gte=0"`
	MaxPageSize int `yaml:"max_page_size" json:"maxPageSize" validate:"gte=0"`
}

// LoadDefaults reads Defaults from a YAML document:
//
//	page_size: 25
//	max_page_size: 100
func LoadDefaults(r io.Reader) (Defaults, error) {
	var d Defaults

	if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
		return Defaults{}, fmt.Errorf("failed to decode pagination defaults: %w", err)
	}

	if err := d.validate(); err != nil {
		return Defaults{}, err
	}

	return d, nil
}

// GetPageSize returns the configured default page size, falling back to
// DefaultPageSize.
func (d Defaults) GetPageSize() int {
	if d.PageSize <= 0 {
		return DefaultPageSize
	}

	return d.PageSize
}

func (d Defaults) validate() error {
	if err := _validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if d.MaxPageSize != NoMaxPageSize && d.GetPageSize() > d.MaxPageSize {
		return fmt.Errorf("%w: default page size %d exceeds max page size %d",
			ErrInvalidConfig, d.GetPageSize(), d.MaxPageSize)
	}

	return nil
}

// IsNormalizedPageSizeMax clamps size to maxSize. The second return value is
// false when clamping took place. NoMaxPageSize disables the upper bound.
func IsNormalizedPageSizeMax(size int, maxSize int) (int, bool) {
	if maxSize != NoMaxPageSize && size > maxSize {
		return maxSize, false
	}

	return size, true
}

func NormalizePageSizeMax(size int, maxSize int) int {
	ret, _ := IsNormalizedPageSizeMax(size, maxSize)
	return ret
}

// Offset returns the number of rows preceding the given page.
func Offset(pageNumber, pageSize int) int {
	return pageSize * (pageNumber - 1)
}
