package gopaginate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	DocumentTypeAll      = "all"
	DocumentTypeAllAlias = "todos"

	zeroDate       = "0000-00-00"
	dateLayout     = "2006-01-02"
	endOfDayLayout = "2006-01-02 23:59:59"
)

var _dateLayouts = []string{
	dateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// Filters is the named filter set understood by dialect backed pagers. Blank
// strings, zero dates and the "all"/"todos" document type are sentinels: the
// corresponding condition is not rendered.
type Filters struct {
	EmitterID  string
	ReceiverID string
	Series     string
	Folio      string
	StartDate  time.Time
	EndDate    time.Time
	// LimitDate is a second upper bound on the issue date, rendered exactly
	// like EndDate.
	LimitDate    time.Time
	DocumentType string
	Amount       string
}

// filterPosition is the index of each filter in the parameter list read by
// FiltersFromVars.
type filterPosition int

const (
	positionEmitterID filterPosition = iota
	positionReceiverID
	positionSeries
	positionFolio
	positionStartDate
	positionEndDate
	positionLimitDate
	positionDocumentType
	positionAmount

	filterLayoutSize
)

// FiltersFromVars reads Filters from the bound parameters of a query whose
// conditions were added in this exact order:
//
//	emitter id, receiver id, series, folio, start date, end date,
//	limit date, document type, amount
//
// Parameters beyond the ninth are ignored. Fewer parameters, or values that
// cannot be interpreted, yield ErrFilterLayout.
func FiltersFromVars(vars []any) (Filters, error) {
	if len(vars) < int(filterLayoutSize) {
		return Filters{}, fmt.Errorf("%w: want at least %d parameters, got %d", ErrFilterLayout, filterLayoutSize, len(vars))
	}

	var (
		f   Filters
		err error
	)

	f.EmitterID = stringVar(vars[positionEmitterID])
	f.ReceiverID = stringVar(vars[positionReceiverID])
	f.Series = stringVar(vars[positionSeries])
	f.Folio = stringVar(vars[positionFolio])
	f.DocumentType = stringVar(vars[positionDocumentType])
	f.Amount = stringVar(vars[positionAmount])

	if f.StartDate, err = dateVar(vars[positionStartDate]); err != nil {
		return Filters{}, fmt.Errorf("%w: start date: %w", ErrFilterLayout, err)
	}
	if f.EndDate, err = dateVar(vars[positionEndDate]); err != nil {
		return Filters{}, fmt.Errorf("%w: end date: %w", ErrFilterLayout, err)
	}
	if f.LimitDate, err = dateVar(vars[positionLimitDate]); err != nil {
		return Filters{}, fmt.Errorf("%w: limit date: %w", ErrFilterLayout, err)
	}

	return f, nil
}

// FiltersFromQuery renders query without executing it and passes its bound
// parameters to FiltersFromVars. dest is a pointer to the slice the query
// would normally be scanned into.
func FiltersFromQuery(query *gorm.DB, dest any) (Filters, error) {
	tx := query.Session(&gorm.Session{DryRun: true}).Find(dest)
	if tx.Error != nil {
		return Filters{}, fmt.Errorf("failed to render query: %w", tx.Error)
	}

	return FiltersFromVars(tx.Statement.Vars)
}

// IsEmpty returns true when no filter would be rendered.
func (f Filters) IsEmpty() bool {
	return len(f.conjunction(_emptyColumns)) == 0
}

// _emptyColumns is only used to evaluate sentinels.
var _emptyColumns = FilterColumns{}

func (f Filters) conjunction(columns FilterColumns) tConjunction {
	return tConjunction{}.
		with(isBlank(f.EmitterID), columns.EmitterID, OperatorEq, strings.TrimSpace(f.EmitterID)).
		with(isBlank(f.ReceiverID), columns.ReceiverID, OperatorEq, strings.TrimSpace(f.ReceiverID)).
		with(isBlank(f.Series), columns.Series, OperatorEq, strings.TrimSpace(f.Series)).
		with(isBlank(f.Folio), columns.Folio, OperatorEq, strings.TrimSpace(f.Folio)).
		with(f.StartDate.IsZero(), columns.IssueDate, OperatorGTE, f.StartDate.Format(dateLayout)).
		with(f.EndDate.IsZero(), columns.IssueDate, OperatorLTE, f.EndDate.Format(endOfDayLayout)).
		with(f.LimitDate.IsZero(), columns.IssueDate, OperatorLTE, f.LimitDate.Format(endOfDayLayout)).
		with(isAllDocumentTypes(f.DocumentType), columns.DocumentType, OperatorEq, strings.TrimSpace(f.DocumentType)).
		with(isBlank(f.Amount), columns.Amount, OperatorEq, strings.TrimSpace(f.Amount))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isAllDocumentTypes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "" || s == DocumentTypeAll || s == DocumentTypeAllAlias
}

func stringVar(v any) string {
	switch vt := v.(type) {
	case nil:
		return ""
	case string:
		return vt
	case []byte:
		return string(vt)
	case *string:
		return lo.FromPtr(vt)
	case time.Time:
		if vt.IsZero() {
			return ""
		}
		return vt.Format(dateLayout)
	case int:
		return strconv.Itoa(vt)
	case int64:
		return strconv.FormatInt(vt, 10)
	case float64:
		return strconv.FormatFloat(vt, 'f', -1, 64)
	case fmt.Stringer:
		return vt.String()
	default:
		return fmt.Sprint(v)
	}
}

func dateVar(v any) (time.Time, error) {
	switch vt := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return vt, nil
	case *time.Time:
		return lo.FromPtr(vt), nil
	case string, []byte, *string:
		return parseDate(stringVar(vt))
	default:
		return time.Time{}, fmt.Errorf("unsupported date value type %T", v)
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == zeroDate || strings.HasPrefix(s, zeroDate+" ") {
		return time.Time{}, nil
	}

	for _, layout := range _dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse date '%s'", s)
}
