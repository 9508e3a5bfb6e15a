package gopaginate

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Direction defines the sort direction of the ranking window.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

// JoinKind is the join used between the base and the joined table.
type JoinKind string

const (
	JoinInner JoinKind = "INNER JOIN"
	JoinLeft  JoinKind = "LEFT JOIN"
)

func (j JoinKind) Valid() bool {
	return j == JoinInner || j == JoinLeft
}

// FilterColumns maps every filter of Filters to a qualified column.
type FilterColumns struct {
	EmitterID    string
	ReceiverID   string
	Series       string
	Folio        string
	IssueDate    string
	DocumentType string
	Amount       string
}

// Table is a table reference with its alias.
type Table struct {
	Name  string
	Alias string
}

func (t Table) String() string {
	if t.Alias == "" {
		return t.Name
	}

	return t.Name + " " + t.Alias
}

// Dialect describes one of the schemas whose pages are fetched with a raw,
// windowed statement instead of the structured query. Every dialect shares
// the same statement template; only names and join shape differ.
type Dialect struct {
	Name string
	// Base is the table holding the paginated documents.
	Base Table
	// Joined is joined to Base on JoinCondition with JoinKind.
	Joined        Table
	JoinKind      JoinKind
	JoinCondition string
	// IDColumn is the document identity, used for distinct counting.
	IDColumn string
	// SelectColumns is the projection of the fetched rows.
	SelectColumns []string
	// RankDirection orders IssueDate inside the ranking window.
	RankDirection Direction
	Columns       FilterColumns
}

// DialectCFDI targets the electronic invoice schema: documents and their
// fiscal stamps, one stamp per document.
var DialectCFDI = &Dialect{
	Name:          "cfdi",
	Base:          Table{Name: "cfdi_comprobantes", Alias: "c"},
	Joined:        Table{Name: "cfdi_timbres", Alias: "t"},
	JoinKind:      JoinInner,
	JoinCondition: "t.comprobante_id = c.id",
	IDColumn:      "c.id",
	SelectColumns: []string{"c.*", "t.uuid", "t.fecha_timbrado"},
	RankDirection: DirectionDESC,
	Columns: FilterColumns{
		EmitterID:    "c.rfc_emisor",
		ReceiverID:   "c.rfc_receptor",
		Series:       "c.serie",
		Folio:        "c.folio",
		IssueDate:    "c.fecha_emision",
		DocumentType: "c.tipo_comprobante",
		Amount:       "c.total",
	},
}

// DialectLegacy targets the legacy invoicing schema where the emitter lives
// in its own table and may be missing.
var DialectLegacy = &Dialect{
	Name:          "legacy",
	Base:          Table{Name: "facturas", Alias: "f"},
	Joined:        Table{Name: "factura_emisores", Alias: "e"},
	JoinKind:      JoinLeft,
	JoinCondition: "e.id = f.emisor_id",
	IDColumn:      "f.id",
	SelectColumns: []string{"f.*", "e.rfc AS rfc_emisor", "e.razon_social AS emisor_razon_social"},
	RankDirection: DirectionDESC,
	Columns: FilterColumns{
		EmitterID:    "e.rfc",
		ReceiverID:   "f.rfc_cliente",
		Series:       "f.serie",
		Folio:        "f.numero",
		IssueDate:    "f.fecha",
		DocumentType: "f.tipo_documento",
		Amount:       "f.importe",
	},
}

var _dialects = []*Dialect{DialectCFDI, DialectLegacy}

// Dialects returns the known dialects.
func Dialects() []*Dialect {
	return append([]*Dialect(nil), _dialects...)
}

// LookupDialect returns the known dialect with the given name.
func LookupDialect(name string) (*Dialect, error) {
	d, ok := lo.Find(_dialects, func(d *Dialect) bool {
		return strings.EqualFold(d.Name, name)
	})
	if !ok {
		names := lo.Map(_dialects, func(d *Dialect, _ int) string { return d.Name })
		return nil, fmt.Errorf("%w '%s', closest: '%s'", ErrUnknownDialect, name, closestAlias(name, names))
	}

	return d, nil
}

// Where renders the WHERE clause for f, or an empty string when every filter
// is a sentinel. Values are returned for "?" placeholders.
func (d *Dialect) Where(f Filters) (string, []any) {
	return f.conjunction(d.Columns).toWhereClause()
}

// CountSQL renders the statement counting distinct documents matched by f.
//
// Example:
//
//	SELECT COUNT(DISTINCT c.id) FROM cfdi_comprobantes c INNER JOIN cfdi_timbres t ON t.comprobante_id = c.id WHERE c.serie = ?
func (d *Dialect) CountSQL(f Filters) (string, []any) {
	where, values := d.Where(f)

	return joinSQL(
		fmt.Sprintf("SELECT COUNT(DISTINCT %s) FROM %s", d.IDColumn, d.from()),
		where,
	), values
}

// PageSQL renders the statement fetching one page of documents matched by f.
// Rows are ranked with ROW_NUMBER over the issue date and the page is cut by
// rank bounds (offset, offset+pageSize].
//
// Example:
//
//	WITH paged AS (SELECT c.*, ROW_NUMBER() OVER (ORDER BY c.fecha_emision DESC) AS row_num FROM ... WHERE ...)
//	SELECT * FROM paged WHERE row_num > ? AND row_num <= ?
func (d *Dialect) PageSQL(f Filters, pageNumber, pageSize int) (string, []any) {
	where, values := d.Where(f)
	offset := Offset(pageNumber, pageSize)

	ranked := joinSQL(
		fmt.Sprintf(
			"SELECT %s, ROW_NUMBER() OVER (ORDER BY %s %s) AS %s FROM %s",
			strings.Join(d.SelectColumns, ", "),
			d.Columns.IssueDate,
			lo.Ternary(d.RankDirection == "", DirectionDESC, d.RankDirection),
			rowNumberColumn,
			d.from(),
		),
		where,
	)

	sql := fmt.Sprintf(
		"WITH %s AS (%s) SELECT * FROM %s WHERE %s > ? AND %s <= ?",
		windowName, ranked, windowName, rowNumberColumn, rowNumberColumn,
	)

	return sql, append(values, offset, offset+pageSize)
}

const (
	windowName      = "paged"
	rowNumberColumn = "row_num"
)

func (d *Dialect) from() string {
	return fmt.Sprintf("%s %s %s ON %s", d.Base, d.JoinKind, d.Joined, d.JoinCondition)
}

func joinSQL(parts ...string) string {
	return strings.Join(lo.Compact(parts), " ")
}

var (
	_identifierSymbols = append([]rune("_."), lo.AlphanumericCharset...)
	_expressionSymbols = append([]rune("_.*=,() "), lo.AlphanumericCharset...)
)

// validate guards the descriptor against injection: names are restricted to
// identifier characters, expressions to a small SQL subset.
func (d *Dialect) validate() error {
	if d == nil {
		return fmt.Errorf("%w: dialect is nil", ErrInvalidDialect)
	}

	if !d.JoinKind.Valid() {
		return fmt.Errorf("%w: invalid join kind '%s'", ErrInvalidDialect, d.JoinKind)
	}

	if d.RankDirection != "" && !d.RankDirection.Valid() {
		return fmt.Errorf("%w: invalid rank direction '%s'", ErrInvalidDialect, d.RankDirection)
	}

	if len(d.SelectColumns) == 0 {
		return fmt.Errorf("%w: empty select list", ErrInvalidDialect)
	}

	identifiers := []string{
		d.Base.Name, d.Base.Alias, d.Joined.Name, d.Joined.Alias, d.IDColumn,
		d.Columns.EmitterID, d.Columns.ReceiverID, d.Columns.Series, d.Columns.Folio,
		d.Columns.IssueDate, d.Columns.DocumentType, d.Columns.Amount,
	}
	for _, identifier := range identifiers {
		if !lo.Every(_identifierSymbols, []rune(identifier)) {
			return fmt.Errorf("%w: identifier contains forbidden symbols '%s'", ErrInvalidDialect, identifier)
		}
	}

	// Aliases are the only optional identifiers.
	required := []string{
		d.Base.Name, d.Joined.Name, d.IDColumn,
		d.Columns.EmitterID, d.Columns.ReceiverID, d.Columns.Series, d.Columns.Folio,
		d.Columns.IssueDate, d.Columns.DocumentType, d.Columns.Amount,
	}
	if lo.Contains(required, "") {
		return fmt.Errorf("%w: missing table or column name", ErrInvalidDialect)
	}

	for _, expr := range append([]string{d.JoinCondition}, d.SelectColumns...) {
		if expr == "" || !lo.Every(_expressionSymbols, []rune(expr)) {
			return fmt.Errorf("%w: expression contains forbidden symbols '%s'", ErrInvalidDialect, expr)
		}
	}

	return nil
}
