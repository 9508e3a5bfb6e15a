package gopaginate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_tConjunct_toSQLClause(t *testing.T) {
	tests := []struct {
		name      string
		conjunct  tConjunct
		wantSQL   string
		wantValue any
	}{
		{
			name:      "string equality",
			conjunct:  tConjunct{Column: "c.serie", Operator: OperatorEq, Value: "A"},
			wantSQL:   "c.serie = ?",
			wantValue: "A",
		},
		{
			name:      "date lower bound",
			conjunct:  tConjunct{Column: "c.fecha_emision", Operator: OperatorGTE, Value: "2024-01-01"},
			wantSQL:   "c.fecha_emision >= ?",
			wantValue: "2024-01-01",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, value := tt.conjunct.toSQLClause()
			require.Equal(t, tt.wantSQL, sql)
			require.Equal(t, tt.wantValue, value)
		})
	}
}

func Test_tConjunction_toWhereClause(t *testing.T) {
	tests := []struct {
		name       string
		build      func() tConjunction
		wantSQL    string
		wantValues []any
	}{
		{
			name: "empty conjunction renders nothing",
			build: func() tConjunction {
				return nil
			},
			wantSQL:    "",
			wantValues: nil,
		},
		{
			name: "omitted conditions are skipped",
			build: func() tConjunction {
				return tConjunction{}.
					with(true, "a", OperatorEq, "").
					with(true, "b", OperatorEq, "")
			},
			wantSQL:    "",
			wantValues: nil,
		},
		{
			name: "first condition uses WHERE",
			build: func() tConjunction {
				return tConjunction{}.
					with(true, "a", OperatorEq, "").
					with(false, "b", OperatorEq, "x")
			},
			wantSQL:    "WHERE b = ?",
			wantValues: []any{"x"},
		},
		{
			name: "following conditions use AND",
			build: func() tConjunction {
				return tConjunction{}.
					with(false, "a", OperatorEq, 1).
					with(true, "b", OperatorEq, "").
					with(false, "c", OperatorLTE, "2024-01-31 23:59:59")
			},
			wantSQL:    "WHERE a = ? AND c <= ?",
			wantValues: []any{1, "2024-01-31 23:59:59"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, values := tt.build().toWhereClause()
			require.Equal(t, tt.wantSQL, sql)
			require.Equal(t, tt.wantValues, values)
		})
	}
}
