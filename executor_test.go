package gopaginate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tInvoiceRow struct {
	ID    int64  `db:"id" gorm:"column:id"`
	Serie string `db:"serie" gorm:"column:serie"`
}

func Test_GORMExecutor(t *testing.T) {
	for _, sqlMockFn := range _sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery("^SELECT COUNT\\(DISTINCT c\\.id\\) FROM invoices c WHERE c\\.serie = " + anyPlaceholder + "$").
				WithArgs("A").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

			dbMock.ExpectQuery("^SELECT \\* FROM invoices WHERE serie = " + anyPlaceholder + "$").
				WithArgs("A").
				WillReturnRows(sqlmock.NewRows([]string{"id", "serie", "row_num"}).AddRow(1, "A", 1).AddRow(2, "A", 2))

			executor := NewGORMExecutor(db)

			count, err := executor.Count(context.Background(), "SELECT COUNT(DISTINCT c.id) FROM invoices c WHERE c.serie = ?", "A")
			require.NoError(t, err)
			require.Equal(t, int64(42), count)

			var rows []tInvoiceRow
			err = executor.Select(context.Background(), &rows, "SELECT * FROM invoices WHERE serie = ?", "A")
			require.NoError(t, err)
			require.Equal(t, []tInvoiceRow{{ID: 1, Serie: "A"}, {ID: 2, Serie: "A"}}, rows)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_GORMExecutor_Errors(t *testing.T) {
	_, db, dbMock, err := newGORMMySQLMock()
	require.NoError(t, err)

	errBroken := errors.New("broken connection")
	dbMock.ExpectQuery("^SELECT COUNT").WillReturnError(errBroken)
	dbMock.ExpectQuery("^SELECT \\*").WillReturnError(errBroken)

	executor := NewGORMExecutor(db)

	_, err = executor.Count(context.Background(), "SELECT COUNT(*) FROM invoices")
	require.ErrorIs(t, err, errBroken)

	var rows []tInvoiceRow
	err = executor.Select(context.Background(), &rows, "SELECT * FROM invoices")
	require.ErrorIs(t, err, errBroken)

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_SQLXExecutor(t *testing.T) {
	tests := []struct {
		driverName        string
		expectedCountSQL  string
		expectedSelectSQL string
	}{
		{
			driverName:        "mysql",
			expectedCountSQL:  "SELECT COUNT(DISTINCT c.id) FROM invoices c WHERE c.serie = ?",
			expectedSelectSQL: "SELECT * FROM invoices WHERE serie = ? AND row_num > ? AND row_num <= ?",
		},
		{
			driverName:        "postgres",
			expectedCountSQL:  "SELECT COUNT(DISTINCT c.id) FROM invoices c WHERE c.serie = $1",
			expectedSelectSQL: "SELECT * FROM invoices WHERE serie = $1 AND row_num > $2 AND row_num <= $3",
		},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("sqlx %s", tt.driverName), func(t *testing.T) {
			db, dbMock, err := newSQLXMock(tt.driverName)
			require.NoError(t, err)

			dbMock.ExpectQuery("^" + regexp.QuoteMeta(tt.expectedCountSQL) + "$").
				WithArgs("A").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

			dbMock.ExpectQuery("^"+regexp.QuoteMeta(tt.expectedSelectSQL)+"$").
				WithArgs("A", 0, 2).
				WillReturnRows(sqlmock.NewRows([]string{"id", "serie", "row_num"}).AddRow(7, "A", 1).AddRow(8, "A", 2))

			executor := NewSQLXExecutor(db)

			count, err := executor.Count(context.Background(), "SELECT COUNT(DISTINCT c.id) FROM invoices c WHERE c.serie = ?", "A")
			require.NoError(t, err)
			require.Equal(t, int64(3), count)

			var rows []tInvoiceRow
			err = executor.Select(
				context.Background(),
				&rows,
				"SELECT * FROM invoices WHERE serie = ? AND row_num > ? AND row_num <= ?",
				"A", 0, 2,
			)
			require.NoError(t, err)
			require.Equal(t, []tInvoiceRow{{ID: 7, Serie: "A"}, {ID: 8, Serie: "A"}}, rows)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}
