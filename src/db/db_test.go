package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestDB(t *testing.T) {
	gormDB, _ := NewMockDB()
	NewDB(gormDB)

	assert.Equal(t, db.Name(), "postgres")
}

// Queries issued through the mock handle must reach sqlmock, never a real
// connection.
func TestMockDBRoutesQueriesToMock(t *testing.T) {
	gormDB, mock := NewMockDB()

	mock.ExpectQuery(`SELECT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	var n int
	assert.NoError(t, gormDB.Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
