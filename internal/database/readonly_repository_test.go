package database

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSelect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReadOnlyRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT name, primary_category FROM spots`).
			WillReturnRows(sqlmock.NewRows([]string{"name", "primary_category"}).
				AddRow("圓藏寺", "寺社").
				AddRow("只見湖", nil))

		result, err := repo.RunSelect("SELECT name, primary_category FROM spots")
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "primary_category"}, result.Columns)
		require.Len(t, result.Rows, 2)

		require.NotNil(t, result.Rows[0][0])
		assert.Equal(t, "圓藏寺", *result.Rows[0][0])

		// NULL column stays nil
		assert.Nil(t, result.Rows[1][1])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Execution Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT broken`).
			WillReturnError(fmt.Errorf(`column "broken" does not exist`))

		result, err := repo.RunSelect("SELECT broken FROM spots")
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "query execution failed")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
