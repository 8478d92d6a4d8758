package services

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tadamikanko/route-chat-backend/internal/database"
)

func newCandidateService(t *testing.T) (*CandidateService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := database.NewSpotRepository(newTestDB(db))
	return NewCandidateService(repo, testLogger()), mock, func() { db.Close() }
}

func TestResolveCascadeStopsAtFirstMatch(t *testing.T) {
	service, mock, cleanup := newCandidateService(t)
	defer cleanup()

	// Keywords match only the tags field: name and category must have
	// been attempted and found empty first. sqlmock expectations are
	// ordered, so this also pins the cascade order.
	mock.ExpectQuery(`WHERE name LIKE`).WithArgs("撮影").
		WillReturnRows(sqlmock.NewRows([]string{"spot_id"}))
	mock.ExpectQuery(`WHERE primary_category LIKE`).WithArgs("撮影").
		WillReturnRows(sqlmock.NewRows([]string{"spot_id"}))
	mock.ExpectQuery(`WHERE tags LIKE`).WithArgs("撮影").
		WillReturnRows(sqlmock.NewRows([]string{"spot_id"}).AddRow(2).AddRow(5))

	ids := service.Resolve([]string{"撮影"})
	assert.Equal(t, []int{2, 5}, ids)

	// The description tier never ran
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveEmptyKeywords(t *testing.T) {
	service, mock, cleanup := newCandidateService(t)
	defer cleanup()

	ids := service.Resolve(nil)
	assert.Empty(t, ids)

	ids = service.Resolve([]string{})
	assert.Empty(t, ids)

	// No strategy executed
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveStrategyErrorFallsThrough(t *testing.T) {
	service, mock, cleanup := newCandidateService(t)
	defer cleanup()

	mock.ExpectQuery(`WHERE name LIKE`).WithArgs("温泉").
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectQuery(`WHERE primary_category LIKE`).WithArgs("温泉").
		WillReturnRows(sqlmock.NewRows([]string{"spot_id"}).AddRow(7))

	ids := service.Resolve([]string{"温泉"})
	assert.Equal(t, []int{7}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAllStrategiesEmpty(t *testing.T) {
	service, mock, cleanup := newCandidateService(t)
	defer cleanup()

	for _, column := range []string{"name", "primary_category", "tags", "description"} {
		mock.ExpectQuery(fmt.Sprintf(`WHERE %s LIKE`, column)).WithArgs("該当なし").
			WillReturnRows(sqlmock.NewRows([]string{"spot_id"}))
	}

	ids := service.Resolve([]string{"該当なし"})
	assert.Empty(t, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}
