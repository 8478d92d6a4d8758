package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tadamikanko/route-chat-backend/internal/database"
)

const validSelect = "SELECT name, primary_category FROM spots"

func newChatService(t *testing.T, gateway *stubGateway) (*ChatService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	tdb := newTestDB(db)
	logger := testLogger()

	service := NewChatService(
		NewSQLGenService(gateway, logger),
		database.NewReadOnlyRepository(tdb),
		NewCandidateService(database.NewSpotRepository(tdb), logger),
		NewItineraryService(database.NewItineraryRepository(tdb), logger),
		logger,
	)
	return service, mock, func() { db.Close() }
}

func expectPreviewQuery(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT name, primary_category FROM spots`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "primary_category"}).
			AddRow("圓藏寺", "寺社"))
}

func TestAnswerGenerationFailures(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{name: "empty output", response: ""},
		{name: "whitespace only", response: "  \n  "},
		{name: "not a select", response: "DROP TABLE spots;"},
		{name: "implausibly short", response: "select 1"},
		{name: "gateway error", err: fmt.Errorf("api returned status 500")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mock, cleanup := newChatService(t, &stubGateway{response: tt.response, err: tt.err})
			defer cleanup()

			resp := service.Answer(context.Background(), "只見線に乗りたい")
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, generationFailureMessage, resp.Error)
			assert.Empty(t, resp.ResultMD)

			if tt.err == nil {
				// The offending text is included for transparency
				assert.Equal(t, tt.response, resp.SQL)
			}

			// The data store was never touched
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAnswerExecutionFailure(t *testing.T) {
	service, mock, cleanup := newChatService(t, &stubGateway{response: validSelect})
	defer cleanup()

	mock.ExpectQuery(`SELECT name, primary_category FROM spots`).
		WillReturnError(fmt.Errorf(`relation "spots" does not exist`))

	resp := service.Answer(context.Background(), "お寺が見たい")
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, validSelect, resp.SQL)
	assert.Contains(t, resp.Error, executionFailureMessage)
	assert.Contains(t, resp.Error, "does not exist")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerNoRecognizableKeywords(t *testing.T) {
	service, mock, cleanup := newChatService(t, &stubGateway{response: validSelect})
	defer cleanup()

	expectPreviewQuery(mock)

	// Single-rune tokens are dropped, so no candidate strategy runs
	resp := service.Answer(context.Background(), "あ!")
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, noCandidatesMessage, resp.RouteMD)
	assert.Contains(t, resp.ResultMD, "結果 (上位 5 件)")
	assert.Contains(t, resp.ResultMD, "圓藏寺")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerNamedRouteShortcutOverBudget(t *testing.T) {
	service, mock, cleanup := newChatService(t, &stubGateway{response: validSelect})
	defer cleanup()

	expectPreviewQuery(mock)

	// Full route sums to 235 minutes against a 180-minute budget
	mock.ExpectQuery(`FROM transport_routes`).WithArgs("只見線").
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow("圓藏寺", "会津柳津駅", "只見線", "09:05", 10, 30, 60).
			AddRow("蒲生岳", "只見駅", "只見線", "11:06", 15, 120, 150))

	resp := service.Answer(context.Background(), "只見線に乗りたい、3時間")
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, resp.RouteMD, "3時間")
	assert.NotContains(t, resp.RouteMD, "おすすめルート")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerNamedRouteShortcutWithinBudget(t *testing.T) {
	service, mock, cleanup := newChatService(t, &stubGateway{response: validSelect})
	defer cleanup()

	expectPreviewQuery(mock)

	mock.ExpectQuery(`FROM transport_routes`).WithArgs("只見線").
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow("圓藏寺", "会津柳津駅", "只見線", "09:05", 10, 30, 60).
			AddRow("河井継之助記念館", "只見駅", "只見線", "11:06", 15, 30, nil))

	resp := service.Answer(context.Background(), "只見線に乗りたい、3時間")
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, resp.RouteMD, "おすすめルート")
	assert.Contains(t, resp.RouteMD, "約115分")
	assert.Contains(t, resp.RouteMD, "09:05発")
	assert.Contains(t, resp.RouteMD, "徒歩10分")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerGeneralPath(t *testing.T) {
	service, mock, cleanup := newChatService(t, &stubGateway{response: validSelect})
	defer cleanup()

	expectPreviewQuery(mock)

	// Keywords 紅葉 and 絶景: the name tier misses, the category tier hits
	mock.ExpectQuery(`WHERE name LIKE`).WithArgs("紅葉", "絶景").
		WillReturnRows(sqlmock.NewRows([]string{"spot_id"}))
	mock.ExpectQuery(`WHERE primary_category LIKE`).WithArgs("紅葉", "絶景").
		WillReturnRows(sqlmock.NewRows([]string{"spot_id"}).AddRow(2))

	mock.ExpectQuery(`WHERE sp.spot_id IN`).WithArgs(2).
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow("只見川第一橋梁ビューポイント", "会津川口駅", "只見線", "10:02", 25, 20, 40))

	resp := service.Answer(context.Background(), "紅葉、絶景")
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, resp.RouteMD, "おすすめルート")
	assert.Contains(t, resp.RouteMD, "只見川第一橋梁ビューポイント")
	// general path: stay only, walk excluded
	assert.Contains(t, resp.RouteMD, "約40分")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerNoRouteFound(t *testing.T) {
	service, mock, cleanup := newChatService(t, &stubGateway{response: validSelect})
	defer cleanup()

	expectPreviewQuery(mock)

	// Shortcut itinerary query fails: swallowed into the fixed narrative
	mock.ExpectQuery(`FROM transport_routes`).WithArgs("只見線").
		WillReturnError(fmt.Errorf("connection reset"))

	resp := service.Answer(context.Background(), "只見線に乗りたい")
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, noRouteMessage, resp.RouteMD)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsValidSelect(t *testing.T) {
	tests := []struct {
		query string
		valid bool
	}{
		{"", false},
		{"   ", false},
		{"select 1", false},
		{"DELETE FROM spots WHERE spot_id = 1", false},
		{"SELECT name FROM spots", true},
		{"  select name\nfrom spots\n", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, isValidSelect(tt.query), "query %q", tt.query)
	}
}
