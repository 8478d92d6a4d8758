package services

import (
	"context"
	"database/sql"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// testDB adapts a sqlmock connection to the database.DB interface
type testDB struct {
	db *sqlx.DB
}

func newTestDB(db *sql.DB) *testDB {
	return &testDB{db: sqlx.NewDb(db, "sqlmock")}
}

func (m *testDB) Get(dest interface{}, query string, args ...interface{}) error {
	return m.db.Get(dest, query, args...)
}

func (m *testDB) Select(dest interface{}, query string, args ...interface{}) error {
	return m.db.Select(dest, query, args...)
}

func (m *testDB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *testDB) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *testDB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *testDB) Ping() error {
	return m.db.Ping()
}

func (m *testDB) Close() error {
	return m.db.Close()
}

// testLogger returns a logger that swallows output
func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// stubGateway is a deterministic llm.Gateway for pipeline tests
type stubGateway struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (g *stubGateway) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	g.lastSystem = systemPrompt
	g.lastUser = userPrompt
	return g.response, g.err
}

func (g *stubGateway) GetName() string {
	return "stub"
}
