package database

import (
	"fmt"

	"github.com/tadamikanko/route-chat-backend/internal/models"
)

// ReadOnlyRepository executes generated SELECT statements and returns
// their rows in a driver-agnostic, stringified form
type ReadOnlyRepository struct {
	db DB
}

// NewReadOnlyRepository creates a new read-only query repository
func NewReadOnlyRepository(db DB) *ReadOnlyRepository {
	return &ReadOnlyRepository{
		db: db,
	}
}

// RunSelect executes the given SELECT statement and collects the full
// result set. The caller has already validated that the statement is
// read-only; this method runs it as-is.
func (r *ReadOnlyRepository) RunSelect(query string) (*models.ResultSet, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	result := &models.ResultSet{
		Columns: columns,
		Rows:    [][]*string{},
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		for i := range values {
			values[i] = new([]byte)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		row := make([]*string, len(columns))
		for i, v := range values {
			raw := *(v.(*[]byte))
			if raw != nil {
				s := string(raw)
				row[i] = &s
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate result rows: %w", err)
	}

	return result, nil
}
