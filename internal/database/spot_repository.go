package database

import (
	"fmt"
	"strings"
)

// SpotRepository handles lookup queries against the spots table
type SpotRepository struct {
	db DB
}

// NewSpotRepository creates a new spot repository
func NewSpotRepository(db DB) *SpotRepository {
	return &SpotRepository{
		db: db,
	}
}

// FindSpotIDsByName matches keywords as substrings of the spot name or
// its alternate names
func (r *SpotRepository) FindSpotIDsByName(keywords []string) ([]int, error) {
	return r.findSpotIDsByColumns([]string{"name", "alt_names"}, keywords)
}

// FindSpotIDsByCategory matches keywords as substrings of the primary category
func (r *SpotRepository) FindSpotIDsByCategory(keywords []string) ([]int, error) {
	return r.findSpotIDsByColumns([]string{"primary_category"}, keywords)
}

// FindSpotIDsByTags matches keywords as substrings of the free-text tags
func (r *SpotRepository) FindSpotIDsByTags(keywords []string) ([]int, error) {
	return r.findSpotIDsByColumns([]string{"tags"}, keywords)
}

// FindSpotIDsByDescription matches keywords as substrings of the description
func (r *SpotRepository) FindSpotIDsByDescription(keywords []string) ([]int, error) {
	return r.findSpotIDsByColumns([]string{"description"}, keywords)
}

// findSpotIDsByColumns builds one OR clause per keyword per column.
// Substring matching is case-sensitive against the stored collation; a
// NULL column never matches.
func (r *SpotRepository) findSpotIDsByColumns(columns []string, keywords []string) ([]int, error) {
	if len(keywords) == 0 {
		return []int{}, nil
	}

	var clauses []string
	var args []interface{}
	for i, kw := range keywords {
		for _, col := range columns {
			clauses = append(clauses, fmt.Sprintf("%s LIKE '%%' || $%d || '%%'", col, i+1))
		}
		args = append(args, kw)
	}

	query := fmt.Sprintf(`
		SELECT spot_id
		FROM spots
		WHERE %s
		ORDER BY spot_id
	`, strings.Join(clauses, " OR "))

	var ids []int
	if err := r.db.Select(&ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to look up spots by %s: %w", strings.Join(columns, "/"), err)
	}

	return ids, nil
}
