package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tadamikanko/route-chat-backend/internal/models"
)

// ItineraryRepository handles the joined spot/stop/route/timetable
// queries that feed day-plan assembly
type ItineraryRepository struct {
	db DB
}

// NewItineraryRepository creates a new itinerary repository
func NewItineraryRepository(db DB) *ItineraryRepository {
	return &ItineraryRepository{
		db: db,
	}
}

// FindPlanRowsByRoute returns every spot reachable from the named
// route's stops, one row per timetable departure. The timetable join is
// an outer join, so spots with no departure still appear and sort last.
func (r *ItineraryRepository) FindPlanRowsByRoute(routeName string) ([]models.PlanRow, error) {
	query := `
		SELECT
			sp.name AS spot_name,
			st.stop_name,
			tr.route_name,
			tt.departure_time,
			ss.walk_minutes,
			sp.min_stay_minutes,
			sp.base_stay_minutes
		FROM transport_routes tr
		JOIN stops st ON st.route_id = tr.route_id
		JOIN stop_to_spot ss ON ss.stop_id = st.stop_id
		JOIN spots sp ON sp.spot_id = ss.spot_id
		LEFT JOIN timetables tt ON tt.stop_id = st.stop_id AND tt.route_id = tr.route_id
		WHERE tr.route_name = $1
		ORDER BY tt.departure_time ASC NULLS LAST, st.stop_id, sp.spot_id
	`

	var rows []models.PlanRow
	if err := r.db.Select(&rows, query, routeName); err != nil {
		return nil, fmt.Errorf("failed to load plan rows for route %s: %w", routeName, err)
	}

	return rows, nil
}

// FindPlanRowsBySpots returns the joined rows for exactly the given
// candidate spots, in the same departure-time order as the route path.
func (r *ItineraryRepository) FindPlanRowsBySpots(spotIDs []int) ([]models.PlanRow, error) {
	if len(spotIDs) == 0 {
		return []models.PlanRow{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT
			sp.name AS spot_name,
			st.stop_name,
			tr.route_name,
			tt.departure_time,
			ss.walk_minutes,
			sp.min_stay_minutes,
			sp.base_stay_minutes
		FROM spots sp
		JOIN stop_to_spot ss ON ss.spot_id = sp.spot_id
		JOIN stops st ON st.stop_id = ss.stop_id
		JOIN transport_routes tr ON tr.route_id = st.route_id
		LEFT JOIN timetables tt ON tt.stop_id = st.stop_id AND tt.route_id = st.route_id
		WHERE sp.spot_id IN (?)
		ORDER BY tt.departure_time ASC NULLS LAST, sp.spot_id
	`, spotIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build spot plan query: %w", err)
	}

	var rows []models.PlanRow
	if err := r.db.Select(&rows, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, fmt.Errorf("failed to load plan rows for spots: %w", err)
	}

	return rows, nil
}
