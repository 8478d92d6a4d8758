package models

// ChatRequest represents a visitor's free-text travel question
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// ChatResponse represents the structured answer returned to the UI
type ChatResponse struct {
	Status   string `json:"status"`              // "ok" or "error"
	SQL      string `json:"sql"`                 // generated SQL, possibly invalid
	ResultMD string `json:"result_md,omitempty"` // markdown preview of the raw result
	RouteMD  string `json:"route_md,omitempty"`  // itinerary narrative
	Error    string `json:"error,omitempty"`     // user-facing failure message
}

// Constraints holds the time budget and start time extracted from the
// question. Fields are nil when the question carries no such pattern.
// Built fresh per request and never mutated afterwards.
type Constraints struct {
	MaxMinutes *int
	StartTime  *string // zero-padded "HH:MM"
}

// ItineraryStop is one visited spot in the produced day plan
type ItineraryStop struct {
	SpotName      string  `json:"spot_name"`
	StopName      string  `json:"stop_name"`
	RouteName     *string `json:"route_name,omitempty"`
	DepartureTime *string `json:"departure_time,omitempty"` // "HH:MM", nil when no timetable entry
	WalkMinutes   int     `json:"walk_minutes"`
	StayMinutes   int     `json:"stay_minutes"`
}

// Itinerary is the ordered, duration-annotated plan for one request
type Itinerary struct {
	Stops        []ItineraryStop `json:"stops"`
	TotalMinutes int             `json:"total_minutes"`
}

// PlanRow is one joined spot/stop/route/timetable row as returned by the
// itinerary queries, ordered by departure time with NULLs last.
type PlanRow struct {
	SpotName        string  `db:"spot_name"`
	StopName        string  `db:"stop_name"`
	RouteName       *string `db:"route_name"`
	DepartureTime   *string `db:"departure_time"`
	WalkMinutes     *int    `db:"walk_minutes"`
	MinStayMinutes  *int    `db:"min_stay_minutes"`
	BaseStayMinutes *int    `db:"base_stay_minutes"`
}

// StayMinutes resolves the row's planning stay duration per the same
// rule as Spot.StayMinutes.
func (r *PlanRow) StayMinutes() int {
	if r.BaseStayMinutes != nil {
		return *r.BaseStayMinutes
	}
	if r.MinStayMinutes != nil {
		return *r.MinStayMinutes
	}
	return DefaultStayMinutes
}

// ResultSet holds the columns and stringified rows of an executed
// read-only query. NULL values are nil.
type ResultSet struct {
	Columns []string
	Rows    [][]*string
}
