package models

// Stop represents a transit stop row in the stops table
type Stop struct {
	StopID   int     `json:"stop_id" db:"stop_id"`
	RouteID  int     `json:"route_id" db:"route_id"`
	StopName string  `json:"stop_name" db:"stop_name"`
	Lat      float64 `json:"lat" db:"lat"`
	Lon      float64 `json:"lon" db:"lon"`
}

// TransportRoute represents a row in the transport_routes table
type TransportRoute struct {
	RouteID       int    `json:"route_id" db:"route_id"`
	RouteName     string `json:"route_name" db:"route_name"`
	TransportType string `json:"transport_type" db:"transport_type"` // "rail", "bus", ...
}

// TimetableEntry represents a single departure in the timetables table.
// Departure times are zero-padded "HH:MM" strings, so lexicographic
// order equals temporal order.
type TimetableEntry struct {
	RouteID       int    `json:"route_id" db:"route_id"`
	StopID        int    `json:"stop_id" db:"stop_id"`
	DepartureTime string `json:"departure_time" db:"departure_time"`
}

// SpotStopLink represents a row in the stop_to_spot table connecting a
// spot to a reachable stop with the walking time between them.
type SpotStopLink struct {
	StopID      int `json:"stop_id" db:"stop_id"`
	SpotID      int `json:"spot_id" db:"spot_id"`
	WalkMinutes int `json:"walk_minutes" db:"walk_minutes"`
}
