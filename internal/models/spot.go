package models

// DefaultStayMinutes is assumed when a spot carries no stay estimate at all.
const DefaultStayMinutes = 30

// Spot represents a tourist spot row in the spots table
type Spot struct {
	SpotID          int      `json:"spot_id" db:"spot_id"`
	Name            string   `json:"name" db:"name"`
	AltNames        *string  `json:"alt_names,omitempty" db:"alt_names"`
	PrimaryCategory string   `json:"primary_category" db:"primary_category"`
	Tags            *string  `json:"tags,omitempty" db:"tags"`
	Description     *string  `json:"description,omitempty" db:"description"`
	Lat             float64  `json:"lat" db:"lat"`
	Lon             float64  `json:"lon" db:"lon"`
	MinStayMinutes  *int     `json:"min_stay_minutes,omitempty" db:"min_stay_minutes"`
	BaseStayMinutes *int     `json:"base_stay_minutes,omitempty" db:"base_stay_minutes"`
}

// StayMinutes returns the stay duration used for planning:
// base estimate if present, else the minimum estimate, else the default.
func (s *Spot) StayMinutes() int {
	if s.BaseStayMinutes != nil {
		return *s.BaseStayMinutes
	}
	if s.MinStayMinutes != nil {
		return *s.MinStayMinutes
	}
	return DefaultStayMinutes
}
