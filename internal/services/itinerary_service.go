package services

import (
	"github.com/sirupsen/logrus"
	"github.com/tadamikanko/route-chat-backend/internal/database"
	"github.com/tadamikanko/route-chat-backend/internal/models"
)

// ItineraryService assembles ordered day plans from joined
// spot/stop/route/timetable rows under the extracted time constraints
type ItineraryService struct {
	repo   *database.ItineraryRepository
	logger *logrus.Logger
}

// NewItineraryService creates a new itinerary assembly service
func NewItineraryService(repo *database.ItineraryRepository, logger *logrus.Logger) *ItineraryService {
	return &ItineraryService{
		repo:   repo,
		logger: logger,
	}
}

// AssembleForRoute builds the named-route shortcut itinerary: every
// spot reachable from the route's stops, walk time included. A query
// failure is swallowed into a no-route outcome.
func (s *ItineraryService) AssembleForRoute(routeName string, c models.Constraints) (*models.Itinerary, bool) {
	rows, err := s.repo.FindPlanRowsByRoute(routeName)
	if err != nil {
		s.logger.WithError(err).WithField("route", routeName).
			Warn("Itinerary query failed, reporting no route")
		return nil, false
	}
	return s.build(rows, c, true)
}

// AssembleForSpots builds the general-path itinerary for the resolved
// candidate spots; walk time is not accumulated on this path.
func (s *ItineraryService) AssembleForSpots(spotIDs []int, c models.Constraints) (*models.Itinerary, bool) {
	if len(spotIDs) == 0 {
		return nil, false
	}

	rows, err := s.repo.FindPlanRowsBySpots(spotIDs)
	if err != nil {
		s.logger.WithError(err).WithField("candidates", len(spotIDs)).
			Warn("Itinerary query failed, reporting no route")
		return nil, false
	}
	return s.build(rows, c, false)
}

// build applies the common filter/accumulate algorithm. The second
// return value reports that rows were kept but their total exceeded the
// budget; the budget caps the whole plan, never a prefix, and a total
// exactly equal to the budget is accepted.
func (s *ItineraryService) build(rows []models.PlanRow, c models.Constraints, includeWalk bool) (*models.Itinerary, bool) {
	itinerary := &models.Itinerary{
		Stops: []models.ItineraryStop{},
	}

	for _, row := range rows {
		// Departure times are zero-padded "HH:MM", so a plain string
		// comparison orders them correctly. Rows without a departure
		// are never filtered by start time.
		if c.StartTime != nil && row.DepartureTime != nil && *row.DepartureTime < *c.StartTime {
			continue
		}

		stop := models.ItineraryStop{
			SpotName:      row.SpotName,
			StopName:      row.StopName,
			RouteName:     row.RouteName,
			DepartureTime: row.DepartureTime,
			StayMinutes:   row.StayMinutes(),
		}
		if includeWalk && row.WalkMinutes != nil {
			stop.WalkMinutes = *row.WalkMinutes
		}

		itinerary.TotalMinutes += stop.StayMinutes + stop.WalkMinutes
		itinerary.Stops = append(itinerary.Stops, stop)
	}

	if len(itinerary.Stops) == 0 {
		return nil, false
	}

	if c.MaxMinutes != nil && itinerary.TotalMinutes > *c.MaxMinutes {
		s.logger.WithFields(logrus.Fields{
			"total_minutes": itinerary.TotalMinutes,
			"max_minutes":   *c.MaxMinutes,
		}).Debug("Itinerary rejected: over time budget")
		return nil, true
	}

	s.logger.WithFields(logrus.Fields{
		"stops":         len(itinerary.Stops),
		"total_minutes": itinerary.TotalMinutes,
	}).Debug("Itinerary assembled")

	return itinerary, false
}
