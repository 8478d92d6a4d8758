package services

import (
	"github.com/sirupsen/logrus"
	"github.com/tadamikanko/route-chat-backend/internal/database"
)

// spotLookup is one candidate-matching strategy against the spots table
type spotLookup func(keywords []string) ([]int, error)

// lookupStrategy pairs a strategy with a name for logging. Keeping the
// cascade as a plain ordered slice lets a tier be replaced (say, by a
// text-search index) without touching the control flow.
type lookupStrategy struct {
	name string
	find spotLookup
}

// CandidateService resolves search keywords to candidate spot IDs by
// cascading through lookup strategies of decreasing specificity
type CandidateService struct {
	strategies []lookupStrategy
	logger     *logrus.Logger
}

// NewCandidateService creates a new candidate resolution service with
// the default name → category → tag → description cascade
func NewCandidateService(repo *database.SpotRepository, logger *logrus.Logger) *CandidateService {
	return &CandidateService{
		strategies: []lookupStrategy{
			{name: "name", find: repo.FindSpotIDsByName},
			{name: "category", find: repo.FindSpotIDsByCategory},
			{name: "tag", find: repo.FindSpotIDsByTags},
			{name: "description", find: repo.FindSpotIDsByDescription},
		},
		logger: logger,
	}
}

// Resolve tries each strategy in order and returns the first non-empty
// result. A failing strategy is logged and skipped; exhausting every
// strategy yields an empty slice, which the caller reports as "no
// candidates" rather than an error.
func (s *CandidateService) Resolve(keywords []string) []int {
	if len(keywords) == 0 {
		return []int{}
	}

	for _, strategy := range s.strategies {
		ids, err := strategy.find(keywords)
		if err != nil {
			s.logger.WithError(err).WithField("strategy", strategy.name).
				Warn("Candidate lookup failed, falling through to next strategy")
			continue
		}
		if len(ids) > 0 {
			s.logger.WithFields(logrus.Fields{
				"strategy":   strategy.name,
				"candidates": len(ids),
			}).Debug("Candidate lookup matched")
			return ids
		}
	}

	return []int{}
}
