package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tadamikanko/route-chat-backend/internal/database"
	"github.com/tadamikanko/route-chat-backend/internal/models"
	"github.com/tadamikanko/route-chat-backend/internal/nlp"
)

const (
	// minSQLLength guards against one-word or truncated generations
	minSQLLength = 15
	// previewRows caps the markdown preview of the raw result
	previewRows = 5

	generationFailureMessage = "SQL の生成に失敗しました。質問を言い換えてもう一度お試しください。"
	executionFailureMessage  = "SQL の実行に失敗しました"
	noCandidatesMessage      = "条件に合う観光スポットが見つかりませんでした。"
	noRouteMessage           = "条件に合うルートが見つかりませんでした。"
)

// tadamiLinePattern is the named-route shortcut trigger: a question
// expressing the intent to ride the 只見線 bypasses keyword resolution.
var tadamiLinePattern = regexp.MustCompile(`只見線.*乗`)

// tadamiLineName is the route_name the shortcut path queries for
const tadamiLineName = "只見線"

// ChatService orchestrates the full question → SQL → itinerary pipeline
type ChatService struct {
	sqlgen      *SQLGenService
	runner      *database.ReadOnlyRepository
	candidates  *CandidateService
	itineraries *ItineraryService
	logger      *logrus.Logger
}

// NewChatService creates a new chat pipeline service
func NewChatService(
	sqlgen *SQLGenService,
	runner *database.ReadOnlyRepository,
	candidates *CandidateService,
	itineraries *ItineraryService,
	logger *logrus.Logger,
) *ChatService {
	return &ChatService{
		sqlgen:      sqlgen,
		runner:      runner,
		candidates:  candidates,
		itineraries: itineraries,
		logger:      logger,
	}
}

// Answer processes one travel question end to end and always returns a
// structured response; only SQL generation and primary execution
// failures produce an "error" status, everything downstream degrades to
// an explanatory narrative under "ok".
func (s *ChatService) Answer(ctx context.Context, question string) models.ChatResponse {
	constraints := nlp.ExtractConstraints(question)

	s.logger.WithFields(logrus.Fields{
		"question":    question,
		"max_minutes": constraints.MaxMinutes,
		"start_time":  constraints.StartTime,
	}).Info("Processing chat question")

	generated, err := s.sqlgen.Generate(ctx, question)
	if err != nil {
		s.logger.WithError(err).Error("SQL generation failed")
		return models.ChatResponse{
			Status: "error",
			SQL:    generated,
			Error:  generationFailureMessage,
		}
	}

	if !isValidSelect(generated) {
		s.logger.WithField("sql", generated).Warn("Generated SQL rejected by validation")
		return models.ChatResponse{
			Status: "error",
			SQL:    generated,
			Error:  generationFailureMessage,
		}
	}

	result, err := s.runner.RunSelect(generated)
	if err != nil {
		s.logger.WithError(err).Error("Generated SQL failed to execute")
		return models.ChatResponse{
			Status: "error",
			SQL:    generated,
			Error:  fmt.Sprintf("%s: %v", executionFailureMessage, err),
		}
	}

	response := models.ChatResponse{
		Status:   "ok",
		SQL:      generated,
		ResultMD: renderResultMarkdown(result, previewRows),
	}

	var itinerary *models.Itinerary
	var overBudget bool
	if tadamiLinePattern.MatchString(question) {
		itinerary, overBudget = s.itineraries.AssembleForRoute(tadamiLineName, constraints)
	} else {
		keywords := nlp.ExtractKeywords(question)
		candidateIDs := s.candidates.Resolve(keywords)
		if len(candidateIDs) == 0 {
			response.RouteMD = noCandidatesMessage
			return response
		}
		itinerary, overBudget = s.itineraries.AssembleForSpots(candidateIDs, constraints)
	}

	switch {
	case itinerary != nil:
		response.RouteMD = renderItinerary(itinerary)
	case overBudget && constraints.MaxMinutes != nil:
		response.RouteMD = budgetExceededMessage(*constraints.MaxMinutes)
	default:
		response.RouteMD = noRouteMessage
	}

	return response
}

// isValidSelect accepts only a plausibly complete SELECT statement
func isValidSelect(query string) bool {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return false
	}
	if !strings.HasPrefix(strings.ToLower(trimmed), "select") {
		return false
	}
	return len(trimmed) >= minSQLLength
}

// budgetExceededMessage phrases the rejected budget in hours when the
// budget is a whole number of hours
func budgetExceededMessage(maxMinutes int) string {
	if maxMinutes%60 == 0 {
		return fmt.Sprintf("ご指定の時間(%d時間)内で回りきれるルートが見つかりませんでした。", maxMinutes/60)
	}
	return fmt.Sprintf("ご指定の時間(%d分)内で回りきれるルートが見つかりませんでした。", maxMinutes)
}

// renderResultMarkdown renders the first limit rows as a markdown table
// in the 結果 (上位 N 件) block the UI expects. NULLs render empty.
func renderResultMarkdown(result *models.ResultSet, limit int) string {
	if len(result.Columns) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**結果 (上位 %d 件)**\n\n", limit)

	b.WriteString("| " + strings.Join(result.Columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(result.Columns)) + "\n")

	for i, row := range result.Rows {
		if i >= limit {
			break
		}
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				cells[j] = *cell
			}
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return b.String()
}

// renderItinerary renders the day plan as a numbered markdown list with
// the running total in the heading
func renderItinerary(itinerary *models.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**おすすめルート**(合計 約%d分)\n\n", itinerary.TotalMinutes)

	for i, stop := range itinerary.Stops {
		departure := "時刻表なし"
		if stop.DepartureTime != nil {
			departure = *stop.DepartureTime + "発"
		}

		fmt.Fprintf(&b, "%d. %s %s → %s", i+1, departure, stop.StopName, stop.SpotName)
		if stop.RouteName != nil {
			fmt.Fprintf(&b, "(%s)", *stop.RouteName)
		}
		if stop.WalkMinutes > 0 {
			fmt.Fprintf(&b, " 徒歩%d分", stop.WalkMinutes)
		}
		fmt.Fprintf(&b, " 滞在%d分\n", stop.StayMinutes)
	}

	return b.String()
}
