package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tadamikanko/route-chat-backend/pkg/llm"
)

// sqlSystemPrompt anchors generation to the five tourdb tables and the
// SELECT-only rule. The schema listed here must match migrations/0001_schema.sql.
const sqlSystemPrompt = `あなたは SQL 生成アシスタントです。
tourdb には以下のテーブルがあります:
- spots(spot_id,name,alt_names,primary_category,tags,description,lat,lon,min_stay_minutes,base_stay_minutes)
- stops(stop_id,route_id,stop_name,lat,lon)
- transport_routes(route_id,route_name,transport_type)
- timetables(route_id,departure_time,stop_id)
- stop_to_spot(stop_id,spot_id,walk_minutes)
生成する SQL は必ず SELECT 文のみ、改行付きで返してください。
列挙した列以外は使わないでください。
INSERT / UPDATE / DELETE などの更新文は決して出力しないでください。`

// SQLGenService turns a natural-language question into a candidate SQL
// statement via the chat-completion gateway
type SQLGenService struct {
	gateway llm.Gateway
	logger  *logrus.Logger
}

// NewSQLGenService creates a new SQL generation service
func NewSQLGenService(gateway llm.Gateway, logger *logrus.Logger) *SQLGenService {
	return &SQLGenService{
		gateway: gateway,
		logger:  logger,
	}
}

// Generate asks the model for a single SELECT statement answering the
// question. The returned text is trimmed but not validated; the caller
// decides whether it is an acceptable statement. There is no retry.
func (s *SQLGenService) Generate(ctx context.Context, question string) (string, error) {
	raw, err := s.gateway.Complete(ctx, sqlSystemPrompt, question)
	if err != nil {
		return "", fmt.Errorf("sql generation failed: %w", err)
	}

	generated := strings.TrimSpace(raw)
	s.logger.WithFields(logrus.Fields{
		"gateway": s.gateway.GetName(),
		"sql":     generated,
	}).Debug("Generated SQL")

	return generated, nil
}
