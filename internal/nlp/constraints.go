// Package nlp extracts structured search terms and time constraints
// from free-text Japanese travel questions.
package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tadamikanko/route-chat-backend/internal/models"
)

const (
	// HalfDayMinutes is the budget implied by a 半日 (half-day) marker
	HalfDayMinutes = 240
	// FullDayMinutes is the budget implied by a 終日/一日 (full-day) marker
	FullDayMinutes = 480
)

var (
	startHourMinutePattern = regexp.MustCompile(`(\d{1,2})時(\d{1,2})分から`)
	startHourPattern       = regexp.MustCompile(`(\d{1,2})時から`)
	hoursPattern           = regexp.MustCompile(`(\d{1,2})時間`)
)

// ExtractConstraints parses the question into a time budget and start
// time. It never fails; a pattern that does not appear leaves its field
// nil. The numeric N時間 pattern is evaluated before the literal
// 半日/終日 markers, so a literal marker wins when both appear.
func ExtractConstraints(text string) models.Constraints {
	var c models.Constraints

	if m := startHourMinutePattern.FindStringSubmatch(text); m != nil {
		c.StartTime = formatClock(m[1], m[2])
	} else if m := startHourPattern.FindStringSubmatch(text); m != nil {
		c.StartTime = formatClock(m[1], "0")
	}

	if m := hoursPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			minutes := n * 60
			c.MaxMinutes = &minutes
		}
	}

	if strings.Contains(text, "半日") {
		minutes := HalfDayMinutes
		c.MaxMinutes = &minutes
	}

	if strings.Contains(text, "終日") || strings.Contains(text, "一日") {
		minutes := FullDayMinutes
		c.MaxMinutes = &minutes
	}

	return c
}

// formatClock zero-pads captured hour/minute digits into "HH:MM"
func formatClock(hour, minute string) *string {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return nil
	}
	m, err := strconv.Atoi(minute)
	if err != nil {
		return nil
	}
	t := fmt.Sprintf("%02d:%02d", h, m)
	return &t
}
