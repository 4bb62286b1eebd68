package schedule

import (
	"fmt"
	"strings"

	constants "github.com/vipowerus/timetable/internal"
)

// MessageLimit is the transport's maximum message length.
const MessageLimit = 4000

// FormatTime reshapes "1355 - 1520" into "13:55 - 15:20". The range is
// only rewritten when both halves are exactly four digits; anything
// else passes through unchanged.
func FormatTime(raw string) string {
	if !strings.Contains(raw, " - ") {
		return raw
	}
	parts := strings.SplitN(raw, " - ", 2)
	if !fourDigits(parts[0]) || !fourDigits(parts[1]) {
		return raw
	}
	return parts[0][:2] + ":" + parts[0][2:] + " - " + parts[1][:2] + ":" + parts[1][2:]
}

func fourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatDay renders one day's extraction result into display text.
func FormatDay(result DayResult, day string) string {
	switch result.Kind {
	case DayNoData:
		return fmt.Sprintf(constants.NoDayDataFmt, day)
	case DayGroupUnknown:
		return fmt.Sprintf(constants.GroupUnknownFmt, day)
	}

	if len(result.Lessons) == 0 {
		return fmt.Sprintf(constants.NoLessonsFmt, day)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(constants.DayHeaderFmt, day))
	for _, lesson := range result.Lessons {
		sb.WriteString(fmt.Sprintf("⏰ *%s*\n", FormatTime(lesson.Time)))
		subject := lesson.Subject
		if subject == "" {
			subject = constants.UnspecifiedSentinel
		}
		sb.WriteString(fmt.Sprintf("📚 %s\n", subject))
		if lesson.Classroom != "" && lesson.Classroom != constants.UnspecifiedSentinel {
			sb.WriteString(fmt.Sprintf("🏫 Аудитория: %s\n", lesson.Classroom))
		}
		if lesson.Teacher != "" && lesson.Teacher != constants.UnspecifiedSentinel {
			sb.WriteString(fmt.Sprintf("👨‍🏫 Преподаватель: %s\n", lesson.Teacher))
		}
		sb.WriteString("---\n")
	}
	return sb.String()
}

// SplitMessage breaks text that exceeds limit into chunks, splitting
// only on line boundaries. Text within the limit comes back as a single
// chunk.
func SplitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	lines := strings.Split(text, "\n")
	var parts []string
	var current strings.Builder
	for i, line := range lines {
		chunk := line
		if i < len(lines)-1 {
			chunk += "\n"
		}
		if current.Len()+len(chunk) >= limit && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteString(chunk)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
