package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

var (
	chatLineRegex = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2})\t(.*?):\t(.*)$`)
	reactionRegex = regexp.MustCompile(`Reacted to ".*?" with (.*)`)
)

// ParseChatLog parses a tab-delimited platform chat export into timestamped
// log entries. Malformed lines are skipped without failing the parse, and
// entries whose content is empty after classification are dropped.
func ParseChatLog(raw string) []entities.RawLogEntry {
	entries := []entities.RawLogEntry{}

	for _, line := range strings.Split(raw, "\n") {
		m := chatLineRegex.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}

		ts, ok := timeToSeconds(m[1])
		if !ok {
			continue
		}
		name := strings.TrimSpace(m[2])
		content := strings.TrimSpace(m[3])

		kind := entities.LogKindMessage
		if rm := reactionRegex.FindStringSubmatch(content); rm != nil {
			kind = entities.LogKindReaction
			content = strings.TrimSpace(rm[1])
		}

		if content == "" {
			continue
		}

		entries = append(entries, entities.RawLogEntry{
			Timestamp:       ts,
			ParticipantName: name,
			Kind:            kind,
			Content:         content,
		})
	}

	return entries
}

// timeToSeconds converts HH:MM:SS or MM:SS into seconds from meeting start.
func timeToSeconds(ts string) (float64, bool) {
	parts := strings.Split(ts, ":")

	var h, m, s int
	var err error
	switch len(parts) {
	case 3:
		if h, err = strconv.Atoi(parts[0]); err != nil {
			return 0, false
		}
		if m, err = strconv.Atoi(parts[1]); err != nil {
			return 0, false
		}
		if s, err = strconv.Atoi(parts[2]); err != nil {
			return 0, false
		}
	case 2:
		if m, err = strconv.Atoi(parts[0]); err != nil {
			return 0, false
		}
		if s, err = strconv.Atoi(parts[1]); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}

	return float64(h*3600 + m*60 + s), true
}
