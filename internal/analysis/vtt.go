package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// vttTimestampRegex matches HH:MM:SS.mmm or MM:SS.mmm cue timestamps.
var vttTimestampRegex = regexp.MustCompile(`^(?:(\d{2}):)?(\d{2}):(\d{2})\.(\d{3})$`)

// defaultCueConfidence is assigned to every parsed cue; transcript exports
// do not carry per-cue confidence.
const defaultCueConfidence = 0.9

// ParseVTT parses a WebVTT transcript into speech segments. Speaker names
// are not resolved here; cues carry an empty SpeakerName until assignment.
// Numeric cue identifiers and malformed cues are skipped.
func ParseVTT(raw string) []entities.SpeechSegment {
	segments := []entities.SpeechSegment{}

	var cur *entities.SpeechSegment
	var textLines []string

	flush := func() {
		if cur == nil {
			return
		}
		text := strings.TrimSpace(strings.Join(textLines, " "))
		if text != "" {
			cur.Text = text
			segments = append(segments, *cur)
		}
		cur = nil
		textLines = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))

		if line == "" || strings.HasPrefix(line, "WEBVTT") ||
			strings.HasPrefix(line, "NOTE") || strings.HasPrefix(line, "STYLE") {
			flush()
			continue
		}

		if strings.Contains(line, "-->") {
			flush()
			parts := strings.SplitN(line, "-->", 2)
			start, okStart := vttTimeToSeconds(strings.TrimSpace(parts[0]))
			endField := strings.Fields(strings.TrimSpace(parts[1]))
			if len(endField) == 0 {
				continue
			}
			end, okEnd := vttTimeToSeconds(endField[0])
			if !okStart || !okEnd {
				continue
			}
			cur = &entities.SpeechSegment{
				Start:      start,
				End:        end,
				Confidence: defaultCueConfidence,
			}
			continue
		}

		// Numeric cue identifiers precede timestamp lines.
		if cur == nil {
			if _, err := strconv.Atoi(line); err == nil {
				continue
			}
			continue
		}

		textLines = append(textLines, line)
	}
	flush()

	return segments
}

func vttTimeToSeconds(ts string) (float64, bool) {
	m := vttTimestampRegex.FindStringSubmatch(ts)
	if m == nil {
		return 0, false
	}

	h := 0
	if m[1] != "" {
		h, _ = strconv.Atoi(m[1])
	}
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	ms, _ := strconv.Atoi(m[4])

	return float64(h*3600+min*60+sec) + float64(ms)/1000, true
}
