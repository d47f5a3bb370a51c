package entities

// Kinds of chat log entries.
const (
	LogKindMessage  = "message"
	LogKindReaction = "reaction"
	LogKindUnknown  = "unknown"
)

// RawLogEntry is one parsed line of a platform chat export. Timestamp is
// seconds from meeting start.
type RawLogEntry struct {
	Timestamp       float64 `json:"timestamp"`
	ParticipantName string  `json:"participantName"`
	Kind            string  `json:"kind"`
	Content         string  `json:"content"`
}

// SpeechSegment is one timed utterance attributed to a speaker. Start and
// End are seconds from meeting start.
type SpeechSegment struct {
	SpeakerName string  `json:"speakerName"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Text        string  `json:"text"`
	Confidence  float64 `json:"confidence"`
}

// Duration returns the segment span in seconds, never negative.
func (s SpeechSegment) Duration() float64 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// DeclaredParticipant is one participant listed in meeting metadata.
type DeclaredParticipant struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// MeetingMetadata is the declared description of a meeting as recorded by
// the capturing platform. It is a required pipeline artifact.
type MeetingMetadata struct {
	MeetingID         string                `json:"meetingId"`
	Title             string                `json:"title"`
	Date              string                `json:"date"`
	Platform          string                `json:"platform"`
	DurationSeconds   float64               `json:"duration"`
	TotalParticipants int                   `json:"totalParticipants"`
	Participants      []DeclaredParticipant `json:"participants"`
}

// ResolvedTotalParticipants returns the declared headcount, falling back to
// the length of the participant list when the platform did not record one.
// Observed speakers and reactors never feed into this number.
func (m MeetingMetadata) ResolvedTotalParticipants() int {
	if m.TotalParticipants > 0 {
		return m.TotalParticipants
	}
	return len(m.Participants)
}

// ArtifactBundle is everything the pipeline can consume for one meeting.
// Metadata is always present; the remaining inputs are optional.
type ArtifactBundle struct {
	Metadata   MeetingMetadata
	Segments   []SpeechSegment
	LogEntries []RawLogEntry
	HasAudio   bool
}
