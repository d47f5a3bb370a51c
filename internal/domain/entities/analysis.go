package entities

// AnalysisSchemaVersion is stamped on every composed MeetingAnalysis so
// downstream consumers can detect schema changes.
const AnalysisSchemaVersion = "1.0"

// SpeakerAnalysis holds the derived statistics for a single speaker,
// computed from the speaker's owned speech segments.
type SpeakerAnalysis struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Role                   string   `json:"role,omitempty"`
	SpeakingTimeSeconds    float64  `json:"speakingTime"`
	SpeakingTimePercentage float64  `json:"speakingTimePercentage"`
	SegmentCount           int      `json:"segments"`
	WordsPerMinute         int      `json:"wordsPerMinute"`
	Sentiment              float64  `json:"sentiment"`
	Topics                 []string `json:"topics"`
}

// Topic represents one catalog topic found in the corpus. Percentage is the
// share of segments the topic appeared in; topics may overlap per segment,
// so percentages are not constrained to sum to 100.
type Topic struct {
	Name           string   `json:"name"`
	Keywords       []string `json:"keywords"`
	Frequency      int      `json:"frequency"`
	SegmentIndices []int    `json:"segmentIndices"`
	Percentage     float64  `json:"percentage"`
}

// TopicAnalysis groups all topic extraction output.
type TopicAnalysis struct {
	Topics         []Topic  `json:"topics"`
	DominantTopics []Topic  `json:"dominantTopics"`
	KeyPhrases     []string `json:"keyPhrases"`
}

// Reaction is an aggregated emoji reaction. Sentiment is a run-stable value
// in [70,100] drawn from a seeded source at first sight of the label.
type Reaction struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Sentiment int    `json:"sentiment"`
}

// ReactionCount is a per-speaker reaction tally without sentiment.
type ReactionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ReactionAnalysis groups global and per-speaker reaction statistics.
type ReactionAnalysis struct {
	Reactions        []Reaction                 `json:"reactions"`
	SpeakerReactions map[string][]ReactionCount `json:"speakerReactions"`
}

// ParticipantDetail describes one participant's observed activity.
type ParticipantDetail struct {
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	Speaking bool   `json:"speaking"`
	Reacting bool   `json:"reacting"`
	Active   bool   `json:"active"`
}

// ParticipantAnalysis holds participation counts. ActiveParticipants is the
// size of the set union of speakers and reactors, never their sum.
type ParticipantAnalysis struct {
	TotalParticipants    int                          `json:"totalParticipants"`
	ActiveParticipants   int                          `json:"activeParticipants"`
	SpeakingParticipants int                          `json:"speakingParticipants"`
	ReactingParticipants int                          `json:"reactingParticipants"`
	SilentParticipants   int                          `json:"silentParticipants"`
	ParticipantInfo      map[string]ParticipantDetail `json:"participantInfo"`
}

// SentimentPoint is one point of the sentiment timeline, ordered by time.
type SentimentPoint struct {
	TimeSeconds float64 `json:"time"`
	Sentiment   float64 `json:"sentiment"`
}

// SentimentAnalysis groups overall sentiment, the timeline, and the most
// clearly positive and negative statements with speaker attribution.
type SentimentAnalysis struct {
	Overall  float64          `json:"overall"`
	Timeline []SentimentPoint `json:"timeline"`
	Positive []string         `json:"positive"`
	Negative []string         `json:"negative"`
}

// MeetingAnalysis is the root aggregate produced by one pipeline run. It is
// the only pipeline output and the only input presentation consumers read.
// Collections are always present, possibly empty, never nil.
type MeetingAnalysis struct {
	SchemaVersion   string              `json:"schemaVersion"`
	MeetingID       string              `json:"meetingId"`
	MeetingTitle    string              `json:"meetingTitle"`
	Date            string              `json:"date"`
	DurationSeconds float64             `json:"duration"`
	Platform        string              `json:"platform"`
	Participants    ParticipantAnalysis `json:"participants"`
	Speakers        []SpeakerAnalysis   `json:"speakers"`
	Sentiment       SentimentAnalysis   `json:"sentiment"`
	Topics          TopicAnalysis       `json:"topics"`
	Reactions       ReactionAnalysis    `json:"reactions"`
}
