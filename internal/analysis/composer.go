package analysis

import (
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// chatSegmentSpan is the nominal duration assigned to speech segments
// derived from chat messages when no transcript is available.
const chatSegmentSpan = 10.0

// Composer runs the full analysis pipeline over one artifact bundle and
// assembles the output document. A Composer is deterministic: the same
// bundle and seed always produce the same analysis.
type Composer struct {
	scorer       *LexiconScorer
	extractor    *Extractor
	assigner     SpeakerAssigner
	labels       LabelTable
	reactionSeed int64
	logger       *zap.Logger
}

// NewComposer wires a pipeline with the default scorer, catalog and label
// table. The seed fixes reaction sentiment values across runs.
func NewComposer(reactionSeed int64, logger *zap.Logger) *Composer {
	return &Composer{
		scorer:       NewLexiconScorer(),
		extractor:    NewExtractor(nil),
		assigner:     &LabeledAssigner{Fallback: RoundRobinAssigner{}},
		labels:       DefaultLabelTable(),
		reactionSeed: reactionSeed,
		logger:       logger,
	}
}

// WithAssigner swaps the speaker assignment strategy.
func (c *Composer) WithAssigner(assigner SpeakerAssigner) *Composer {
	c.assigner = assigner
	return c
}

// Analyze composes a full MeetingAnalysis from the bundle. Collections in
// the result are always non-nil, even when the corresponding input is empty.
func (c *Composer) Analyze(bundle *entities.ArtifactBundle) *entities.MeetingAnalysis {
	meta := bundle.Metadata

	segments := bundle.Segments
	if len(segments) == 0 && len(bundle.LogEntries) > 0 {
		segments = segmentsFromChat(bundle.LogEntries)
	}
	segments = c.assigner.Assign(segments, meta.Participants)

	roles := map[string]string{}
	for _, p := range meta.Participants {
		roles[p.Name] = p.Role
	}

	speakers := SpeakerStats(segments, roles, c.scorer, c.extractor)
	participation := AggregateParticipation(meta, speakers, bundle.LogEntries)
	topics := c.extractor.Extract(segments)
	reactions := c.extractReactions(segments, bundle.LogEntries)
	sentiment := c.composeSentiment(segments)

	analysis := &entities.MeetingAnalysis{
		SchemaVersion:   entities.AnalysisSchemaVersion,
		MeetingID:       meta.MeetingID,
		MeetingTitle:    meta.Title,
		Date:            meta.Date,
		DurationSeconds: c.resolveDuration(meta, segments, bundle.HasAudio),
		Platform:        meta.Platform,
		Participants:    participation,
		Speakers:        speakers,
		Sentiment:       sentiment,
		Topics:          topics,
		Reactions:       reactions,
	}

	if c.logger != nil {
		c.logger.Info("✅ Meeting analysis composed",
			zap.String("meeting_id", meta.MeetingID),
			zap.Int("segments", len(segments)),
			zap.Int("speakers", len(speakers)),
			zap.Int("active_participants", participation.ActiveParticipants))
	}

	return analysis
}

// segmentsFromChat derives nominal speech segments from chat messages so
// chat-only meetings still flow through the full pipeline. Reactions do not
// become segments.
func segmentsFromChat(entries []entities.RawLogEntry) []entities.SpeechSegment {
	segments := []entities.SpeechSegment{}
	for _, e := range entries {
		if e.Kind != entities.LogKindMessage {
			continue
		}
		segments = append(segments, entities.SpeechSegment{
			SpeakerName: e.ParticipantName,
			Start:       e.Timestamp,
			End:         e.Timestamp + chatSegmentSpan,
			Text:        e.Content,
			Confidence:  1.0,
		})
	}
	return segments
}

func (c *Composer) composeSentiment(segments []entities.SpeechSegment) entities.SentimentAnalysis {
	texts := make([]string, len(segments))
	samples := make([]TextSample, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
		samples[i] = TextSample{Speaker: seg.SpeakerName, Text: seg.Text}
	}

	positive, negative := c.scorer.SignificantStatements(samples)

	return entities.SentimentAnalysis{
		Overall:  c.scorer.ScoreAll(texts),
		Timeline: c.scorer.Timeline(segments),
		Positive: positive,
		Negative: negative,
	}
}

// extractReactions scans standalone reaction entries and emoji embedded in
// speech text. A fresh extractor per run keeps sentiment values seed-stable.
func (c *Composer) extractReactions(segments []entities.SpeechSegment, entries []entities.RawLogEntry) entities.ReactionAnalysis {
	texts := []AttributedText{}
	for _, e := range entries {
		if e.Kind == entities.LogKindReaction {
			texts = append(texts, AttributedText{Participant: e.ParticipantName, Text: e.Content})
		}
	}
	for _, seg := range segments {
		texts = append(texts, AttributedText{Participant: seg.SpeakerName, Text: seg.Text})
	}

	return NewReactionExtractor(c.labels, c.reactionSeed).Extract(texts)
}

// resolveDuration picks the meeting duration by precedence: transcript span
// when audio was recorded, then total speaking time, then the declared
// metadata duration. The first nonzero value wins.
func (c *Composer) resolveDuration(meta entities.MeetingMetadata, segments []entities.SpeechSegment, hasAudio bool) float64 {
	if hasAudio {
		maxEnd := 0.0
		for _, seg := range segments {
			if seg.End > maxEnd {
				maxEnd = seg.End
			}
		}
		if maxEnd > 0 {
			return maxEnd
		}
	}

	totalSpeaking := 0.0
	for _, seg := range segments {
		totalSpeaking += seg.Duration()
	}
	if totalSpeaking > 0 {
		return totalSpeaking
	}

	if meta.DurationSeconds > 0 {
		return meta.DurationSeconds
	}
	return 0
}
