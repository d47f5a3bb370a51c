package analysis

import (
	"testing"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func testBundle() *entities.ArtifactBundle {
	return &entities.ArtifactBundle{
		Metadata: entities.MeetingMetadata{
			MeetingID: "mtg-001",
			Title:     "Weekly Sync",
			Date:      "2026-08-24",
			Platform:  "zoom",
			Participants: []entities.DeclaredParticipant{
				{Name: "Alice"}, {Name: "Bob"}, {Name: "Carol"},
			},
		},
		Segments:   []entities.SpeechSegment{},
		LogEntries: []entities.RawLogEntry{},
	}
}

func TestComposerChatOnlyMeeting(t *testing.T) {
	raw := "00:00:05\tAlice:\tThis is great!\n" +
		"00:01:10\tBob:\tReacted to \"This is great!\" with 👍"

	bundle := testBundle()
	bundle.LogEntries = ParseChatLog(raw)

	analysis := NewComposer(42, nil).Analyze(bundle)

	if analysis.MeetingID != "mtg-001" {
		t.Errorf("unexpected meeting id %q", analysis.MeetingID)
	}
	if analysis.SchemaVersion != entities.AnalysisSchemaVersion {
		t.Errorf("missing schema version: %q", analysis.SchemaVersion)
	}

	p := analysis.Participants
	if p.ActiveParticipants != 2 {
		t.Errorf("expected 2 active participants, got %d", p.ActiveParticipants)
	}
	if p.ReactingParticipants != 1 {
		t.Errorf("expected 1 reacting participant, got %d", p.ReactingParticipants)
	}
	if p.TotalParticipants != 3 {
		t.Errorf("expected 3 total participants, got %d", p.TotalParticipants)
	}

	if len(analysis.Reactions.Reactions) != 1 {
		t.Fatalf("expected 1 reaction, got %+v", analysis.Reactions.Reactions)
	}
	r := analysis.Reactions.Reactions[0]
	if r.Name != "👍 Thumbs Up" || r.Count != 1 {
		t.Errorf("unexpected reaction: %+v", r)
	}

	if analysis.Sentiment.Overall <= 0.5 {
		t.Errorf("expected positive overall sentiment, got %v", analysis.Sentiment.Overall)
	}

	// One message turns into one nominal speech segment.
	if len(analysis.Speakers) != 1 || analysis.Speakers[0].Name != "Alice" {
		t.Errorf("unexpected speakers: %+v", analysis.Speakers)
	}
}

func TestComposerEmptyBundle(t *testing.T) {
	analysis := NewComposer(1, nil).Analyze(testBundle())

	if analysis.Sentiment.Overall != 0.5 {
		t.Errorf("zero segments must yield 0.5 overall sentiment, got %v", analysis.Sentiment.Overall)
	}
	if analysis.Speakers == nil || analysis.Topics.Topics == nil ||
		analysis.Reactions.Reactions == nil || analysis.Sentiment.Timeline == nil {
		t.Error("expected non-nil empty collections")
	}
	if analysis.Participants.ActiveParticipants != 0 {
		t.Errorf("expected no active participants, got %d", analysis.Participants.ActiveParticipants)
	}
	if analysis.DurationSeconds != 0 {
		t.Errorf("expected zero duration, got %v", analysis.DurationSeconds)
	}
}

func TestComposerDeterministic(t *testing.T) {
	bundle := testBundle()
	bundle.Segments = []entities.SpeechSegment{
		{SpeakerName: "Alice", Start: 0, End: 30, Text: "great progress on the project 🎉"},
		{SpeakerName: "Bob", Start: 30, End: 60, Text: "the budget is a problem"},
	}

	first := NewComposer(42, nil).Analyze(bundle)
	second := NewComposer(42, nil).Analyze(bundle)

	if len(first.Reactions.Reactions) != len(second.Reactions.Reactions) {
		t.Fatalf("reaction counts differ between runs")
	}
	for i := range first.Reactions.Reactions {
		if first.Reactions.Reactions[i] != second.Reactions.Reactions[i] {
			t.Errorf("reaction %d differs: %+v vs %+v",
				i, first.Reactions.Reactions[i], second.Reactions.Reactions[i])
		}
	}
	if first.Sentiment.Overall != second.Sentiment.Overall {
		t.Errorf("overall sentiment differs between runs")
	}
}

func TestResolveDurationPrecedence(t *testing.T) {
	c := NewComposer(1, nil)

	segments := []entities.SpeechSegment{
		{Start: 0, End: 100},
		{Start: 100, End: 250},
	}
	meta := entities.MeetingMetadata{DurationSeconds: 900}

	// Audio present: transcript span wins.
	if got := c.resolveDuration(meta, segments, true); got != 250 {
		t.Errorf("expected 250 with audio, got %v", got)
	}
	// No audio: total speaking time wins.
	if got := c.resolveDuration(meta, segments, false); got != 250 {
		t.Errorf("expected 250 speaking time, got %v", got)
	}
	// No segments: declared duration wins.
	if got := c.resolveDuration(meta, nil, false); got != 900 {
		t.Errorf("expected declared 900, got %v", got)
	}
	// Nothing known: zero.
	if got := c.resolveDuration(entities.MeetingMetadata{}, nil, false); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestComposerTimelineOrdered(t *testing.T) {
	bundle := testBundle()
	bundle.Segments = []entities.SpeechSegment{
		{SpeakerName: "Alice", Start: 50, End: 60, Text: "late"},
		{SpeakerName: "Bob", Start: 10, End: 20, Text: "early"},
	}

	analysis := NewComposer(1, nil).Analyze(bundle)

	tl := analysis.Sentiment.Timeline
	if len(tl) != 2 || tl[0].TimeSeconds != 10 || tl[1].TimeSeconds != 50 {
		t.Errorf("timeline not ordered by time: %+v", tl)
	}
}
