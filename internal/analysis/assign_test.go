package analysis

import (
	"testing"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestLabeledAssignerCanonicalizesNames(t *testing.T) {
	assigner := &LabeledAssigner{Fallback: RoundRobinAssigner{}}

	participants := []entities.DeclaredParticipant{
		{Name: "Alice Nguyen"},
		{Name: "Bob Tran"},
	}
	segments := []entities.SpeechSegment{
		{SpeakerName: "alice nguyen", Text: "hello"},
		{SpeakerName: "Unknown Person", Text: "hi"},
		{SpeakerName: "", Text: "who am i"},
	}

	out := assigner.Assign(segments, participants)

	if out[0].SpeakerName != "Alice Nguyen" {
		t.Errorf("expected canonical name, got %q", out[0].SpeakerName)
	}
	// Labels without a declared match are kept as-is.
	if out[1].SpeakerName != "Unknown Person" {
		t.Errorf("expected label preserved, got %q", out[1].SpeakerName)
	}
	// Unlabeled segments fall through to the fallback assigner.
	if out[2].SpeakerName != "Alice Nguyen" {
		t.Errorf("expected fallback assignment, got %q", out[2].SpeakerName)
	}

	// Input slice must not be mutated.
	if segments[0].SpeakerName != "alice nguyen" {
		t.Error("assigner mutated its input")
	}
}

func TestRoundRobinAssigner(t *testing.T) {
	participants := []entities.DeclaredParticipant{
		{Name: "Alice"}, {Name: "Bob"},
	}
	segments := make([]entities.SpeechSegment, 4)

	out := RoundRobinAssigner{}.Assign(segments, participants)

	want := []string{"Alice", "Bob", "Alice", "Bob"}
	for i, name := range want {
		if out[i].SpeakerName != name {
			t.Errorf("segment %d assigned to %q, want %q", i, out[i].SpeakerName, name)
		}
	}
}

func TestRoundRobinAssignerNoParticipants(t *testing.T) {
	segments := make([]entities.SpeechSegment, 2)

	out := RoundRobinAssigner{}.Assign(segments, nil)

	if out[0].SpeakerName != "Speaker 1" || out[1].SpeakerName != "Speaker 2" {
		t.Errorf("expected synthetic speaker names, got %+v", out)
	}
}

func TestSpeakerStats(t *testing.T) {
	segments := []entities.SpeechSegment{
		{SpeakerName: "Alice", Start: 0, End: 60, Text: "we shipped the project milestone and the status is good"},
		{SpeakerName: "Alice", Start: 70, End: 130, Text: "next is the budget allocation for the quarter"},
		{SpeakerName: "Bob", Start: 130, End: 135, Text: "short remark"},
	}
	roles := map[string]string{"Alice": "Engineering Lead"}

	speakers := SpeakerStats(segments, roles, NewLexiconScorer(), NewExtractor(nil))

	if len(speakers) != 2 {
		t.Fatalf("expected 2 speakers, got %d", len(speakers))
	}

	alice := speakers[0]
	if alice.Name != "Alice" {
		t.Fatalf("expected Alice first by speaking time, got %q", alice.Name)
	}
	if alice.SpeakingTimeSeconds != 120 {
		t.Errorf("expected 120s speaking time, got %v", alice.SpeakingTimeSeconds)
	}
	if alice.SegmentCount != 2 {
		t.Errorf("expected 2 segments, got %d", alice.SegmentCount)
	}
	if alice.Role != "Engineering Lead" {
		t.Errorf("expected role carried over, got %q", alice.Role)
	}
	if alice.WordsPerMinute != 9 {
		t.Errorf("expected 9 wpm for 18 words over 2 minutes, got %d", alice.WordsPerMinute)
	}
	if len(alice.Topics) == 0 {
		t.Error("expected topics for Alice")
	}

	bob := speakers[1]
	if bob.WordsPerMinute != 0 {
		t.Errorf("speaking time under 10s must yield 0 wpm, got %d", bob.WordsPerMinute)
	}
	if bob.ID != "speaker_2" {
		t.Errorf("expected stable id after sorting, got %q", bob.ID)
	}
}

func TestSpeakerStatsPercentagesSumToHundred(t *testing.T) {
	segments := []entities.SpeechSegment{
		{SpeakerName: "Alice", Start: 0, End: 30, Text: "a"},
		{SpeakerName: "Bob", Start: 30, End: 90, Text: "b"},
	}

	speakers := SpeakerStats(segments, nil, NewLexiconScorer(), NewExtractor(nil))

	total := 0.0
	for _, s := range speakers {
		total += s.SpeakingTimePercentage
	}
	if total < 99.99 || total > 100.01 {
		t.Errorf("percentages sum to %v, want 100", total)
	}
}
