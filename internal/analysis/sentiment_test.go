package analysis

import (
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestScoreNeutralIsExactlyHalf(t *testing.T) {
	scorer := NewLexiconScorer()

	for _, text := range []string{"", "the meeting starts at three", "lorem ipsum dolor"} {
		if got := scorer.Score(text); got != 0.5 {
			t.Errorf("Score(%q) = %v, want exactly 0.5", text, got)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	scorer := NewLexiconScorer()

	tests := []string{
		"great great great great",
		"terrible awful horrible",
		"good but the problem remains",
		"This is great!",
	}
	for _, text := range tests {
		got := scorer.Score(text)
		if got < 0.2 || got > 0.8 {
			t.Errorf("Score(%q) = %v, want within [0.2, 0.8]", text, got)
		}
	}

	if got := scorer.Score("This is great!"); got <= 0.5 {
		t.Errorf("expected positive score for praise, got %v", got)
	}
	if got := scorer.Score("only good words"); got != 0.8 {
		t.Errorf("all-positive text should score 0.8, got %v", got)
	}
	if got := scorer.Score("terrible failure"); got != 0.2 {
		t.Errorf("all-negative text should score 0.2, got %v", got)
	}
}

func TestScoreMonotonicInPositiveCount(t *testing.T) {
	scorer := NewLexiconScorer()

	prev := scorer.Score("problem")
	text := "problem"
	for i := 0; i < 5; i++ {
		text += " great"
		got := scorer.Score(text)
		if got < prev {
			t.Fatalf("score decreased from %v to %v after adding a positive word", prev, got)
		}
		prev = got
	}
}

func TestScoreAll(t *testing.T) {
	scorer := NewLexiconScorer()

	if got := scorer.ScoreAll(nil); got != 0.5 {
		t.Errorf("ScoreAll(nil) = %v, want 0.5", got)
	}

	got := scorer.ScoreAll([]string{"neutral text here", "more neutral text"})
	if got != 0.5 {
		t.Errorf("mean of neutral scores = %v, want 0.5", got)
	}
}

func TestTimelineOrderedByTime(t *testing.T) {
	scorer := NewLexiconScorer()
	segments := []entities.SpeechSegment{
		{Start: 30, Text: "this is a problem"},
		{Start: 10, Text: "great work"},
		{Start: 20, Text: "nothing notable"},
	}

	points := scorer.Timeline(segments)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].TimeSeconds < points[i-1].TimeSeconds {
			t.Errorf("timeline out of order at %d: %+v", i, points)
		}
	}
	if points[2].Sentiment != 0.5 {
		t.Errorf("neutral segment at t=30 should score 0.5, got %v", points[2].Sentiment)
	}
}

func TestSignificantStatements(t *testing.T) {
	scorer := NewLexiconScorer()

	samples := []TextSample{
		{Speaker: "Alice", Text: "great great excellent amazing"},
		{Speaker: "Bob", Text: "terrible awful bad failure"},
		{Speaker: "Carol", Text: "the agenda has five items"},
	}

	positive, negative := scorer.SignificantStatements(samples)

	if len(positive) != 1 || !strings.Contains(positive[0], "Alice") {
		t.Errorf("unexpected positive statements: %v", positive)
	}
	if len(negative) != 1 || !strings.Contains(negative[0], "Bob") {
		t.Errorf("unexpected negative statements: %v", negative)
	}
}

func TestSignificantStatementsCappedAtFive(t *testing.T) {
	scorer := NewLexiconScorer()

	samples := make([]TextSample, 8)
	for i := range samples {
		samples[i] = TextSample{Speaker: "Alice", Text: "great excellent amazing wonderful"}
	}

	positive, _ := scorer.SignificantStatements(samples)
	if len(positive) != 5 {
		t.Errorf("expected at most 5 positive statements, got %d", len(positive))
	}
}
