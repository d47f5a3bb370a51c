package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Scorer scores a piece of text into [0,1], 0.5 meaning neutral.
type Scorer interface {
	Score(text string) float64
}

// TextSample is a piece of text with speaker attribution, fed to
// SignificantStatements.
type TextSample struct {
	Speaker string
	Text    string
}

// LexiconScorer is a lexicon-based sentiment scorer. Matching is substring
// based on the lowercased text, so "agreed" also counts "agree". Scores are
// compressed into [0.2,0.8] to avoid extremes from the limited lexicon.
type LexiconScorer struct {
	positive []string
	negative []string
}

// NewLexiconScorer returns a scorer with the default word lists.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		positive: []string{
			"good", "great", "excellent", "amazing", "wonderful", "fantastic",
			"happy", "excited", "love", "like", "best", "thank", "thanks",
			"appreciate", "awesome", "perfect", "yes", "helpful", "impressive",
			"interesting", "enjoy", "enjoyed", "glad", "pleased", "positive",
			"agree", "agreed", "excitement", "success", "successful",
		},
		negative: []string{
			"bad", "terrible", "horrible", "awful", "poor", "worst",
			"sad", "unhappy", "hate", "dislike", "problem", "issue",
			"difficult", "hard", "unfortunately", "sorry", "no", "not",
			"cannot", "can't", "wont", "wouldn't", "shouldn't",
			"failed", "failure", "negative", "disagree", "disagrees",
			"worried", "concern", "concerned", "disappointing", "disappointed",
		},
	}
}

// Score returns the sentiment of text. Exactly 0.5 when no lexicon word
// occurs, otherwise pos/(pos+neg) rescaled into [0.2,0.8].
func (s *LexiconScorer) Score(text string) float64 {
	lower := strings.ToLower(text)

	var pos, neg int
	for _, w := range s.positive {
		pos += strings.Count(lower, w)
	}
	for _, w := range s.negative {
		neg += strings.Count(lower, w)
	}

	if pos == 0 && neg == 0 {
		return 0.5
	}
	return float64(pos)/float64(pos+neg)*0.6 + 0.2
}

// ScoreAll returns the arithmetic mean score over texts, 0.5 when empty.
func (s *LexiconScorer) ScoreAll(texts []string) float64 {
	if len(texts) == 0 {
		return 0.5
	}
	total := 0.0
	for _, t := range texts {
		total += s.Score(t)
	}
	return total / float64(len(texts))
}

// Timeline scores segments and returns points ordered by start time. The
// input slice is not mutated.
func (s *LexiconScorer) Timeline(segments []entities.SpeechSegment) []entities.SentimentPoint {
	sorted := make([]entities.SpeechSegment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	points := make([]entities.SentimentPoint, 0, len(sorted))
	for _, seg := range sorted {
		points = append(points, entities.SentimentPoint{
			TimeSeconds: seg.Start,
			Sentiment:   s.Score(seg.Text),
		})
	}
	return points
}

// SignificantStatements picks the clearly positive (score > 0.7) and clearly
// negative (score < 0.3) samples with speaker attribution, at most five each,
// in input order.
func (s *LexiconScorer) SignificantStatements(samples []TextSample) (positive, negative []string) {
	positive = []string{}
	negative = []string{}

	for _, sample := range samples {
		score := s.Score(sample.Text)
		formatted := fmt.Sprintf("%q - %s", sample.Text, sample.Speaker)
		switch {
		case score > 0.7 && len(positive) < 5:
			positive = append(positive, formatted)
		case score < 0.3 && len(negative) < 5:
			negative = append(negative, formatted)
		}
	}
	return positive, negative
}
