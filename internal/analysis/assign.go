package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// SpeakerAssigner resolves the speaker of each speech segment. Assignment
// must be deterministic for a given input.
type SpeakerAssigner interface {
	Assign(segments []entities.SpeechSegment, participants []entities.DeclaredParticipant) []entities.SpeechSegment
}

// LabeledAssigner keeps speaker names already present on segments and maps
// transcript speaker labels to declared participant names case-insensitively.
// Segments with no label fall through to the wrapped assigner.
type LabeledAssigner struct {
	Fallback SpeakerAssigner
}

// Assign resolves labeled segments against the declared participant list.
func (a *LabeledAssigner) Assign(segments []entities.SpeechSegment, participants []entities.DeclaredParticipant) []entities.SpeechSegment {
	byLower := map[string]string{}
	for _, p := range participants {
		byLower[strings.ToLower(p.Name)] = p.Name
	}

	out := make([]entities.SpeechSegment, len(segments))
	copy(out, segments)

	unlabeled := []int{}
	for i := range out {
		if out[i].SpeakerName == "" {
			unlabeled = append(unlabeled, i)
			continue
		}
		if canonical, ok := byLower[strings.ToLower(out[i].SpeakerName)]; ok {
			out[i].SpeakerName = canonical
		}
	}

	if len(unlabeled) > 0 && a.Fallback != nil {
		sub := make([]entities.SpeechSegment, len(unlabeled))
		for i, idx := range unlabeled {
			sub[i] = out[idx]
		}
		sub = a.Fallback.Assign(sub, participants)
		for i, idx := range unlabeled {
			out[idx] = sub[i]
		}
	}

	return out
}

// RoundRobinAssigner deals unlabeled segments to declared participants in
// declaration order. With no participants declared, segments get synthetic
// "Speaker N" names keyed by position.
type RoundRobinAssigner struct{}

// Assign distributes segments across participants round robin.
func (RoundRobinAssigner) Assign(segments []entities.SpeechSegment, participants []entities.DeclaredParticipant) []entities.SpeechSegment {
	out := make([]entities.SpeechSegment, len(segments))
	copy(out, segments)

	for i := range out {
		if len(participants) == 0 {
			out[i].SpeakerName = fmt.Sprintf("Speaker %d", i%4+1)
			continue
		}
		out[i].SpeakerName = participants[i%len(participants)].Name
	}
	return out
}

// SpeakerStats computes per-speaker statistics from assigned segments. The
// scorer supplies per-speaker sentiment and the extractor per-speaker topics.
// Speakers come back ordered by descending speaking time, ties by name.
func SpeakerStats(segments []entities.SpeechSegment, roles map[string]string, scorer Scorer, extractor TopicSource) []entities.SpeakerAnalysis {
	type acc struct {
		segments []entities.SpeechSegment
		time     float64
		words    int
	}
	bySpeaker := map[string]*acc{}
	order := []string{}

	totalTime := 0.0
	for _, seg := range segments {
		a, ok := bySpeaker[seg.SpeakerName]
		if !ok {
			a = &acc{}
			bySpeaker[seg.SpeakerName] = a
			order = append(order, seg.SpeakerName)
		}
		a.segments = append(a.segments, seg)
		a.time += seg.Duration()
		a.words += len(strings.Fields(seg.Text))
		totalTime += seg.Duration()
	}

	speakers := make([]entities.SpeakerAnalysis, 0, len(order))
	for i, name := range order {
		a := bySpeaker[name]

		texts := make([]string, len(a.segments))
		for j, seg := range a.segments {
			texts[j] = seg.Text
		}

		sentiment := 0.5
		if scorer != nil {
			total := 0.0
			for _, t := range texts {
				total += scorer.Score(t)
			}
			if len(texts) > 0 {
				sentiment = total / float64(len(texts))
			}
		}

		topics := []string{}
		if extractor != nil {
			for _, topic := range extractor.Extract(a.segments).Topics {
				topics = append(topics, topic.Name)
			}
		}

		pct := 0.0
		if totalTime > 0 {
			pct = a.time / totalTime * 100
		}

		speakers = append(speakers, entities.SpeakerAnalysis{
			ID:                     fmt.Sprintf("speaker_%d", i+1),
			Name:                   name,
			Role:                   roles[name],
			SpeakingTimeSeconds:    a.time,
			SpeakingTimePercentage: pct,
			SegmentCount:           len(a.segments),
			WordsPerMinute:         wordsPerMinute(a.words, a.time),
			Sentiment:              sentiment,
			Topics:                 topics,
		})
	}

	sort.SliceStable(speakers, func(i, j int) bool {
		if speakers[i].SpeakingTimeSeconds != speakers[j].SpeakingTimeSeconds {
			return speakers[i].SpeakingTimeSeconds > speakers[j].SpeakingTimeSeconds
		}
		return speakers[i].Name < speakers[j].Name
	})
	for i := range speakers {
		speakers[i].ID = fmt.Sprintf("speaker_%d", i+1)
	}

	return speakers
}

// wordsPerMinute rounds words over minutes spoken. Speaking times under ten
// seconds produce 0 rather than a wildly inflated rate.
func wordsPerMinute(words int, speakingTime float64) int {
	if speakingTime < 10 {
		return 0
	}
	return int(math.Round(float64(words) / (speakingTime / 60)))
}
