package analysis

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// emojiRegex matches a single emoji from the common Unicode blocks, with an
// optional variation selector so compound forms like "❤️" match whole.
var emojiRegex = regexp.MustCompile(`[\x{1F300}-\x{1F5FF}\x{1F600}-\x{1F64F}\x{1F680}-\x{1F6FF}\x{1F900}-\x{1F9FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}][\x{FE0F}]?`)

// LabelTable maps raw emoji to their display labels.
type LabelTable map[string]string

// DefaultLabelTable returns the canonical emoji label table. Emoji outside
// the table get a generic "<emoji> Emoji" label.
func DefaultLabelTable() LabelTable {
	return LabelTable{
		"👍":  "👍 Thumbs Up",
		"❤️": "❤️ Heart",
		"👏":  "👏 Clapping",
		"🎉":  "🎉 Celebration",
		"😄":  "😄 Laugh",
		"🙏":  "🙏 Thank You",
		"💯":  "💯 Perfect",
		"🔥":  "🔥 Fire",
		"✅":  "✅ Check",
		"🤔":  "🤔 Thinking",
	}
}

// AttributedText is emoji-bearing text attributed to a participant.
type AttributedText struct {
	Participant string
	Text        string
}

// ReactionExtractor aggregates emoji reactions. Each reaction label is
// assigned a sentiment in [70,100] drawn from a seeded source at first
// sight, so a given seed always reproduces the same output.
type ReactionExtractor struct {
	labels LabelTable
	rng    *rand.Rand
}

// NewReactionExtractor returns an extractor using the given label table
// (nil means DefaultLabelTable) and a sentiment source seeded with seed.
func NewReactionExtractor(labels LabelTable, seed int64) *ReactionExtractor {
	if labels == nil {
		labels = DefaultLabelTable()
	}
	return &ReactionExtractor{
		labels: labels,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Extract scans texts for emoji and aggregates them globally and per
// participant. Global reactions come back sorted by descending count, ties
// broken by name, so output ordering is stable.
func (e *ReactionExtractor) Extract(texts []AttributedText) entities.ReactionAnalysis {
	type tally struct {
		count     int
		sentiment int
	}
	all := map[string]*tally{}
	firstSeen := []string{}
	bySpeaker := map[string]map[string]int{}

	for _, at := range texts {
		for _, emoji := range emojiRegex.FindAllString(at.Text, -1) {
			label, ok := e.labels[emoji]
			if !ok {
				label = fmt.Sprintf("%s Emoji", emoji)
			}

			if bySpeaker[at.Participant] == nil {
				bySpeaker[at.Participant] = map[string]int{}
			}
			bySpeaker[at.Participant][label]++

			if t, ok := all[label]; ok {
				t.count++
			} else {
				all[label] = &tally{count: 1, sentiment: 70 + e.rng.Intn(31)}
				firstSeen = append(firstSeen, label)
			}
		}
	}

	reactions := make([]entities.Reaction, 0, len(all))
	for _, label := range firstSeen {
		t := all[label]
		reactions = append(reactions, entities.Reaction{
			Name:      label,
			Count:     t.count,
			Sentiment: t.sentiment,
		})
	}
	sort.SliceStable(reactions, func(i, j int) bool {
		if reactions[i].Count != reactions[j].Count {
			return reactions[i].Count > reactions[j].Count
		}
		return reactions[i].Name < reactions[j].Name
	})

	speakerReactions := map[string][]entities.ReactionCount{}
	for speaker, counts := range bySpeaker {
		items := make([]entities.ReactionCount, 0, len(counts))
		for label, count := range counts {
			items = append(items, entities.ReactionCount{Name: label, Count: count})
		}
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Count != items[j].Count {
				return items[i].Count > items[j].Count
			}
			return items[i].Name < items[j].Name
		})
		speakerReactions[speaker] = items
	}

	return entities.ReactionAnalysis{
		Reactions:        reactions,
		SpeakerReactions: speakerReactions,
	}
}
