package analysis

import (
	"sort"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// TopicDefinition names a topic and the keywords that signal it.
type TopicDefinition struct {
	Name     string
	Keywords []string
}

// Catalog is an ordered list of topic definitions.
type Catalog []TopicDefinition

// DefaultCatalog returns the built-in meeting topic catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "Project Updates", Keywords: []string{"project", "update", "status", "timeline", "milestone", "progress", "deliverable"}},
		{Name: "Technical Discussion", Keywords: []string{"technical", "code", "api", "implementation", "architecture", "system", "design", "solution"}},
		{Name: "Product Development", Keywords: []string{"product", "feature", "design", "user", "customer", "requirement", "specification"}},
		{Name: "Team Collaboration", Keywords: []string{"team", "collaborate", "coordination", "communication", "responsibility", "role"}},
		{Name: "Performance Review", Keywords: []string{"performance", "metric", "kpi", "goal", "objective", "measure", "improvement"}},
		{Name: "Budget Discussion", Keywords: []string{"budget", "cost", "expense", "financial", "funding", "resource", "allocation"}},
		{Name: "Customer Feedback", Keywords: []string{"customer", "user", "feedback", "review", "satisfaction", "complaint", "suggestion"}},
		{Name: "Action Items", Keywords: []string{"action", "task", "follow", "assign", "responsibility", "deadline", "complete"}},
	}
}

// TopicSource produces a topic analysis for a set of segments. Callers that
// only need topic extraction accept this instead of the concrete Extractor.
type TopicSource interface {
	Extract(segments []entities.SpeechSegment) entities.TopicAnalysis
}

// Extractor matches catalog topics against segment texts.
type Extractor struct {
	catalog Catalog
}

var _ TopicSource = (*Extractor)(nil)

// NewExtractor returns an extractor over the given catalog; a nil catalog
// falls back to DefaultCatalog.
func NewExtractor(catalog Catalog) *Extractor {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Extractor{catalog: catalog}
}

// Extract finds catalog topics across segments. A topic counts once per
// segment regardless of how many of its keywords occur there, and a segment
// may belong to several topics. Matching is substring based on lowercased
// text. Topics come back sorted by descending frequency along with the top
// three dominant topics.
func (e *Extractor) Extract(segments []entities.SpeechSegment) entities.TopicAnalysis {
	result := entities.TopicAnalysis{
		Topics:         []entities.Topic{},
		DominantTopics: []entities.Topic{},
		KeyPhrases:     []string{},
	}
	if len(segments) == 0 {
		return result
	}

	lowered := make([]string, len(segments))
	for i, seg := range segments {
		lowered[i] = strings.ToLower(seg.Text)
	}
	allText := strings.Join(lowered, " ")

	for _, def := range e.catalog {
		indices := []int{}
		for i, text := range lowered {
			for _, kw := range def.Keywords {
				if strings.Contains(text, kw) {
					indices = append(indices, i)
					break
				}
			}
		}
		if len(indices) == 0 {
			continue
		}

		// Only report keywords that actually occur in the corpus.
		present := []string{}
		for _, kw := range def.Keywords {
			if strings.Contains(allText, kw) {
				present = append(present, kw)
			}
		}

		result.Topics = append(result.Topics, entities.Topic{
			Name:           def.Name,
			Keywords:       present,
			Frequency:      len(indices),
			SegmentIndices: indices,
			Percentage:     float64(len(indices)) / float64(len(segments)) * 100,
		})
	}

	sort.SliceStable(result.Topics, func(i, j int) bool {
		return result.Topics[i].Frequency > result.Topics[j].Frequency
	})

	n := len(result.Topics)
	if n > 3 {
		n = 3
	}
	result.DominantTopics = append(result.DominantTopics, result.Topics[:n]...)
	result.KeyPhrases = e.KeyPhrases(strings.Join(segmentTexts(segments), " "), 5)

	return result
}

// KeyPhrases extracts up to count sentences ranked by how many catalog
// keywords they contain. Sentences of ten characters or fewer are ignored.
func (e *Extractor) KeyPhrases(text string, count int) []string {
	sentences := []string{}
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if len(strings.TrimSpace(s)) > 10 {
			sentences = append(sentences, s)
		}
	}

	type scored struct {
		sentence string
		score    int
	}
	ranked := make([]scored, 0, len(sentences))
	for _, s := range sentences {
		lower := strings.ToLower(s)
		score := 0
		for _, def := range e.catalog {
			for _, kw := range def.Keywords {
				if strings.Contains(lower, kw) {
					score++
				}
			}
		}
		ranked = append(ranked, scored{sentence: strings.TrimSpace(s), score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if count > len(ranked) {
		count = len(ranked)
	}
	phrases := make([]string, 0, count)
	for _, r := range ranked[:count] {
		phrases = append(phrases, r.sentence)
	}
	return phrases
}

func segmentTexts(segments []entities.SpeechSegment) []string {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return texts
}
