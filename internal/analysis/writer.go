package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Analysis component names, also valid API component selectors.
const (
	ComponentSpeakers     = "speakers"
	ComponentSentiment    = "sentiment"
	ComponentTopics       = "topics"
	ComponentTimeline     = "timeline"
	ComponentParticipants = "participants"
	ComponentReactions    = "reactions"
)

// Component extracts one named component document from an analysis. Unknown
// names return ErrUnknownComponent.
func Component(analysis *entities.MeetingAnalysis, name string) (interface{}, error) {
	switch name {
	case ComponentSpeakers:
		return analysis.Speakers, nil
	case ComponentSentiment:
		return analysis.Sentiment, nil
	case ComponentTopics:
		return analysis.Topics, nil
	case ComponentTimeline:
		return analysis.Sentiment.Timeline, nil
	case ComponentParticipants:
		return analysis.Participants, nil
	case ComponentReactions:
		return analysis.Reactions, nil
	default:
		return nil, apperrors.ErrUnknownComponent(name)
	}
}

// Writer persists analysis documents as JSON files. All documents of one
// run are staged as temp files before any rename, so a failure partway
// through leaves the previous run's documents untouched.
type Writer struct {
	dir string
}

// NewWriter returns a writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.ErrStorageFailed("create output directory", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteAll persists the full analysis document plus one document per
// component and returns the written file paths. Documents land either all
// together or not at all up to the rename step; renames happen last, in one
// pass, with the root document first.
func (w *Writer) WriteAll(analysis *entities.MeetingAnalysis) ([]string, error) {
	id := analysis.MeetingID

	docs := []struct {
		name    string
		payload interface{}
	}{
		{fmt.Sprintf("meeting-analysis-%s.json", id), analysis},
		{fmt.Sprintf("speakers-analysis-%s.json", id), analysis.Speakers},
		{fmt.Sprintf("sentiment-analysis-%s.json", id), analysis.Sentiment},
		{fmt.Sprintf("topics-analysis-%s.json", id), analysis.Topics},
		{fmt.Sprintf("timeline-%s.json", id), analysis.Sentiment.Timeline},
		{fmt.Sprintf("participants-analysis-%s.json", id), analysis.Participants},
		{fmt.Sprintf("reactions-analysis-%s.json", id), analysis.Reactions},
	}

	staged := make([]string, 0, len(docs))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, doc := range docs {
		tmpName, err := w.stageJSON(doc.payload)
		if err != nil {
			cleanup()
			return nil, err
		}
		staged = append(staged, tmpName)
	}

	paths := make([]string, 0, len(docs))
	for i, doc := range docs {
		path := filepath.Join(w.dir, doc.name)
		if err := os.Rename(staged[i], path); err != nil {
			cleanup()
			return nil, apperrors.ErrStorageFailed("rename document", err)
		}
		staged[i] = ""
		paths = append(paths, path)
	}
	return paths, nil
}

// stageJSON writes payload to a temp file in the output directory and
// returns its path. The temp file lives on the same filesystem as the final
// document so the later rename is atomic.
func (w *Writer) stageJSON(payload interface{}) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", apperrors.ErrInternal(err)
	}

	tmp, err := os.CreateTemp(w.dir, ".analysis-*.tmp")
	if err != nil {
		return "", apperrors.ErrStorageFailed("create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", apperrors.ErrStorageFailed("write document", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", apperrors.ErrStorageFailed("close document", err)
	}
	return tmpName, nil
}
