package analysis

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestWriterWriteAll(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir)
	if err != nil {
		t.Fatal(err)
	}

	bundle := testBundle()
	bundle.LogEntries = ParseChatLog("00:00:05\tAlice:\tThis is great!\n")
	analysis := NewComposer(42, nil).Analyze(bundle)

	paths, err := writer.WriteAll(analysis)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 7 {
		t.Fatalf("expected 7 documents, got %d", len(paths))
	}

	full := filepath.Join(dir, "meeting-analysis-mtg-001.json")
	raw, err := os.ReadFile(full)
	if err != nil {
		t.Fatal(err)
	}

	var decoded entities.MeetingAnalysis
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("written document is not valid JSON: %v", err)
	}
	if decoded.MeetingID != "mtg-001" {
		t.Errorf("unexpected document content: %+v", decoded)
	}

	// No temp files left behind.
	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if filepath.Ext(f.Name()) == ".tmp" {
			t.Errorf("leftover temp file %s", f.Name())
		}
	}
}

// A run that cannot land its root document must not replace any component
// document from the previous run.
func TestWriterWriteAllFailureKeepsPreviousRun(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir)
	if err != nil {
		t.Fatal(err)
	}

	previous := []byte(`{"from":"previous run"}`)
	speakersPath := filepath.Join(dir, "speakers-analysis-mtg-001.json")
	if err := os.WriteFile(speakersPath, previous, 0o644); err != nil {
		t.Fatal(err)
	}

	// A directory at the root document path makes its rename fail before
	// any component document is touched.
	if err := os.Mkdir(filepath.Join(dir, "meeting-analysis-mtg-001.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	analysis := NewComposer(42, nil).Analyze(testBundle())
	if _, err := writer.WriteAll(analysis); err == nil {
		t.Fatal("expected rename failure")
	}

	got, err := os.ReadFile(speakersPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(previous) {
		t.Errorf("previous speakers document was replaced: %s", got)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if filepath.Ext(f.Name()) == ".tmp" {
			t.Errorf("leftover temp file %s", f.Name())
		}
	}
}

func TestComponentSelector(t *testing.T) {
	analysis := NewComposer(1, nil).Analyze(testBundle())

	for _, name := range []string{
		ComponentSpeakers, ComponentSentiment, ComponentTopics,
		ComponentTimeline, ComponentParticipants, ComponentReactions,
	} {
		if _, err := Component(analysis, name); err != nil {
			t.Errorf("Component(%q) failed: %v", name, err)
		}
	}

	_, err := Component(analysis, "bogus")
	if err == nil {
		t.Fatal("expected error for unknown component")
	}
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_UNKNOWN_COMPONENT {
		t.Errorf("expected UNKNOWN_COMPONENT, got %v", err)
	}
}
