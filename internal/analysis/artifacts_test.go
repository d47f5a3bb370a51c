package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/johnquangdev/meeting-insights/errors"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const testMetadata = `{
	"meetingId": "mtg-042",
	"title": "Planning",
	"date": "2026-08-24",
	"platform": "zoom",
	"duration": 1800,
	"totalParticipants": 5,
	"participants": [{"name": "Alice"}, {"name": "Bob"}]
}`

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, MetadataFileName, testMetadata)
	writeTestFile(t, dir, "transcript.vtt", "WEBVTT\n\n00:00:01.000 --> 00:00:03.000\nHello there.\n")
	writeTestFile(t, dir, "chat.txt", "00:00:05\tAlice:\tHi all\n")
	writeTestFile(t, dir, "recording.mp4", "not real audio")

	bundle, err := LoadArtifacts(dir)
	if err != nil {
		t.Fatal(err)
	}

	if bundle.Metadata.MeetingID != "mtg-042" {
		t.Errorf("unexpected metadata: %+v", bundle.Metadata)
	}
	if bundle.Metadata.TotalParticipants != 5 {
		t.Errorf("totalParticipants = %d, want 5", bundle.Metadata.TotalParticipants)
	}
	if len(bundle.Segments) != 1 {
		t.Errorf("expected 1 segment, got %d", len(bundle.Segments))
	}
	if len(bundle.LogEntries) != 1 {
		t.Errorf("expected 1 log entry, got %d", len(bundle.LogEntries))
	}
	if !bundle.HasAudio {
		t.Error("expected audio detected")
	}
}

func TestLoadArtifactsMissingMetadata(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "chat.txt", "00:00:05\tAlice:\tHi\n")

	_, err := LoadArtifacts(dir)
	if err == nil {
		t.Fatal("expected error for missing metadata")
	}

	var appErr apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrorCode_MISSING_ARTIFACT {
		t.Errorf("expected MISSING_ARTIFACT, got %s", appErr.Code)
	}
}

func TestLoadArtifactsMalformedMetadata(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, MetadataFileName, "{not json")

	_, err := LoadArtifacts(dir)
	if err == nil {
		t.Fatal("expected error for malformed metadata")
	}

	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_INVALID_ARGUMENT {
		t.Errorf("expected INVALID_ARGUMENT AppError, got %v", err)
	}
}

func TestLoadArtifactsOptionalInputsAbsent(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, MetadataFileName, testMetadata)

	bundle, err := LoadArtifacts(dir)
	if err != nil {
		t.Fatal(err)
	}

	if bundle.Segments == nil || bundle.LogEntries == nil {
		t.Error("expected non-nil empty collections")
	}
	if bundle.HasAudio {
		t.Error("expected no audio")
	}
}
