package analysis

import "testing"

func TestParseVTT(t *testing.T) {
	raw := `WEBVTT

1
00:00:01.000 --> 00:00:04.500
Hello everyone, welcome to the sync.

2
00:00:05.000 --> 00:00:09.250
Let's start with
the project update.
`

	segments := ParseVTT(raw)

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	if segments[0].Start != 1 || segments[0].End != 4.5 {
		t.Errorf("unexpected first cue times: %+v", segments[0])
	}
	if segments[0].Text != "Hello everyone, welcome to the sync." {
		t.Errorf("unexpected first cue text: %q", segments[0].Text)
	}
	if segments[0].Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", segments[0].Confidence)
	}

	if segments[1].Text != "Let's start with the project update." {
		t.Errorf("multi-line cue not joined: %q", segments[1].Text)
	}
}

func TestParseVTTShortTimestamps(t *testing.T) {
	raw := "WEBVTT\n\n00:05.000 --> 00:12.500\nShort form timestamps.\n"

	segments := ParseVTT(raw)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Start != 5 || segments[0].End != 12.5 {
		t.Errorf("unexpected times: %+v", segments[0])
	}
}

func TestParseVTTSkipsMalformedCues(t *testing.T) {
	raw := "WEBVTT\n\nnot-a-time --> 00:00:05.000\nText under broken cue.\n\n00:00:06.000 --> 00:00:08.000\nValid cue.\n"

	segments := ParseVTT(raw)
	if len(segments) != 1 {
		t.Fatalf("expected only the valid cue, got %d segments", len(segments))
	}
	if segments[0].Text != "Valid cue." {
		t.Errorf("unexpected text: %q", segments[0].Text)
	}
}

func TestParseVTTEmptyCueDropped(t *testing.T) {
	raw := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n\n00:00:03.000 --> 00:00:04.000\nHas text.\n"

	segments := ParseVTT(raw)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
}
