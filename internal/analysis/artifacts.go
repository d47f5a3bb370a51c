package analysis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MetadataFileName is the one artifact every meeting must provide.
const MetadataFileName = "meeting-metadata.json"

var audioExtensions = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".m4a":  true,
	".wav":  true,
	".webm": true,
}

// LoadArtifacts reads the artifact files for one meeting out of dir.
// The metadata document is required; transcripts (*.vtt) and chat logs
// (*.txt) are optional, and audio files only register as present, their
// content is never decoded. Files are visited in name order so repeated
// loads of the same directory produce identical bundles.
func LoadArtifacts(dir string) (*entities.ArtifactBundle, error) {
	metaPath := filepath.Join(dir, MetadataFileName)
	metaRaw, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrMissingArtifact(MetadataFileName)
		}
		return nil, apperrors.ErrStorageFailed("read metadata", err)
	}

	var meta entities.MeetingMetadata
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, apperrors.ErrInvalidArgument("malformed meeting metadata").WithDetail("file", MetadataFileName)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.ErrStorageFailed("list artifacts", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	bundle := &entities.ArtifactBundle{
		Metadata:   meta,
		Segments:   []entities.SpeechSegment{},
		LogEntries: []entities.RawLogEntry{},
	}

	for _, f := range files {
		if f.IsDir() || f.Name() == MetadataFileName {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))

		switch {
		case ext == ".vtt":
			raw, err := os.ReadFile(filepath.Join(dir, f.Name()))
			if err != nil {
				return nil, apperrors.ErrStorageFailed("read transcript", err)
			}
			bundle.Segments = append(bundle.Segments, ParseVTT(string(raw))...)
		case ext == ".txt":
			raw, err := os.ReadFile(filepath.Join(dir, f.Name()))
			if err != nil {
				return nil, apperrors.ErrStorageFailed("read chat log", err)
			}
			bundle.LogEntries = append(bundle.LogEntries, ParseChatLog(string(raw))...)
		case audioExtensions[ext]:
			bundle.HasAudio = true
		}
	}

	return bundle, nil
}
