package analysis

import (
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// AggregateParticipation cross-references declared participants against
// observed speakers and reactors. Active participants form the set union of
// speakers and reactors; a participant who both speaks and reacts counts
// once. TotalParticipants comes from metadata alone, never from observation.
func AggregateParticipation(meta entities.MeetingMetadata, speakers []entities.SpeakerAnalysis, logEntries []entities.RawLogEntry) entities.ParticipantAnalysis {
	speaking := map[string]bool{}
	for _, s := range speakers {
		speaking[s.Name] = true
	}

	reacting := map[string]bool{}
	for _, e := range logEntries {
		if e.Kind == entities.LogKindReaction {
			reacting[e.ParticipantName] = true
		}
	}

	active := map[string]bool{}
	for name := range speaking {
		active[name] = true
	}
	for name := range reacting {
		active[name] = true
	}

	info := map[string]entities.ParticipantDetail{}
	names := map[string]bool{}
	for _, p := range meta.Participants {
		names[p.Name] = true
		info[p.Name] = entities.ParticipantDetail{
			Name:     p.Name,
			Role:     p.Role,
			Speaking: speaking[p.Name],
			Reacting: reacting[p.Name],
			Active:   active[p.Name],
		}
	}
	// Observed participants missing from metadata still get an entry.
	for name := range active {
		if !names[name] {
			info[name] = entities.ParticipantDetail{
				Name:     name,
				Speaking: speaking[name],
				Reacting: reacting[name],
				Active:   true,
			}
		}
	}

	total := meta.ResolvedTotalParticipants()

	// Silent participants are whoever the declared headcount says was there
	// beyond the observed actives. Undeclared actives can push the count
	// past the total, so clamp at zero.
	silent := total - len(active)
	if silent < 0 {
		silent = 0
	}

	return entities.ParticipantAnalysis{
		TotalParticipants:    total,
		ActiveParticipants:   len(active),
		SpeakingParticipants: len(speaking),
		ReactingParticipants: len(reacting),
		SilentParticipants:   silent,
		ParticipantInfo:      info,
	}
}
