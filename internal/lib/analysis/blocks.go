package analysis

import (
	"fmt"
	"strings"
)

// Severity escalation tuning for recurring mental blocks.
const (
	escalationThreshold = 3 // sessions before severity escalates
	severityIncrement   = 1.5
	maxSeverity         = 10.0
)

// Phrase inventories for mental block detection. Matching is plain
// substring search on the lowercased transcript, so every phrase here
// must be lowercase.
var avoidancePhrases = []string{
	"i don't want to",
	"can we skip",
	"i hate",
	"not this again",
	"this is too hard",
	"i can't do this",
	"i'll never get",
	"let's do something else",
	"i give up",
	"this is boring",
	"do we have to",
}

var hesitationPhrases = []string{
	"i'm not sure",
	"i don't know",
	"wait",
	"umm",
	"uh",
	"i think maybe",
	"i forgot",
	"is it",
	"i'm confused",
	"what do you mean",
	"i don't understand",
	"can you explain again",
}

var emotionalPhrases = []string{
	"i'm stressed",
	"i'm nervous",
	"i feel dumb",
	"everyone else gets it",
	"i'm so lost",
	"my brain hurts",
	"i'm going to fail",
	"i feel stupid",
}

// DetectBlockSignals scans a lowercased transcript for language that
// suggests a mental block: avoidance, emotional distress, or dense
// hesitation. Each matched avoidance/emotional phrase yields its own
// signal; hesitation only counts once its density crosses a threshold,
// since a couple of "wait"s in a full session is normal speech.
func DetectBlockSignals(transcriptLower string) []BlockSignal {
	var signals []BlockSignal

	for _, phrase := range avoidancePhrases {
		if strings.Contains(transcriptLower, phrase) {
			signals = append(signals, BlockSignal{
				Description: fmt.Sprintf("Avoidance language detected: '%s'", phrase),
				Type:        SignalAvoidance,
				Severity:    3.0,
			})
		}
	}

	for _, phrase := range emotionalPhrases {
		if strings.Contains(transcriptLower, phrase) {
			signals = append(signals, BlockSignal{
				Description: fmt.Sprintf("Emotional distress signal: '%s'", phrase),
				Type:        SignalEmotional,
				Severity:    4.0,
			})
		}
	}

	hesitations := 0
	for _, phrase := range hesitationPhrases {
		if strings.Contains(transcriptLower, phrase) {
			hesitations++
		}
	}
	if hesitations >= 3 {
		signals = append(signals, BlockSignal{
			Description: fmt.Sprintf("High hesitation density (%d signals)", hesitations),
			Type:        SignalHesitation,
			Severity:    2.0 + float64(hesitations)*0.5,
		})
	}

	return signals
}

// ComputeSeverity scores a recurring mental block on a 0-10 scale.
// Severity escalates when the same confusion has surfaced across three
// or more sessions, and when avoidance or emotional language has been
// observed alongside it.
func ComputeSeverity(frequencyCount int, hasAvoidance, hasEmotional bool) float64 {
	base := float64(frequencyCount)
	if base > 5.0 {
		base = 5.0
	}

	if frequencyCount >= escalationThreshold {
		base += severityIncrement
	}
	if hasAvoidance {
		base += 2.0
	}
	if hasEmotional {
		base += 1.5
	}

	if base > maxSeverity {
		return maxSeverity
	}
	return base
}
