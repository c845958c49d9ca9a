package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tutorlens/tutorlens/internal/lib/utils"
)

// Pattern inventories for goal, misconception and strength extraction.
// All matching runs against the lowercased transcript.
var goalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:goal|objective|target|aim|want to|hope to|need to|would like to)\s*(?:is|are|:)?\s*(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?:we want|i want|she wants|he wants)\s+(?:him|her|them|to)\s*(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?:improve|get better at|work on|focus on|master)\s+(.+?)(?:\.|$)`),
}

var misconceptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:i thought|i think)\s+(?:it was|it's|you)\s+`),
	regexp.MustCompile(`(?:wait|no)\s*,?\s*(?:isn't it|is it|shouldn't)`),
	regexp.MustCompile(`(?:but|why)\s+(?:isn't|doesn't|can't|won't)`),
	regexp.MustCompile(`(?:i keep getting|i got)\s+(?:a different|the wrong|a wrong)`),
	regexp.MustCompile(`(?:that doesn't make sense|i'm confused about)`),
	regexp.MustCompile(`(?:oh wait|oh no|oops)`),
	regexp.MustCompile(`(?:i forgot|i don't remember)\s+(?:how to|the rule|the formula)`),
	regexp.MustCompile(`(?:why do we|why can't we|why does)\s+`),
}

var strengthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:i got it|i understand|oh i see|that makes sense)`),
	regexp.MustCompile(`(?:let me try|i'll do|i can do)\s+(?:this one|it|the next)`),
	regexp.MustCompile(`(?:is it|the answer is|so it's)\s+\d+`),
	regexp.MustCompile(`(?:i remember|i know)\s+(?:this|how to|the)`),
	regexp.MustCompile(`(?:easy|simple|straightforward|i see the pattern)`),
	regexp.MustCompile(`(?:without help|by myself|on my own|independently)`),
}

// independenceMarkers flag a strength match as an independent solve.
var independenceMarkers = []string{"by myself", "on my own", "i got it", "let me try"}

const (
	maxGoals          = 6
	maxMisconceptions = 5
	maxStrengths      = 5
)

// RuleBasedProcessor extracts structured signals from transcripts using
// keyword and pattern matching. No external services involved, so the
// same output always comes back for the same transcript.
type RuleBasedProcessor struct{}

var _ Processor = (*RuleBasedProcessor)(nil)

func NewRuleBasedProcessor() *RuleBasedProcessor {
	return &RuleBasedProcessor{}
}

// ProcessTrial extracts learning goals, topic areas and a curriculum
// recommendation from a trial/intake transcript.
func (p *RuleBasedProcessor) ProcessTrial(transcript string) (*TrialResult, error) {
	lower := strings.ToLower(transcript)

	goals := extractGoals(lower)
	topicNames := detectTopics(lower)
	curriculum := inferCurriculum(lower)

	topics := make([]TopicDraft, 0, len(topicNames))
	for _, name := range topicNames {
		topics = append(topics, TopicDraft{Name: name, Parent: parentTopics[name]})
	}

	return &TrialResult{
		Goals:                    goals,
		Topics:                   topics,
		Summary:                  trialSummary(goals, topicNames, curriculum),
		CurriculumRecommendation: curriculum,
	}, nil
}

// ProcessSession extracts performance signals from a regular session
// transcript: topics, misconceptions, strengths, engagement, mastery
// update inputs, mental-block signals and the generated summaries.
func (p *RuleBasedProcessor) ProcessSession(transcript string) (*SessionResult, error) {
	lower := strings.ToLower(transcript)

	topics := detectTopics(lower)
	misconceptions := detectMisconceptions(lower)
	strengths := detectStrengths(lower)
	engagement := scoreEngagement(lower)
	masteryUpdates := computeMasterySignals(topics, misconceptions, strengths)
	blockSignals := DetectBlockSignals(lower)

	return &SessionResult{
		TopicsDiscussed: topics,
		Misconceptions:  misconceptions,
		Strengths:       strengths,
		EngagementScore: engagement,
		MasteryUpdates:  masteryUpdates,
		BlockSignals:    blockSignals,
		ParentSummary:   parentSummary(topics, strengths, misconceptions, engagement),
		TutorInsight:    tutorInsight(topics, misconceptions, strengths, blockSignals),
		RecommendedNext: recommendation(topics, misconceptions, masteryUpdates),
	}, nil
}

// extractGoals pulls explicit goal statements out of the transcript and
// backfills implicit goals from the first topics mentioned. At least one
// goal is always returned.
func extractGoals(lower string) []GoalDraft {
	var goals []GoalDraft
	seen := make(map[string]bool)

	for _, pattern := range goalPatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			desc := utils.Capitalize(strings.TrimSpace(match[1]))
			key := strings.ToLower(desc)
			if len(desc) > 10 && !seen[key] {
				seen[key] = true
				goals = append(goals, GoalDraft{
					Description:       desc,
					MeasurableOutcome: inferOutcome(desc),
				})
			}
		}
	}

	topics := detectTopics(lower)
	if len(topics) > 3 {
		topics = topics[:3]
	}
	for _, topic := range topics {
		desc := fmt.Sprintf("Build proficiency in %s", topic)
		key := strings.ToLower(desc)
		if !seen[key] {
			seen[key] = true
			goals = append(goals, GoalDraft{
				Description:       desc,
				MeasurableOutcome: fmt.Sprintf("Score 80%%+ on %s assessments", topic),
			})
		}
	}

	if len(goals) == 0 {
		goals = append(goals, GoalDraft{
			Description:       "Build overall math proficiency",
			MeasurableOutcome: "Demonstrate consistent improvement across sessions",
		})
	}

	if len(goals) > maxGoals {
		goals = goals[:maxGoals]
	}
	return goals
}

// detectTopics returns the topics whose keywords appear in the
// transcript, in dictionary order.
func detectTopics(lower string) []string {
	var found []string
	for _, entry := range topicKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				found = append(found, entry.name)
				break
			}
		}
	}
	return found
}

// inferCurriculum picks a curriculum track from transcript keywords.
func inferCurriculum(lower string) string {
	switch {
	case containsAny(lower, "amc", "competition", "olympiad", "mathcounts"):
		return "Competition Math (AMC/MathCounts)"
	case containsAny(lower, "sat", "act", "psat"):
		return "SAT/ACT Prep"
	case containsAny(lower, "common core", "state test", "school"):
		return "Common Core Aligned"
	case containsAny(lower, "ap", "calculus", "advanced"):
		return "Advanced / AP Prep"
	}
	return "General Math Proficiency"
}

// inferOutcome derives a measurable outcome from a goal description.
func inferOutcome(goalDesc string) string {
	lower := strings.ToLower(goalDesc)
	switch {
	case containsAny(lower, "score", "grade", "test"):
		return "Achieve target score on relevant assessment"
	case containsAny(lower, "speed", "fast", "quick"):
		return "Complete timed practice within target duration"
	case containsAny(lower, "understand", "concept", "foundation"):
		return "Demonstrate conceptual understanding through explanation tasks"
	}
	return "Show measurable improvement over 4 consecutive sessions"
}

// detectMisconceptions finds misconception signal matches and returns
// each with surrounding context from the transcript.
func detectMisconceptions(lower string) []string {
	var found []string
	for _, pattern := range misconceptionPatterns {
		matches := pattern.FindAllString(lower, -1)
		if len(matches) > 2 {
			matches = matches[:2]
		}
		for _, m := range matches {
			idx := strings.Index(lower, m)
			start := idx - 30
			if start < 0 {
				start = 0
			}
			end := idx + len(m) + 50
			if end > len(lower) {
				end = len(lower)
			}
			found = append(found, strings.TrimSpace(lower[start:end]))
		}
	}
	if len(found) > maxMisconceptions {
		found = found[:maxMisconceptions]
	}
	return found
}

// detectStrengths finds positive-signal matches in the transcript.
func detectStrengths(lower string) []string {
	var found []string
	for _, pattern := range strengthPatterns {
		matches := pattern.FindAllString(lower, -1)
		if len(matches) > 2 {
			matches = matches[:2]
		}
		for _, m := range matches {
			found = append(found, strings.TrimSpace(m))
		}
	}
	if len(found) > maxStrengths {
		found = found[:maxStrengths]
	}
	return found
}

// scoreEngagement scores engagement 0-100. Longer transcripts score
// higher (more back-and-forth), positive phrases raise it, negative
// phrases lower it faster than positives raise it.
func scoreEngagement(lower string) float64 {
	positive := 0
	for _, p := range engagementPositive {
		if strings.Contains(lower, p) {
			positive++
		}
	}
	negative := 0
	for _, p := range engagementNegative {
		if strings.Contains(lower, p) {
			negative++
		}
	}

	wordCount := len(strings.Fields(lower))
	lengthScore := float64(wordCount) / 10
	if lengthScore > 40 {
		lengthScore = 40
	}

	engagement := 50 + lengthScore + float64(positive)*8 - float64(negative)*12
	return utils.Clamp(utils.Round1(engagement), 0, 100)
}

// computeMasterySignals derives per-topic mastery update inputs from the
// session's detected signals. Every discussed topic gets the same
// session-level signals; per-topic attribution would need speaker and
// timestamp segmentation the transcripts don't carry.
func computeMasterySignals(topics, misconceptions, strengths []string) []MasteryUpdate {
	independentCount := 0
	for _, s := range strengths {
		if containsAny(s, independenceMarkers...) {
			independentCount++
		}
	}

	errorCount := len(misconceptions)
	if errorCount > 3 {
		errorCount = 3
	}

	improvement := 0.1
	if len(strengths) > len(misconceptions) {
		improvement = 0.3
	}

	updates := make([]MasteryUpdate, 0, len(topics))
	for _, topic := range topics {
		updates = append(updates, MasteryUpdate{
			Topic:             topic,
			Improvement:       improvement,
			Errors:            errorCount,
			IndependentSolves: independentCount,
		})
	}
	return updates
}

func parentSummary(topics, strengths, misconceptions []string, engagement float64) string {
	var parts []string
	if len(topics) > 0 {
		shown := topics
		if len(shown) > 3 {
			shown = shown[:3]
		}
		parts = append(parts, fmt.Sprintf("Today we worked on: %s.", strings.Join(shown, ", ")))
	}
	if len(strengths) > 0 {
		parts = append(parts, "Your child showed strength in understanding key concepts.")
	}
	if len(misconceptions) > 0 {
		parts = append(parts, fmt.Sprintf("We identified %d area(s) that need more practice.", len(misconceptions)))
	}
	switch {
	case engagement >= 70:
		parts = append(parts, "Engagement was great today!")
	case engagement >= 50:
		parts = append(parts, "Engagement was steady.")
	default:
		parts = append(parts, "We're working on building more engagement and motivation.")
	}
	parts = append(parts, "Looking forward to continued progress next session!")
	return strings.Join(parts, " ")
}

func tutorInsight(topics, misconceptions, strengths []string, blockSignals []BlockSignal) string {
	covered := "General review"
	if len(topics) > 0 {
		covered = strings.Join(topics, ", ")
	}

	parts := []string{fmt.Sprintf("Topics covered: %s.", covered)}
	if len(misconceptions) > 0 {
		parts = append(parts, fmt.Sprintf("Misconceptions detected (%d): Focus on conceptual reinforcement before procedural practice.", len(misconceptions)))
	}
	if len(strengths) > 0 {
		parts = append(parts, fmt.Sprintf("Positive signals (%d): Student showing readiness to advance on demonstrated topics.", len(strengths)))
	}
	if len(blockSignals) > 0 {
		parts = append(parts, fmt.Sprintf("Mental block signals (%d): Consider scaffolding approach and confidence-building exercises.", len(blockSignals)))
	}
	return strings.Join(parts, " ")
}

func recommendation(topics, misconceptions []string, masteryUpdates []MasteryUpdate) string {
	if len(misconceptions) > 0 {
		return "Recommended: Revisit concepts with errors using scaffolded examples. Start with guided practice before independent work."
	}
	for _, u := range masteryUpdates {
		if u.Improvement < 0.3 {
			return fmt.Sprintf("Recommended: Focus on strengthening %s with varied problem types.", u.Topic)
		}
	}
	if len(topics) > 0 {
		return fmt.Sprintf("Recommended: Build on today's progress and introduce next-level problems in %s.", topics[0])
	}
	return "Recommended: Review previous session topics and assess readiness for new material."
}

func trialSummary(goals []GoalDraft, topics []string, curriculum string) string {
	parts := []string{fmt.Sprintf("Curriculum track: %s.", curriculum)}
	if len(goals) > 0 {
		parts = append(parts, fmt.Sprintf("Identified %d learning goal(s).", len(goals)))
	}
	if len(topics) > 0 {
		shown := topics
		if len(shown) > 4 {
			shown = shown[:4]
		}
		parts = append(parts, fmt.Sprintf("Key topic areas: %s.", strings.Join(shown, ", ")))
	}
	parts = append(parts, "Initial assessment complete; ready for structured lesson planning.")
	return strings.Join(parts, " ")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
