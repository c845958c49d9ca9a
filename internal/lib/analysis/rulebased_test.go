package analysis

import (
	"strings"
	"testing"
)

func TestProcessTrial(t *testing.T) {
	p := NewRuleBasedProcessor()

	transcript := "Parent: Our goal is to prepare for the AMC 8 competition. He needs to work on fractions and number sense."

	result, err := p.ProcessTrial(transcript)
	if err != nil {
		t.Fatal(err)
	}

	if result.CurriculumRecommendation != "Competition Math (AMC/MathCounts)" {
		t.Errorf("curriculum = %q, want competition track", result.CurriculumRecommendation)
	}

	// One explicit goal, one "work on" goal, plus implicit goals from
	// the two detected topics.
	if len(result.Goals) != 4 {
		t.Fatalf("expected 4 goals, got %d: %+v", len(result.Goals), result.Goals)
	}
	if result.Goals[0].Description != "To prepare for the amc 8 competition" {
		t.Errorf("first goal = %q", result.Goals[0].Description)
	}

	var fractions *TopicDraft
	for i := range result.Topics {
		if result.Topics[i].Name == "Fractions" {
			fractions = &result.Topics[i]
		}
	}
	if fractions == nil {
		t.Fatalf("expected Fractions topic, got %+v", result.Topics)
	}
	if fractions.Parent != "Number Sense" {
		t.Errorf("Fractions parent = %q, want Number Sense", fractions.Parent)
	}

	if !strings.Contains(result.Summary, "Competition Math") {
		t.Errorf("summary missing curriculum track: %q", result.Summary)
	}
}

func TestProcessTrial_fallbackGoal(t *testing.T) {
	p := NewRuleBasedProcessor()

	result, err := p.ProcessTrial("hello")
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Goals) != 1 {
		t.Fatalf("expected fallback goal, got %+v", result.Goals)
	}
	if result.Goals[0].Description != "Build overall math proficiency" {
		t.Errorf("fallback goal = %q", result.Goals[0].Description)
	}
	if result.CurriculumRecommendation != "General Math Proficiency" {
		t.Errorf("curriculum = %q", result.CurriculumRecommendation)
	}
}

func TestProcessSession(t *testing.T) {
	p := NewRuleBasedProcessor()

	transcript := "Today we worked on fractions. Oh wait, I got it by myself! That makes sense. Another one please."

	result, err := p.ProcessSession(transcript)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.TopicsDiscussed) != 1 || result.TopicsDiscussed[0] != "Fractions" {
		t.Errorf("topics = %v, want [Fractions]", result.TopicsDiscussed)
	}
	if len(result.Misconceptions) != 1 {
		t.Errorf("misconceptions = %v, want 1 entry", result.Misconceptions)
	}
	if len(result.Strengths) != 3 {
		t.Errorf("strengths = %v, want 3 entries", result.Strengths)
	}

	if len(result.MasteryUpdates) != 1 {
		t.Fatalf("mastery updates = %+v, want 1 entry", result.MasteryUpdates)
	}
	update := result.MasteryUpdates[0]
	if update.Topic != "Fractions" {
		t.Errorf("update topic = %q", update.Topic)
	}
	// More strengths than misconceptions yields the high improvement
	// factor; "i got it" and "by myself" count as independent solves.
	if update.Improvement != 0.3 {
		t.Errorf("improvement = %v, want 0.3", update.Improvement)
	}
	if update.Errors != 1 {
		t.Errorf("errors = %d, want 1", update.Errors)
	}
	if update.IndependentSolves != 2 {
		t.Errorf("independent solves = %d, want 2", update.IndependentSolves)
	}

	if result.EngagementScore <= 50 || result.EngagementScore >= 70 {
		t.Errorf("engagement = %v, want between 50 and 70", result.EngagementScore)
	}
	if len(result.BlockSignals) != 0 {
		t.Errorf("block signals = %+v, want none", result.BlockSignals)
	}

	if !strings.Contains(result.ParentSummary, "fractions") && !strings.Contains(result.ParentSummary, "Fractions") {
		t.Errorf("parent summary missing topic: %q", result.ParentSummary)
	}
	if result.TutorInsight == "" || result.RecommendedNext == "" {
		t.Error("expected non-empty tutor insight and recommendation")
	}
}

func TestDetectTopics_order(t *testing.T) {
	got := detectTopics("we practiced fractions and decimals today")

	want := []string{"Fractions", "Decimals"}
	if len(got) != len(want) {
		t.Fatalf("topics = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topics[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInferCurriculum(t *testing.T) {
	tests := []struct {
		transcript string
		want       string
	}{
		{"she's preparing for mathcounts this year", "Competition Math (AMC/MathCounts)"},
		{"psat next fall", "SAT/ACT Prep"},
		{"keeping up with common core standards", "Common Core Aligned"},
		{"calculus readiness", "Advanced / AP Prep"},
		{"just general math help", "General Math Proficiency"},
	}

	for _, tt := range tests {
		if got := inferCurriculum(tt.transcript); got != tt.want {
			t.Errorf("inferCurriculum(%q) = %q, want %q", tt.transcript, got, tt.want)
		}
	}
}

func TestScoreEngagement(t *testing.T) {
	neutral := scoreEngagement("ok")
	if neutral != 50.1 {
		t.Errorf("neutral engagement = %v, want 50.1", neutral)
	}

	negative := scoreEngagement("boring")
	if negative >= neutral {
		t.Errorf("negative engagement %v should be below neutral %v", negative, neutral)
	}

	positive := scoreEngagement("cool")
	if positive <= neutral {
		t.Errorf("positive engagement %v should be above neutral %v", positive, neutral)
	}
}

func TestComputeMasterySignals_errorCap(t *testing.T) {
	misconceptions := []string{"a", "b", "c", "d", "e"}
	updates := computeMasterySignals([]string{"Algebra"}, misconceptions, nil)

	if len(updates) != 1 {
		t.Fatalf("updates = %+v", updates)
	}
	if updates[0].Errors != 3 {
		t.Errorf("errors = %d, want capped at 3", updates[0].Errors)
	}
	if updates[0].Improvement != 0.1 {
		t.Errorf("improvement = %v, want 0.1 when misconceptions dominate", updates[0].Improvement)
	}
}
