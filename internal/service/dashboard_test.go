package service

import (
	"testing"
	"time"

	"github.com/tutorlens/tutorlens/internal/repository"
)

func TestSummarizeGoals(t *testing.T) {
	goals := []*repository.Goal{
		{Status: repository.GoalStatusAchieved},
		{Status: repository.GoalStatusInProgress},
		{Status: repository.GoalStatusInProgress},
		{Status: repository.GoalStatusNotStarted},
	}

	summary := summarizeGoals(goals)

	if summary.Total != 4 {
		t.Errorf("total = %d, want 4", summary.Total)
	}
	if summary.Achieved != 1 || summary.InProgress != 2 || summary.NotStarted != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1",
			summary.Achieved, summary.InProgress, summary.NotStarted)
	}
}

func TestSummarizeTopics(t *testing.T) {
	topics := []*repository.Topic{
		{TopicName: "Fractions", MasteryScore: 72},
		{TopicName: "Geometry", MasteryScore: 35},
		{TopicName: "Algebra", MasteryScore: 50},
	}

	summary := summarizeTopics(topics)

	if summary.AverageMastery != 52.3 {
		t.Errorf("average mastery = %v, want 52.3", summary.AverageMastery)
	}
	if len(summary.Improving) != 1 || summary.Improving[0] != "Fractions" {
		t.Errorf("improving = %v, want [Fractions]", summary.Improving)
	}
	if len(summary.NeedsSupport) != 1 || summary.NeedsSupport[0] != "Geometry" {
		t.Errorf("needs support = %v, want [Geometry]", summary.NeedsSupport)
	}
}

func TestSummarizeTopics_empty(t *testing.T) {
	summary := summarizeTopics(nil)
	if summary.AverageMastery != 0 {
		t.Errorf("average mastery = %v, want 0", summary.AverageMastery)
	}
}

func TestSummarizeSessions_trend(t *testing.T) {
	score := func(v float64) *float64 { return &v }
	date := func(day int) time.Time {
		return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		// newest first, matching repository ordering
		recent []*repository.Session
		want   string
	}{
		{
			"improving",
			[]*repository.Session{
				{SessionDate: date(20), EngagementScore: score(75)},
				{SessionDate: date(15), EngagementScore: score(60)},
				{SessionDate: date(10), EngagementScore: score(55)},
			},
			"improving",
		},
		{
			"declining",
			[]*repository.Session{
				{SessionDate: date(20), EngagementScore: score(40)},
				{SessionDate: date(10), EngagementScore: score(70)},
			},
			"declining",
		},
		{
			"within epsilon stays steady",
			[]*repository.Session{
				{SessionDate: date(20), EngagementScore: score(62)},
				{SessionDate: date(10), EngagementScore: score(60)},
			},
			"steady",
		},
		{
			"single session is steady",
			[]*repository.Session{
				{SessionDate: date(20), EngagementScore: score(80)},
			},
			"steady",
		},
		{"no sessions", nil, "steady"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := summarizeSessions(len(tt.recent), tt.recent)
			if summary.EngagementTrend != tt.want {
				t.Errorf("trend = %q, want %q", summary.EngagementTrend, tt.want)
			}
			if len(tt.recent) > 0 && summary.LastSessionDate == nil {
				t.Error("expected last session date to be set")
			}
		})
	}
}

func TestSummarizeSessions_confidenceTrend(t *testing.T) {
	score := func(v float64) *float64 { return &v }
	date := func(day int) time.Time {
		return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
	}

	// Newest first, matching repository ordering. The middle session has
	// no score (a trial) but still appears as a dated point.
	recent := []*repository.Session{
		{ID: 3, SessionDate: date(20), EngagementScore: score(70), RecommendedNext: "Decimals"},
		{ID: 2, SessionDate: date(15), EngagementScore: nil},
		{ID: 1, SessionDate: date(10), EngagementScore: score(50)},
	}

	summary := summarizeSessions(3, recent)

	if len(summary.ConfidenceTrend) != 3 {
		t.Fatalf("confidence trend = %v, want 3 points", summary.ConfidenceTrend)
	}
	// Oldest first.
	if !summary.ConfidenceTrend[0].Date.Equal(date(10)) || !summary.ConfidenceTrend[2].Date.Equal(date(20)) {
		t.Errorf("trend dates = %v..%v, want ascending from day 10 to day 20",
			summary.ConfidenceTrend[0].Date, summary.ConfidenceTrend[2].Date)
	}
	if summary.ConfidenceTrend[1].Engagement != nil {
		t.Error("unscored session should carry a nil engagement point")
	}
	if got := summary.ConfidenceTrend[2].Engagement; got == nil || *got != 70 {
		t.Errorf("newest trend engagement = %v, want 70", got)
	}
	// Trend label skips the unscored point: 70 - 50 > epsilon.
	if summary.EngagementTrend != "improving" {
		t.Errorf("trend = %q, want improving", summary.EngagementTrend)
	}

	if len(summary.Recent) != 3 || summary.Recent[0].ID != 3 {
		t.Fatalf("recent digests = %v, want 3 entries newest first", summary.Recent)
	}
	if summary.Recent[0].RecommendedNext != "Decimals" {
		t.Errorf("recent[0].RecommendedNext = %q, want Decimals", summary.Recent[0].RecommendedNext)
	}
}

func TestSummarizeSessions_trendWindowBoundsReadings(t *testing.T) {
	score := func(v float64) *float64 { return &v }
	date := func(day int) time.Time {
		return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
	}

	// Seven scored sessions, newest first. Only the newest five readings
	// feed the label: 60 - 70 = -10, declining, even though the oldest
	// two would have read improving.
	recent := []*repository.Session{
		{SessionDate: date(28), EngagementScore: score(60)},
		{SessionDate: date(26), EngagementScore: score(62)},
		{SessionDate: date(24), EngagementScore: score(65)},
		{SessionDate: date(22), EngagementScore: score(68)},
		{SessionDate: date(20), EngagementScore: score(70)},
		{SessionDate: date(18), EngagementScore: score(30)},
		{SessionDate: date(16), EngagementScore: score(20)},
	}

	summary := summarizeSessions(7, recent)

	if summary.EngagementTrend != "declining" {
		t.Errorf("trend = %q, want declining", summary.EngagementTrend)
	}
	if len(summary.ConfidenceTrend) != 7 {
		t.Errorf("confidence trend = %d points, want all 7", len(summary.ConfidenceTrend))
	}
}
