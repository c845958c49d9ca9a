package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tutorlens/tutorlens/internal/lib/utils"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// Dashboard aggregation thresholds.
const (
	improvingMasteryFloor   = 60.0
	needsSupportMasteryCeil = 40.0
	recentSessionsLimit     = 20
	trendWindow             = 5
	trendEpsilon            = 5.0
)

// dashboardCacheTTL bounds staleness; writes also invalidate eagerly.
const dashboardCacheTTL = 60 * time.Second

// Dashboard is the aggregated per-student view. RecommendedNext carries
// the latest session's recommendation, empty when no session suggested
// one yet.
type Dashboard struct {
	Student         *repository.Student       `json:"student"`
	Goals           GoalsSummary              `json:"goals"`
	Topics          TopicsSummary             `json:"topics"`
	MentalBlocks    []*repository.MentalBlock `json:"mental_blocks"`
	Sessions        SessionsSummary           `json:"sessions"`
	RecommendedNext string                    `json:"recommended_next"`
}

// GoalsSummary counts goals by status alongside the full list.
type GoalsSummary struct {
	Total      int                `json:"total"`
	Achieved   int                `json:"achieved"`
	InProgress int                `json:"in_progress"`
	NotStarted int                `json:"not_started"`
	Items      []*repository.Goal `json:"items"`
}

// TopicsSummary lists topics with mastery rollups. Improving names
// topics at or above the improving floor; NeedsSupport names topics
// below the support ceiling.
type TopicsSummary struct {
	Items          []*repository.Topic `json:"items"`
	AverageMastery float64             `json:"average_mastery"`
	Improving      []string            `json:"improving"`
	NeedsSupport   []string            `json:"needs_support"`
}

// SessionsSummary summarizes session history: the recent sessions
// themselves (newest first, without transcript text), a dated engagement
// series in chronological order, and the derived trend ("improving",
// "declining" or "steady").
type SessionsSummary struct {
	Total           int             `json:"total"`
	LastSessionDate *time.Time      `json:"last_session_date"`
	EngagementTrend string          `json:"engagement_trend"`
	ConfidenceTrend []TrendPoint    `json:"confidence_trend"`
	Recent          []SessionDigest `json:"recent"`
}

// TrendPoint is one session's engagement reading. Engagement is nil for
// sessions recorded without a score (trials).
type TrendPoint struct {
	Date       time.Time `json:"date"`
	Engagement *float64  `json:"engagement"`
}

// SessionDigest is the dashboard projection of a session. The full
// transcript stays out of the aggregate payload.
type SessionDigest struct {
	ID               int64     `json:"id"`
	SessionType      string    `json:"session_type"`
	SessionDate      time.Time `json:"session_date"`
	ExtractedSummary string    `json:"extracted_summary"`
	DetectedTopics   []string  `json:"detected_topics"`
	EngagementScore  *float64  `json:"engagement_score"`
	ParentSummary    string    `json:"parent_summary"`
	TutorInsight     string    `json:"tutor_insight"`
	RecommendedNext  string    `json:"recommended_next"`
}

func digestSession(s *repository.Session) SessionDigest {
	return SessionDigest{
		ID:               s.ID,
		SessionType:      s.SessionType,
		SessionDate:      s.SessionDate,
		ExtractedSummary: s.ExtractedSummary,
		DetectedTopics:   s.DetectedTopics,
		EngagementScore:  s.EngagementScore,
		ParentSummary:    s.ParentSummary,
		TutorInsight:     s.TutorInsight,
		RecommendedNext:  s.RecommendedNext,
	}
}

// DashboardService builds the aggregated student view, cached in Redis.
type DashboardService struct {
	server   *server.Server
	repos    *repository.Repositories
	students *StudentService
	cache    *dashboardCache
}

func NewDashboardService(s *server.Server, repos *repository.Repositories, students *StudentService, cache *dashboardCache) *DashboardService {
	return &DashboardService{
		server:   s,
		repos:    repos,
		students: students,
		cache:    cache,
	}
}

// Get returns the dashboard for a student, from cache when fresh.
func (s *DashboardService) Get(ctx context.Context, actor *repository.User, studentID int64) (*Dashboard, error) {
	student, err := s.students.Authorize(ctx, actor, studentID)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(ctx, studentID); ok {
		return cached, nil
	}

	dashboard, err := s.build(ctx, student)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, studentID, dashboard)
	return dashboard, nil
}

func (s *DashboardService) build(ctx context.Context, student *repository.Student) (*Dashboard, error) {
	goals, err := s.repos.Goals.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	topics, err := s.repos.Topics.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	blocks, err := s.repos.MentalBlocks.ListByStudent(ctx, student.ID, false)
	if err != nil {
		return nil, err
	}
	sessionCount, err := s.repos.Sessions.CountByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repos.Sessions.ListRecentByStudent(ctx, student.ID, recentSessionsLimit)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Student:      student,
		Goals:        summarizeGoals(goals),
		Topics:       summarizeTopics(topics),
		MentalBlocks: blocks,
		Sessions:     summarizeSessions(sessionCount, recent),
	}
	if len(recent) > 0 {
		dashboard.RecommendedNext = recent[0].RecommendedNext
	}
	return dashboard, nil
}

func summarizeGoals(goals []*repository.Goal) GoalsSummary {
	summary := GoalsSummary{Total: len(goals), Items: goals}
	for _, g := range goals {
		switch g.Status {
		case repository.GoalStatusAchieved:
			summary.Achieved++
		case repository.GoalStatusInProgress:
			summary.InProgress++
		default:
			summary.NotStarted++
		}
	}
	return summary
}

func summarizeTopics(topics []*repository.Topic) TopicsSummary {
	summary := TopicsSummary{Items: topics}
	if len(topics) == 0 {
		return summary
	}

	var total float64
	for _, t := range topics {
		total += t.MasteryScore
		if t.MasteryScore >= improvingMasteryFloor {
			summary.Improving = append(summary.Improving, t.TopicName)
		} else if t.MasteryScore < needsSupportMasteryCeil {
			summary.NeedsSupport = append(summary.NeedsSupport, t.TopicName)
		}
	}
	summary.AverageMastery = utils.Round1(total / float64(len(topics)))
	return summary
}

// summarizeSessions builds the session digests and the dated engagement
// series, then derives the trend from the most recent scored readings.
// The recent slice arrives newest first; the trend series is emitted
// oldest first.
func summarizeSessions(total int, recent []*repository.Session) SessionsSummary {
	summary := SessionsSummary{Total: total, EngagementTrend: "steady"}
	if len(recent) == 0 {
		return summary
	}
	summary.LastSessionDate = &recent[0].SessionDate

	for _, s := range recent {
		summary.Recent = append(summary.Recent, digestSession(s))
	}

	var scored []float64
	for i := len(recent) - 1; i >= 0; i-- {
		s := recent[i]
		summary.ConfidenceTrend = append(summary.ConfidenceTrend, TrendPoint{
			Date:       s.SessionDate,
			Engagement: s.EngagementScore,
		})
		if s.EngagementScore != nil {
			scored = append(scored, *s.EngagementScore)
		}
	}

	if len(scored) > trendWindow {
		scored = scored[len(scored)-trendWindow:]
	}
	if len(scored) >= 2 {
		diff := scored[len(scored)-1] - scored[0]
		switch {
		case diff > trendEpsilon:
			summary.EngagementTrend = "improving"
		case diff < -trendEpsilon:
			summary.EngagementTrend = "declining"
		}
	}
	return summary
}

// dashboardCache is a read-through Redis cache for dashboards. All
// failures degrade to a cache miss; the dashboard still builds from the
// database when Redis is down.
type dashboardCache struct {
	rdb *redis.Client
	log *zerolog.Logger
}

func newDashboardCache(s *server.Server) *dashboardCache {
	return &dashboardCache{
		rdb: s.Redis,
		log: s.Logger,
	}
}

func dashboardKey(studentID int64) string {
	return fmt.Sprintf("dashboard:%d", studentID)
}

func (c *dashboardCache) Get(ctx context.Context, studentID int64) (*Dashboard, bool) {
	payload, err := c.rdb.Get(ctx, dashboardKey(studentID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Msg("Dashboard cache read failed")
		}
		return nil, false
	}

	var dashboard Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		c.log.Debug().Err(err).Msg("Dashboard cache payload corrupt")
		return nil, false
	}
	return &dashboard, true
}

func (c *dashboardCache) Set(ctx context.Context, studentID int64, d *Dashboard) {
	payload, err := json.Marshal(d)
	if err != nil {
		c.log.Debug().Err(err).Msg("Dashboard cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, dashboardKey(studentID), payload, dashboardCacheTTL).Err(); err != nil {
		c.log.Debug().Err(err).Msg("Dashboard cache write failed")
	}
}

func (c *dashboardCache) Invalidate(ctx context.Context, studentID int64) {
	if err := c.rdb.Del(ctx, dashboardKey(studentID)).Err(); err != nil {
		c.log.Debug().Err(err).Msg("Dashboard cache invalidation failed")
	}
}
