package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tutorlens/tutorlens/internal/lib/analysis"
	"github.com/tutorlens/tutorlens/internal/lib/job"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// TranscriptService runs transcript analysis and persists the results.
//
// Trial transcripts seed goals and topics; session transcripts update
// mastery and confidence on existing topics and escalate mental blocks.
type TranscriptService struct {
	server    *server.Server
	repos     *repository.Repositories
	students  *StudentService
	processor analysis.Processor
	cache     *dashboardCache
}

func NewTranscriptService(s *server.Server, repos *repository.Repositories, students *StudentService, processor analysis.Processor, cache *dashboardCache) *TranscriptService {
	return &TranscriptService{
		server:    s,
		repos:     repos,
		students:  students,
		processor: processor,
		cache:     cache,
	}
}

// TrialOutcome is returned after processing a trial transcript.
type TrialOutcome struct {
	Session       *repository.Session `json:"session"`
	GoalsCreated  int                 `json:"goals_created"`
	TopicsCreated int                 `json:"topics_created"`
	Curriculum    string              `json:"curriculum_recommendation"`
}

// SessionOutcome is returned after processing a session transcript.
type SessionOutcome struct {
	Session       *repository.Session `json:"session"`
	TopicsUpdated int                 `json:"topics_updated"`
	BlockSignals  int                 `json:"mental_block_signals"`
}

// ProcessTrial analyzes a trial/intake transcript. It stores the
// transcript as a trial session, creates the extracted goals, creates
// any new topics (parents first), and writes the inferred curriculum
// onto the student.
func (s *TranscriptService) ProcessTrial(ctx context.Context, actor *repository.User, studentID int64, transcript string, sessionDate time.Time) (*TrialOutcome, error) {
	if _, err := s.students.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return nil, err
	}

	result, err := s.processor.ProcessTrial(transcript)
	if err != nil {
		return nil, err
	}

	topicNames := make([]string, 0, len(result.Topics))
	for _, t := range result.Topics {
		topicNames = append(topicNames, t.Name)
	}

	session, err := s.repos.Sessions.Create(ctx, &repository.Session{
		StudentID:        studentID,
		TranscriptText:   transcript,
		SessionType:      repository.SessionTypeTrial,
		SessionDate:      sessionDate,
		ExtractedSummary: result.Summary,
		DetectedTopics:   topicNames,
	})
	if err != nil {
		return nil, err
	}

	for _, draft := range result.Goals {
		var deadline *time.Time
		if draft.Deadline != nil {
			if parsed, perr := time.Parse("2006-01-02", *draft.Deadline); perr == nil {
				deadline = &parsed
			}
		}
		if _, err := s.repos.Goals.Create(ctx, &repository.Goal{
			StudentID:         studentID,
			Description:       draft.Description,
			MeasurableOutcome: draft.MeasurableOutcome,
			Deadline:          deadline,
			Status:            repository.GoalStatusNotStarted,
		}); err != nil {
			return nil, err
		}
	}

	topicsCreated, err := s.createTopics(ctx, studentID, result.Topics)
	if err != nil {
		return nil, err
	}

	if result.CurriculumRecommendation != "" {
		if err := s.repos.Students.SetCurriculum(ctx, studentID, result.CurriculumRecommendation); err != nil {
			return nil, err
		}
	}

	s.cache.Invalidate(ctx, studentID)

	s.server.Logger.Info().
		Int64("student_id", studentID).
		Int("goals", len(result.Goals)).
		Int("topics", topicsCreated).
		Msg("Trial transcript processed")

	return &TrialOutcome{
		Session:       session,
		GoalsCreated:  len(result.Goals),
		TopicsCreated: topicsCreated,
		Curriculum:    result.CurriculumRecommendation,
	}, nil
}

// ProcessSession analyzes a session transcript. It stores the transcript
// with its derived analysis, reruns the mastery and confidence formulas
// for topics that already exist, and folds mental-block signals into
// existing unresolved blocks or creates new ones.
func (s *TranscriptService) ProcessSession(ctx context.Context, actor *repository.User, studentID int64, transcript string, sessionDate time.Time) (*SessionOutcome, error) {
	student, err := s.students.AuthorizeWrite(ctx, actor, studentID)
	if err != nil {
		return nil, err
	}

	result, err := s.processor.ProcessSession(transcript)
	if err != nil {
		return nil, err
	}

	engagement := result.EngagementScore
	session, err := s.repos.Sessions.Create(ctx, &repository.Session{
		StudentID:              studentID,
		TranscriptText:         transcript,
		SessionType:            repository.SessionTypeSession,
		SessionDate:            sessionDate,
		ExtractedSummary:       result.TutorInsight,
		DetectedTopics:         result.TopicsDiscussed,
		DetectedMisconceptions: result.Misconceptions,
		DetectedStrengths:      result.Strengths,
		EngagementScore:        &engagement,
		ParentSummary:          result.ParentSummary,
		TutorInsight:           result.TutorInsight,
		RecommendedNext:        result.RecommendedNext,
	})
	if err != nil {
		return nil, err
	}

	topicsUpdated, err := applyMasteryUpdates(ctx, s.repos.Topics, studentID, result.MasteryUpdates)
	if err != nil {
		return nil, err
	}

	if err := applyBlockSignals(ctx, s.repos.MentalBlocks, studentID, sessionDate, result.BlockSignals); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, studentID)
	s.enqueueParentReport(student, sessionDate, result.ParentSummary)

	s.server.Logger.Info().
		Int64("student_id", studentID).
		Int("topics_updated", topicsUpdated).
		Int("block_signals", len(result.BlockSignals)).
		Float64("engagement", result.EngagementScore).
		Msg("Session transcript processed")

	return &SessionOutcome{
		Session:       session,
		TopicsUpdated: topicsUpdated,
		BlockSignals:  len(result.BlockSignals),
	}, nil
}

// createTopics inserts detected topics that the student does not already
// have, creating named parent topics first.
func (s *TranscriptService) createTopics(ctx context.Context, studentID int64, drafts []analysis.TopicDraft) (int, error) {
	existing, err := s.repos.Topics.ListByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	existingNames := make(map[string]int64, len(existing))
	for _, t := range existing {
		existingNames[strings.ToLower(t.TopicName)] = t.ID
	}

	created := 0
	for _, draft := range drafts {
		if _, ok := existingNames[strings.ToLower(draft.Name)]; ok {
			continue
		}

		var parentID *int64
		if draft.Parent != "" {
			id, ok := existingNames[strings.ToLower(draft.Parent)]
			if !ok {
				parent, err := s.repos.Topics.Create(ctx, &repository.Topic{
					StudentID: studentID,
					TopicName: draft.Parent,
				})
				if err != nil {
					return created, err
				}
				id = parent.ID
				existingNames[strings.ToLower(draft.Parent)] = id
				created++
			}
			parentID = &id
		}

		topic, err := s.repos.Topics.Create(ctx, &repository.Topic{
			StudentID:     studentID,
			TopicName:     draft.Name,
			ParentTopicID: parentID,
		})
		if err != nil {
			return created, err
		}
		existingNames[strings.ToLower(draft.Name)] = topic.ID
		created++
	}
	return created, nil
}

// topicScorer is the slice of TopicsRepository the mastery pass needs.
type topicScorer interface {
	GetByName(ctx context.Context, studentID int64, name string) (*repository.Topic, error)
	UpdateScores(ctx context.Context, id int64, mastery, confidence float64) (*repository.Topic, error)
}

// blockLedger is the slice of MentalBlocksRepository the signal pass needs.
type blockLedger interface {
	FindUnresolvedMatching(ctx context.Context, studentID int64, pattern string) (*repository.MentalBlock, error)
	Create(ctx context.Context, b *repository.MentalBlock) (*repository.MentalBlock, error)
	Recur(ctx context.Context, id int64, severity float64) (*repository.MentalBlock, error)
}

// applyMasteryUpdates reruns the score formulas for topics the student
// already tracks. Topics first seen in a session transcript are skipped;
// they enter the graph through trial processing or manual creation. Any
// lookup failure other than a missing row aborts the pass.
func applyMasteryUpdates(ctx context.Context, topics topicScorer, studentID int64, updates []analysis.MasteryUpdate) (int, error) {
	updated := 0
	for _, u := range updates {
		topic, err := topics.GetByName(ctx, studentID, u.Topic)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return updated, err
		}

		newMastery := analysis.UpdateMastery(topic.MasteryScore, u.Improvement, u.Errors, u.IndependentSolves)
		newConfidence := analysis.UpdateConfidence(topic.ConfidenceScore, u.Errors, u.IndependentSolves)

		if _, err := topics.UpdateScores(ctx, topic.ID, newMastery, newConfidence); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// applyBlockSignals folds each signal into an existing unresolved block
// of the same type (frequency bump + severity recompute) or records a
// new block at the signal's initial severity. Only a genuine missing-row
// result takes the create branch; other lookup failures propagate so a
// transient error cannot insert a duplicate block.
func applyBlockSignals(ctx context.Context, blocks blockLedger, studentID int64, sessionDate time.Time, signals []analysis.BlockSignal) error {
	for _, signal := range signals {
		existing, err := blocks.FindUnresolvedMatching(ctx, studentID, "%"+string(signal.Type)+"%")
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			if _, cerr := blocks.Create(ctx, &repository.MentalBlock{
				StudentID:     studentID,
				Description:   signal.Description,
				FirstDetected: sessionDate,
				SeverityScore: signal.Severity,
			}); cerr != nil {
				return cerr
			}
			continue
		}

		newFreq := existing.FrequencyCount + 1
		severity := analysis.ComputeSeverity(newFreq,
			signal.Type == analysis.SignalAvoidance,
			signal.Type == analysis.SignalEmotional)
		if _, err := blocks.Recur(ctx, existing.ID, severity); err != nil {
			return err
		}
	}
	return nil
}

// enqueueParentReport pushes the session report email when the student
// has a parent email on file. Failures are logged and swallowed.
func (s *TranscriptService) enqueueParentReport(student *repository.Student, sessionDate time.Time, summary string) {
	if student.ParentEmail == "" || s.server.Config.Integration.ResendAPIKey == "" {
		return
	}

	task, err := job.NewSessionReportTask(student.ParentEmail, student.Name,
		sessionDate.Format("2006-01-02"), summary)
	if err != nil {
		s.server.Logger.Error().Err(err).Msg("Failed to build session report task")
		return
	}
	if _, err := s.server.Job.Client.Enqueue(task); err != nil {
		s.server.Logger.Error().Err(err).Msg("Failed to enqueue session report task")
	}
}
