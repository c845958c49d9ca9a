package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names stored in Redis. Asynq routes tasks to handlers by
// these strings.
const (
	TaskWelcome       = "email:welcome"
	TaskSessionReport = "email:session_report"
)

// WelcomeEmailPayload is the JSON payload for the welcome email task.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// SessionReportPayload is the JSON payload for the session report task.
type SessionReportPayload struct {
	To          string `json:"to"`
	StudentName string `json:"student_name"`
	SessionDate string `json:"session_date"`
	Summary     string `json:"summary"`
}

// NewWelcomeEmailTask constructs the welcome email task with retry,
// queue and timeout options.
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewSessionReportTask constructs the session report email task. Reports
// go on the critical queue so parents hear back soon after a session.
func NewSessionReportTask(to, studentName, sessionDate, summary string) (*asynq.Task, error) {
	payload, err := json.Marshal(SessionReportPayload{
		To:          to,
		StudentName: studentName,
		SessionDate: sessionDate,
		Summary:     summary,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskSessionReport,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
