package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/tutorlens/tutorlens/internal/config"
	"github.com/tutorlens/tutorlens/internal/lib/email"
)

// emailClient is shared by all email task handlers. InitHandlers must run
// before the server starts or handlers will fail on a nil client.
var emailClient *email.Client

// InitHandlers constructs the dependencies job handlers need.
func (j *JobService) InitHandlers(config *config.Config, logger *zerolog.Logger) {
	emailClient = email.NewClient(config, logger)
}

// handleWelcomeEmailTask sends the welcome email for a new account.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := emailClient.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err // Asynq marks the task failed and schedules a retry
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

// handleSessionReportTask sends the parent-facing summary after a session
// transcript has been processed.
func (j *JobService) handleSessionReportTask(ctx context.Context, t *asynq.Task) error {
	var p SessionReportPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal session report payload: %w", err)
	}

	j.logger.Info().
		Str("type", "session_report").
		Str("to", p.To).
		Str("student", p.StudentName).
		Msg("Processing session report task")

	if err := emailClient.SendSessionReportEmail(p.To, p.StudentName, p.SessionDate, p.Summary); err != nil {
		j.logger.Error().
			Str("type", "session_report").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send session report email")
		return err
	}

	j.logger.Info().
		Str("type", "session_report").
		Str("to", p.To).
		Msg("Successfully sent session report email")

	return nil
}
