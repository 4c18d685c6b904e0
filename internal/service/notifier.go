package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/talentgate/grading-api/internal/dto"
)

// Notifier publishes grading outcomes for downstream consumers (candidate
// notification emails, hiring dashboards). Delivery is best effort and never
// fails the pipeline.
type Notifier interface {
	SubmissionGraded(ctx context.Context, submission dto.SubmissionResponse)
}

const defaultGradedSubject = "grading.submission.graded"

type gradedEvent struct {
	Submission dto.SubmissionResponse `json:"submission"`
	SentAt     time.Time              `json:"sent_at"`
}

type natsNotifier struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSNotifier constructs a notifier publishing to the given subject.
func NewNATSNotifier(conn *nats.Conn, subject string, logger zerolog.Logger) Notifier {
	if subject == "" {
		subject = defaultGradedSubject
	}

	return &natsNotifier{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "nats_notifier").Logger(),
	}
}

func (n *natsNotifier) SubmissionGraded(_ context.Context, submission dto.SubmissionResponse) {
	payload, err := json.Marshal(gradedEvent{Submission: submission, SentAt: time.Now().UTC()})
	if err != nil {
		n.logger.Warn().Err(err).Msg("failed to encode graded event")
		return
	}

	if err := n.conn.Publish(n.subject, payload); err != nil {
		n.logger.Warn().Err(err).Str("submission_id", submission.ID).Msg("failed to publish graded event")
	}
}
