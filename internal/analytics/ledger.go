package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"nekomate-backend/internal/models"
)

// MinSessionSeconds is the noise floor: runs at or below this duration are
// treated as accidental starts and never recorded.
const MinSessionSeconds = 60

// SessionAppender is the append-only side of the session store.
type SessionAppender interface {
	Create(ctx context.Context, session *models.StudySession) error
}

// Ledger turns "a run ended" events into durable study-session records.
type Ledger struct {
	sessions SessionAppender
	now      func() time.Time
}

func NewLedger(sessions SessionAppender) *Ledger {
	return &Ledger{sessions: sessions, now: time.Now}
}

// RecordIfSignificant appends one immutable record for the run that started
// at start, unless the elapsed duration is within the noise floor. The
// calendar date comes from the start time's local date. Returns (nil, nil)
// when the run was too short.
func (l *Ledger) RecordIfSignificant(ctx context.Context, userID uuid.UUID, start time.Time, name string) (*models.StudySession, error) {
	end := l.now()
	duration := int(end.Sub(start).Seconds())
	if duration <= MinSessionSeconds {
		return nil, nil
	}

	session := &models.StudySession{
		UserID:          userID,
		DurationSeconds: duration,
		StartedAt:       start,
		EndedAt:         end,
		Date:            start.Format("2006-01-02"),
	}
	if name != "" {
		session.SessionName = &name
	}

	if err := l.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
