package timer

import (
	"context"

	"github.com/google/uuid"

	"nekomate-backend/internal/models"
)

// StateChannel is the shared remote TimerState record, one per user. Save
// overwrites the whole record (last write wins, no compare-and-swap) and
// notifies subscribers; Load returns nil for an absent or unreadable record.
type StateChannel interface {
	Save(ctx context.Context, state models.TimerState) error
	Load(ctx context.Context, userID uuid.UUID) (*models.TimerState, error)
	// Subscribe delivers every remote overwrite of the user's record,
	// including echoes of this session's own writes. The returned function
	// releases the subscription and stops further deliveries.
	Subscribe(ctx context.Context, userID uuid.UUID, fn func(models.TimerState)) (cancel func(), err error)
}
