package insight

import (
	"context"
	"errors"
	"time"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

// ErrAnalysisUnavailable is returned when the record source cannot be read.
// No partial profile is ever produced; callers should treat this as
// "insights temporarily unavailable" rather than a user-facing error.
var ErrAnalysisUnavailable = errors.New("analysis unavailable")

// Records supplies the raw user records the analyzer reads. The engine only
// ever reads; records are owned by the ledger subsystem.
type Records interface {
	ListTransactions(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error)
	ListGoals(ctx context.Context, userID string) ([]models.Goal, error)
	ListDebts(ctx context.Context, userID string) ([]models.Debt, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}
