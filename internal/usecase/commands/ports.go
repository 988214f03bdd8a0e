package commands

import (
	"context"
	"time"

	"academy-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Booking outcomes as reported to Metrics.
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeFull       = "capacity_exceeded"
	OutcomeDuplicate  = "duplicate_player"
	OutcomeRejected   = "rejected"
	OutcomeStoreError = "store_error"
)

type Metrics interface {
	ObserveBooking(outcome string, elapsed time.Duration)
	ObserveCancellation(changed bool)
}

// MemberCacheEvictor drops a member's cached read snapshot.
type MemberCacheEvictor interface {
	Evict(ctx context.Context, id uuid.UUID) error
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role user.Role) (string, error)
}

type NopMetrics struct{}

func (NopMetrics) ObserveBooking(string, time.Duration) {}
func (NopMetrics) ObserveCancellation(bool)             {}
