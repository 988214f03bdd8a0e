package mirror

import (
	"context"

	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// Nop is used when Redis is not configured. Every load misses and seen state
// is not remembered, so all active announcements count as unseen.
type Nop struct{}

func (Nop) Load(context.Context, uuid.UUID) (*queries.MemberView, bool, error) { return nil, false, nil }
func (Nop) Store(context.Context, *queries.MemberView) error                  { return nil }
func (Nop) Evict(context.Context, uuid.UUID) error                            { return nil }

func (Nop) SeenAnnouncements(context.Context, uuid.UUID) ([]uuid.UUID, error) { return nil, nil }
func (Nop) MarkSeen(context.Context, uuid.UUID, ...uuid.UUID) error           { return nil }
