package shared

import (
	"context"

	"github.com/google/uuid"
)

// SeenStore remembers which announcements a member has already read. It is a
// best-effort hint; losing it only makes announcements show up as unseen again.
type SeenStore interface {
	SeenAnnouncements(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error)
	MarkSeen(ctx context.Context, memberID uuid.UUID, ids ...uuid.UUID) error
}
