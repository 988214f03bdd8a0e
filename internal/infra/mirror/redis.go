// Package mirror keeps best-effort snapshots in Redis. Nothing here is
// authoritative: a miss or an error only means the caller reads the store.
package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"academy-booking/internal/usecase/queries"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	memberKeyPrefix = "mirror:member:"
	seenKeyPrefix   = "mirror:seen:"
)

func memberKey(id uuid.UUID) string { return memberKeyPrefix + id.String() }
func seenKey(id uuid.UUID) string   { return seenKeyPrefix + id.String() }

type Redis struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (m *Redis) Load(ctx context.Context, id uuid.UUID) (*queries.MemberView, bool, error) {
	raw, err := m.client.Get(ctx, memberKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var view queries.MemberView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, false, err
	}
	return &view, true, nil
}

func (m *Redis) Store(ctx context.Context, view *queries.MemberView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return m.client.Set(ctx, memberKey(view.ID), raw, m.ttl).Err()
}

func (m *Redis) Evict(ctx context.Context, id uuid.UUID) error {
	return m.client.Del(ctx, memberKey(id)).Err()
}

func (m *Redis) SeenAnnouncements(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error) {
	members, err := m.client.SMembers(ctx, seenKey(memberID)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, s := range members {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *Redis) MarkSeen(ctx context.Context, memberID uuid.UUID, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}
	key := seenKey(memberID)
	pipe := m.client.TxPipeline()
	pipe.SAdd(ctx, key, values...)
	pipe.Expire(ctx, key, m.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// EvictOnChange drops a member snapshot whenever that member changes.
func EvictOnChange(cache queries.MemberCache) func(shared.Event) {
	return func(ev shared.Event) {
		if ev.MemberID == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.Evict(ctx, *ev.MemberID); err != nil {
			slog.Warn("failed to evict member snapshot", "member_id", ev.MemberID.String(), "error", err.Error())
		}
	}
}
