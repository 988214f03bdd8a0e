//go:build unit

package mirror_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"academy-booking/internal/infra/mirror"
	"academy-booking/internal/usecase/shared"
	"academy-booking/tests/common/builder"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ttl = 10 * time.Minute

func TestRedis_MemberSnapshot(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	m := mirror.NewRedis(db, ttl)

	view := builder.NewUserBuilder().WithChildren("Noa Levi").BuildView()
	key := "mirror:member:" + view.ID.String()
	raw, err := json.Marshal(view)
	require.NoError(t, err)

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet(key).RedisNil()
		got, ok, err := m.Load(ctx, view.ID)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("store then hit", func(t *testing.T) {
		mock.ExpectSet(key, raw, ttl).SetVal("OK")
		require.NoError(t, m.Store(ctx, view))

		mock.ExpectGet(key).SetVal(string(raw))
		got, ok, err := m.Load(ctx, view.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, view.Name, got.Name)
		require.Len(t, got.Children, 1)
		assert.Equal(t, "Noa Levi", got.Children[0].Name)
	})

	t.Run("redis error is surfaced", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(errors.New("i/o timeout"))
		_, ok, err := m.Load(ctx, view.ID)
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("evict", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(1)
		require.NoError(t, m.Evict(ctx, view.ID))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_SeenAnnouncements(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	m := mirror.NewRedis(db, ttl)

	memberID := uuid.New()
	key := "mirror:seen:" + memberID.String()
	a, b := uuid.New(), uuid.New()

	mock.ExpectTxPipeline()
	mock.ExpectSAdd(key, a.String(), b.String()).SetVal(2)
	mock.ExpectExpire(key, ttl).SetVal(true)
	mock.ExpectTxPipelineExec()
	require.NoError(t, m.MarkSeen(ctx, memberID, a, b))

	// nothing to record means no round trip
	require.NoError(t, m.MarkSeen(ctx, memberID))

	mock.ExpectSMembers(key).SetVal([]string{a.String(), "garbage", b.String()})
	ids, err := m.SeenAnnouncements(ctx, memberID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvictOnChange(t *testing.T) {
	db, mock := redismock.NewClientMock()
	evict := mirror.EvictOnChange(mirror.NewRedis(db, ttl))

	memberID := uuid.New()
	mock.ExpectDel("mirror:member:" + memberID.String()).SetVal(1)
	evict(shared.Event{Kind: shared.KindMember, Action: shared.ActionUpdated, ID: memberID, MemberID: &memberID})

	// events without a member are ignored
	evict(shared.Event{Kind: shared.KindSession, Action: shared.ActionCreated, ID: uuid.New()})

	// a failing evict is only logged
	mock.ExpectDel("mirror:member:" + memberID.String()).SetErr(errors.New("connection refused"))
	evict(shared.Event{Kind: shared.KindMember, Action: shared.ActionUpdated, ID: memberID, MemberID: &memberID})

	assert.NoError(t, mock.ExpectationsWereMet())
}
