//go:build unit

package repository

import (
	"context"
	"strings"
	"testing"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/infra"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"
	"academy-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	rows, _ := mockArgs.Get(0).(pgx.Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

var _ infra.DBTX = (*MockDBTX)(nil)

func TestBookingRepository_Create(t *testing.T) {
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name      string
		execErr   error
		wantKind  infra.RepositoryErrorKind
		wantMarks []error
	}{
		{name: "success"},
		{
			name:      "confirmed player constraint",
			execErr:   &pgconn.PgError{Code: "23505", ConstraintName: ConfirmedPlayerConstraint},
			wantKind:  infra.KindDuplicateKey,
			wantMarks: []error{booking.ErrDuplicatePlayer, shared.ErrDuplicate},
		},
		{
			name:     "other unique constraint",
			execErr:  &pgconn.PgError{Code: "23505", ConstraintName: "bookings_pkey"},
			wantKind: infra.KindDBFailure,
		},
		{
			name:     "database error",
			execErr:  assert.AnError,
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, insertBookingSQL, mock.Anything).
				Return(pgconn.NewCommandTag("INSERT 0 1"), tt.execErr)

			err := NewBookingRepository(db).Create(context.Background(), b)

			db.AssertExpectations(t)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tt.wantKind))
			for _, mark := range tt.wantMarks {
				assert.True(t, errs.Is(err, mark), "expected mark %v", mark)
			}
		})
	}
}

func TestBookingRepository_Update(t *testing.T) {
	b, err := builder.NewBookingBuilder().Cancelled().BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name     string
		tag      string
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", tag: "UPDATE 1"},
		{name: "row gone", tag: "UPDATE 0", wantKind: infra.KindNotFound},
		{name: "database error", tag: "", execErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, updateBookingSQL, mock.Anything).
				Return(pgconn.NewCommandTag(tt.tag), tt.execErr)

			err := NewBookingRepository(db).Update(context.Background(), b)

			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, infra.IsKind(err, tt.wantKind))
			if tt.wantKind == infra.KindNotFound {
				assert.True(t, errs.Is(err, shared.ErrNotFound))
			}
		})
	}
}

func TestBookingRepository_LockByID(t *testing.T) {
	isLocking := mock.MatchedBy(func(q string) bool {
		return strings.HasSuffix(q, "FOR UPDATE")
	})

	t.Run("missing row is not found", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, isLocking, mock.Anything).Return(errRow{err: pgx.ErrNoRows})

		_, err := NewBookingRepository(db).LockByID(context.Background(), uuid.New())

		db.AssertExpectations(t)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.True(t, errs.Is(err, shared.ErrNotFound))
	})

	t.Run("scan failure", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, isLocking, mock.Anything).Return(errRow{err: assert.AnError})

		_, err := NewBookingRepository(db).LockByID(context.Background(), uuid.New())

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.False(t, errs.Is(err, shared.ErrNotFound))
	})
}

func TestBookingRepository_ListConfirmedBySession(t *testing.T) {
	db := new(MockDBTX)
	db.On("Query", mock.Anything, selectConfirmedBySessionSQL, mock.Anything).Return(nil, assert.AnError)

	_, err := NewBookingRepository(db).ListConfirmedBySession(context.Background(), uuid.New())

	db.AssertExpectations(t)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}
