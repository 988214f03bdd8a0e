package readstore

import (
	"context"

	"academy-booking/internal/infra"
	"academy-booking/internal/pkg/pgconv"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingViewSelect = `
	SELECT b.id, b.session_id, b.member_id, u.name, b.player_label, b.child_id, b.status,
	       b.attended, b.session_title, b.session_starts_at, b.created_at, b.cancelled_at
	FROM bookings b
	JOIN users u ON u.id = b.member_id`

const (
	findBookingViewSQL = bookingViewSelect + ` WHERE b.id = $1`

	listBookingsByMemberSQL = bookingViewSelect + `
	WHERE b.member_id = $1 AND ($2 OR b.status = 'confirmed')
	ORDER BY b.session_starts_at, b.created_at`

	listBookingsBySessionSQL = bookingViewSelect + `
	WHERE b.session_id = $1
	ORDER BY b.status, b.created_at`
)

type BookingReadStore struct {
	db infra.DBTX
}

func NewBookingReadStore(db infra.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := scanBookingView(r.db.QueryRow(ctx, findBookingViewSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListByMember(ctx context.Context, memberID uuid.UUID, includeCancelled bool) ([]*queries.BookingView, error) {
	return r.list(ctx, "failed to list member bookings", listBookingsByMemberSQL, memberID, includeCancelled)
}

func (r *BookingReadStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*queries.BookingView, error) {
	return r.list(ctx, "failed to list session bookings", listBookingsBySessionSQL, sessionID)
}

func (r *BookingReadStore) list(ctx context.Context, msg, query string, args ...any) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	result := []*queries.BookingView{}
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return result, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(&v.ID, &v.SessionID, &v.MemberID, &v.MemberName, &v.Player, &v.ChildID,
		&v.Status, &v.Attended, &v.SessionTitle, &v.SessionStartsAt, &v.CreatedAt, &v.CancelledAt)
	if err != nil {
		return nil, err
	}
	v.SessionStartsAt, v.CreatedAt = v.SessionStartsAt.UTC(), v.CreatedAt.UTC()
	if v.CancelledAt != nil {
		t := v.CancelledAt.UTC()
		v.CancelledAt = &t
	}
	return &v, nil
}
