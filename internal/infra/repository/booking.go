package repository

import (
	"context"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/infra"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ConfirmedPlayerConstraint backs the one-confirmed-booking-per-player rule.
const ConfirmedPlayerConstraint = "bookings_confirmed_player_key"

const (
	insertBookingSQL = `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	updateBookingSQL = `
		UPDATE bookings
		SET status = $2, attended = $3, updated_at = $4, cancelled_at = $5
		WHERE id = $1`

	selectBookingSQL = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	selectConfirmedBySessionSQL = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE session_id = $1 AND status = 'confirmed'
		ORDER BY created_at, id`
)

type BookingRepository struct {
	db infra.DBTX
}

func NewBookingRepository(db infra.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(), b.SessionID(), b.MemberID(), b.Player().String(), pgconv.UUIDPtrToPgtype(b.ChildID()),
		b.Status().String(), b.Attended(), b.SessionTitle(), b.SessionStartsAt(),
		b.CreatedAt(), b.UpdatedAt(), pgconv.TimePtrToPgtype(b.CancelledAt()),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err, ConfirmedPlayerConstraint) {
			return errs.Mark(infra.WrapRepoErr("player already booked", err, infra.KindDuplicateKey), booking.ErrDuplicatePlayer)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingSQL,
		b.ID(), b.Status().String(), b.Attended(), b.UpdatedAt(), pgconv.TimePtrToPgtype(b.CancelledAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.find(ctx, selectBookingSQL, id)
}

func (r *BookingRepository) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.find(ctx, selectBookingSQL+" FOR UPDATE", id)
}

func (r *BookingRepository) ListConfirmedBySession(ctx context.Context, sessionID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, selectConfirmedBySessionSQL, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list confirmed bookings", err)
	}
	out, err := collectBookings(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan confirmed bookings", err)
	}
	return out, nil
}

func (r *BookingRepository) find(ctx context.Context, query string, id uuid.UUID) (*booking.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return b, nil
}

func collectBookings(rows pgx.Rows) ([]*booking.Booking, error) {
	defer rows.Close()
	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
