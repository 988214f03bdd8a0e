package repository

import (
	"context"

	"academy-booking/internal/domain/session"
	"academy-booking/internal/infra"
	"academy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	insertSessionSQL = `
		INSERT INTO sessions (id, title, audience, starts_at, ends_at, location, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	updateSessionSQL = `
		UPDATE sessions
		SET title = $2, audience = $3, starts_at = $4, ends_at = $5, location = $6, updated_at = $7
		WHERE id = $1`

	deleteSessionSQL = `DELETE FROM sessions WHERE id = $1`

	selectSessionSQL = `
		SELECT id, title, audience, starts_at, ends_at, location, capacity, created_at, updated_at
		FROM sessions
		WHERE id = $1`
)

type SessionRepository struct {
	db infra.DBTX
}

func NewSessionRepository(db infra.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	_, err := r.db.Exec(ctx, insertSessionSQL,
		s.ID(), s.Title(), string(s.Audience()), s.StartsAt(), s.EndsAt(),
		s.Location(), s.Capacity(), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create session", err)
	}
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, s *session.Session) error {
	tag, err := r.db.Exec(ctx, updateSessionSQL,
		s.ID(), s.Title(), string(s.Audience()), s.StartsAt(), s.EndsAt(), s.Location(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("session not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteSessionSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("session not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	return r.find(ctx, selectSessionSQL, id)
}

// LockByID takes a row lock held until the surrounding transaction ends.
func (r *SessionRepository) LockByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	return r.find(ctx, selectSessionSQL+" FOR UPDATE", id)
}

func (r *SessionRepository) find(ctx context.Context, query string, id uuid.UUID) (*session.Session, error) {
	s, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find session by ID", err)
	}
	return s, nil
}

func scanSession(row pgx.Row) (*session.Session, error) {
	var (
		rec      sessionRecord
		audience string
	)
	err := row.Scan(&rec.ID, &rec.Title, &audience, &rec.StartsAt, &rec.EndsAt,
		&rec.Location, &rec.Capacity, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Audience = session.Audience(audience)
	return rec.toDomain(), nil
}
