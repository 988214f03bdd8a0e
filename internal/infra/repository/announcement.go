package repository

import (
	"context"

	"academy-booking/internal/domain/announcement"
	"academy-booking/internal/infra"
)

const insertAnnouncementSQL = `
	INSERT INTO announcements (id, title, body, audience, author_id, created_at, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

type AnnouncementRepository struct {
	db infra.DBTX
}

func NewAnnouncementRepository(db infra.DBTX) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *announcement.Announcement) error {
	_, err := r.db.Exec(ctx, insertAnnouncementSQL,
		a.ID(), a.Title(), a.Body(), string(a.Audience()), a.AuthorID(), a.CreatedAt(), a.ExpiresAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create announcement", err)
	}
	return nil
}
