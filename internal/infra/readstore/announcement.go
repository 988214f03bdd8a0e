package readstore

import (
	"context"
	"time"

	"academy-booking/internal/infra"
	"academy-booking/internal/usecase/queries"
)

const listActiveAnnouncementsSQL = `
	SELECT id, title, body, audience, author_id, created_at, expires_at
	FROM announcements
	WHERE expires_at IS NULL OR expires_at > $1
	ORDER BY created_at DESC, id`

type AnnouncementReadStore struct {
	db infra.DBTX
}

func NewAnnouncementReadStore(db infra.DBTX) *AnnouncementReadStore {
	return &AnnouncementReadStore{db: db}
}

func (r *AnnouncementReadStore) ListActive(ctx context.Context, now time.Time) ([]*queries.AnnouncementView, error) {
	rows, err := r.db.Query(ctx, listActiveAnnouncementsSQL, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list announcements", err)
	}
	defer rows.Close()

	result := []*queries.AnnouncementView{}
	for rows.Next() {
		var v queries.AnnouncementView
		if err := rows.Scan(&v.ID, &v.Title, &v.Body, &v.Audience, &v.AuthorID, &v.CreatedAt, &v.ExpiresAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan announcement", err)
		}
		v.CreatedAt = v.CreatedAt.UTC()
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate announcements", err)
	}
	return result, nil
}
