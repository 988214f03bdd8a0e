package repository

import (
	"context"

	"academy-booking/internal/domain/academy"
	"academy-booking/internal/infra"
	"academy-booking/internal/pkg/pgconv"
)

const (
	selectSettingsSQL = `SELECT name, custom_background, updated_at FROM academy_settings WHERE id = 1`

	upsertSettingsSQL = `
		INSERT INTO academy_settings (id, name, custom_background, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    custom_background = EXCLUDED.custom_background,
		    updated_at = EXCLUDED.updated_at`
)

type SettingsRepository struct {
	db infra.DBTX
}

func NewSettingsRepository(db infra.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (academy.Settings, error) {
	var s academy.Settings
	err := r.db.QueryRow(ctx, selectSettingsSQL).Scan(&s.Name, &s.CustomBackground, &s.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return academy.Defaults(), nil
		}
		return academy.Settings{}, infra.WrapRepoErr("failed to load settings", err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s academy.Settings) error {
	if _, err := r.db.Exec(ctx, upsertSettingsSQL, s.Name, s.CustomBackground, s.UpdatedAt); err != nil {
		return infra.WrapRepoErr("failed to save settings", err)
	}
	return nil
}
