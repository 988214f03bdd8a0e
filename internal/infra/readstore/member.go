package readstore

import (
	"context"
	"time"

	"academy-booking/internal/domain/academy"
	"academy-booking/internal/infra"
	"academy-booking/internal/pkg/pgconv"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	memberViewColumns = `id, name, phone, role, plan_id, plan_paid, plan_started_at, created_at`

	findMemberSQL  = `SELECT ` + memberViewColumns + ` FROM users WHERE id = $1`
	listMembersSQL = `SELECT ` + memberViewColumns + ` FROM users WHERE role = 'member' ORDER BY name, id`

	childrenOfSQL = `
		SELECT member_id, id, name, age, skill_level
		FROM children
		WHERE member_id = ANY($1)
		ORDER BY member_id, position`
)

type MemberReadStore struct {
	db infra.DBTX
}

func NewMemberReadStore(db infra.DBTX) *MemberReadStore {
	return &MemberReadStore{db: db}
}

func (r *MemberReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.MemberView, error) {
	view, err := scanMemberView(r.db.QueryRow(ctx, findMemberSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("member not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find member by ID", err)
	}
	if err := r.attachChildren(ctx, []*queries.MemberView{view}); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *MemberReadStore) List(ctx context.Context) ([]*queries.MemberView, error) {
	rows, err := r.db.Query(ctx, listMembersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list members", err)
	}
	defer rows.Close()

	result := []*queries.MemberView{}
	for rows.Next() {
		view, err := scanMemberView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan member", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate members", err)
	}
	rows.Close()

	if err := r.attachChildren(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MemberReadStore) attachChildren(ctx context.Context, views []*queries.MemberView) error {
	if len(views) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*queries.MemberView, len(views))
	ids := make([]uuid.UUID, len(views))
	for i, v := range views {
		v.Children = []queries.ChildView{}
		byID[v.ID] = v
		ids[i] = v.ID
	}

	rows, err := r.db.Query(ctx, childrenOfSQL, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to load children", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			memberID uuid.UUID
			c        queries.ChildView
			age      pgtype.Int4
		)
		if err := rows.Scan(&memberID, &c.ID, &c.Name, &age, &c.SkillLevel); err != nil {
			return infra.WrapRepoErr("failed to scan child", err)
		}
		c.Age = pgconv.IntPtrFromPgtype(age)
		if v, ok := byID[memberID]; ok {
			v.Children = append(v.Children, c)
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate children", err)
	}
	return nil
}

func scanMemberView(row pgx.Row) (*queries.MemberView, error) {
	var (
		v     queries.MemberView
		phone *string
	)
	err := row.Scan(&v.ID, &v.Name, &phone, &v.Role, &v.PlanID, &v.PlanPaid, &v.PlanStartedAt, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	if phone != nil {
		v.Phone = *phone
	}
	v.CreatedAt = v.CreatedAt.UTC()
	if v.PlanStartedAt != nil {
		t := v.PlanStartedAt.UTC()
		v.PlanStartedAt = &t
	}
	return &v, nil
}

// SettingsReadStore serves the single academy settings row.
type SettingsReadStore struct {
	db infra.DBTX
}

func NewSettingsReadStore(db infra.DBTX) *SettingsReadStore {
	return &SettingsReadStore{db: db}
}

func (r *SettingsReadStore) Get(ctx context.Context) (*queries.SettingsView, error) {
	var (
		v         queries.SettingsView
		updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, `SELECT name, custom_background, updated_at FROM academy_settings WHERE id = 1`).
		Scan(&v.Name, &v.CustomBackground, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return &queries.SettingsView{Name: academy.DefaultName}, nil
		}
		return nil, infra.WrapRepoErr("failed to load settings", err)
	}
	updatedAt = updatedAt.UTC()
	v.UpdatedAt = &updatedAt
	return &v, nil
}
