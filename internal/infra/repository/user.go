package repository

import (
	"context"
	"time"

	"academy-booking/internal/domain/user"
	"academy-booking/internal/infra"
	"academy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertUserSQL = `
		INSERT INTO users (id, name, phone, role, plan_id, plan_started_at, plan_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	updateUserSQL = `
		UPDATE users
		SET name = $2, plan_id = $3, plan_started_at = $4, plan_paid = $5, updated_at = $6
		WHERE id = $1`

	userColumns = `id, name, phone, role, plan_id, plan_started_at, plan_paid, created_at, updated_at`

	selectUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	selectUserByPhoneSQL = `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	selectAdminSQL       = `SELECT ` + userColumns + ` FROM users WHERE role = 'admin'`

	deleteChildrenSQL = `DELETE FROM children WHERE member_id = $1`
	insertChildSQL    = `
		INSERT INTO children (id, member_id, name, age, skill_level, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	selectChildrenSQL = `
		SELECT id, name, age, skill_level
		FROM children
		WHERE member_id = $1
		ORDER BY position`
)

const (
	phoneConstraint = "users_phone_key"
	adminConstraint = "users_single_admin_key"
)

type UserRepository struct {
	db infra.DBTX
}

func NewUserRepository(db infra.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	planID, startedAt, paid := subscriptionColumns(u.Subscription())
	_, err := r.db.Exec(ctx, insertUserSQL,
		u.ID(), u.Name().String(), phoneColumn(u.Phone()), u.Role().String(),
		planID, startedAt, paid, u.CreatedAt(), u.UpdatedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err, phoneConstraint) || pgconv.IsUniqueViolation(err, adminConstraint) {
			return infra.WrapRepoErr("user already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return r.replaceChildren(ctx, u)
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	planID, startedAt, paid := subscriptionColumns(u.Subscription())
	tag, err := r.db.Exec(ctx, updateUserSQL,
		u.ID(), u.Name().String(), planID, startedAt, paid, u.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return r.replaceChildren(ctx, u)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.find(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) LockByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.find(ctx, selectUserByIDSQL+" FOR UPDATE", id)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone user.Phone) (*user.User, error) {
	return r.find(ctx, selectUserByPhoneSQL, phone.String())
}

func (r *UserRepository) FindAdmin(ctx context.Context) (*user.User, error) {
	return r.find(ctx, selectAdminSQL)
}

func (r *UserRepository) find(ctx context.Context, query string, args ...any) (*user.User, error) {
	rec, err := scanUserRecord(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	children, err := r.children(ctx, rec.id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load children", err)
	}
	return rec.toDomain(children)
}

// replaceChildren rewrites the child rows; households are small.
func (r *UserRepository) replaceChildren(ctx context.Context, u *user.User) error {
	if _, err := r.db.Exec(ctx, deleteChildrenSQL, u.ID()); err != nil {
		return infra.WrapRepoErr("failed to clear children", err)
	}
	for i, c := range u.Children() {
		_, err := r.db.Exec(ctx, insertChildSQL,
			c.ID, u.ID(), c.Name.String(), pgconv.IntPtrToPgtype(c.Age), c.SkillLevel, i)
		if err != nil {
			return infra.WrapRepoErr("failed to insert child", err)
		}
	}
	return nil
}

func (r *UserRepository) children(ctx context.Context, memberID uuid.UUID) ([]user.Child, error) {
	rows, err := r.db.Query(ctx, selectChildrenSQL, memberID)
	if err != nil {
		return nil, err
	}
	return ScanChildren(rows)
}

// ScanChildren reads (id, name, age, skill_level) rows.
func ScanChildren(rows pgx.Rows) ([]user.Child, error) {
	defer rows.Close()
	var out []user.Child
	for rows.Next() {
		var (
			id    uuid.UUID
			name  string
			age   pgtype.Int4
			skill string
		)
		if err := rows.Scan(&id, &name, &age, &skill); err != nil {
			return nil, err
		}
		dn, err := user.NewDisplayName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, user.Child{ID: id, Name: dn, Age: pgconv.IntPtrFromPgtype(age), SkillLevel: skill})
	}
	return out, rows.Err()
}

type userRecord struct {
	id            uuid.UUID
	name          string
	phone         pgtype.Text
	role          string
	planID        pgtype.Text
	planStartedAt pgtype.Timestamptz
	planPaid      bool
	createdAt     time.Time
	updatedAt     time.Time
}

func scanUserRecord(row pgx.Row) (userRecord, error) {
	var rec userRecord
	err := row.Scan(&rec.id, &rec.name, &rec.phone, &rec.role, &rec.planID,
		&rec.planStartedAt, &rec.planPaid, &rec.createdAt, &rec.updatedAt)
	return rec, err
}

func (rec userRecord) toDomain(children []user.Child) (*user.User, error) {
	name, err := user.NewDisplayName(rec.name)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(rec.role)
	if err != nil {
		return nil, err
	}
	var phone user.Phone
	if raw := pgconv.StringPtrFromPgtype(rec.phone); raw != nil {
		if phone, err = user.NewPhone(*raw); err != nil {
			return nil, err
		}
	}
	var sub *user.Subscription
	if planID := pgconv.StringPtrFromPgtype(rec.planID); planID != nil {
		sub = &user.Subscription{PlanID: *planID, Paid: rec.planPaid}
		if started := pgconv.TimePtrFromPgtype(rec.planStartedAt); started != nil {
			sub.StartedAt = started.UTC()
		}
	}
	return user.Reconstruct(rec.id, name, phone, role, children, sub, rec.createdAt.UTC(), rec.updatedAt.UTC()), nil
}

func subscriptionColumns(s *user.Subscription) (pgtype.Text, pgtype.Timestamptz, bool) {
	if s == nil {
		return pgconv.StringPtrToPgtype(nil), pgconv.TimePtrToPgtype(nil), false
	}
	id, started := s.PlanID, s.StartedAt
	return pgconv.StringPtrToPgtype(&id), pgconv.TimePtrToPgtype(&started), s.Paid
}

func phoneColumn(p user.Phone) pgtype.Text {
	if p.IsZero() {
		return pgconv.StringPtrToPgtype(nil)
	}
	s := p.String()
	return pgconv.StringPtrToPgtype(&s)
}
