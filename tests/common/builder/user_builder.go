//go:build unit || e2e

package builder

import (
	"time"

	"academy-booking/internal/domain/user"
	reqdto "academy-booking/internal/handler/dto/request"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID       uuid.UUID
	Name     string
	Phone    string
	Role     string
	Children []string
	PlanID   string
	PlanPaid bool
	Now      time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:    uuid.New(),
		Name:  "Dana Levi",
		Phone: "+972 50-123-4567",
		Role:  "member",
		Now:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	name, err := user.NewDisplayName(u.Name)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	var phone user.Phone
	if u.Phone != "" {
		if phone, err = user.NewPhone(u.Phone); err != nil {
			return nil, err
		}
	}

	children := make([]user.Child, 0, len(u.Children))
	for _, c := range u.Children {
		childName, err := user.NewDisplayName(c)
		if err != nil {
			return nil, err
		}
		children = append(children, user.Child{ID: uuid.New(), Name: childName})
	}

	var sub *user.Subscription
	if u.PlanID != "" {
		sub = &user.Subscription{PlanID: u.PlanID, StartedAt: u.Now, Paid: u.PlanPaid}
	}

	return user.Reconstruct(u.ID, name, phone, role, children, sub, u.Now, u.Now), nil
}

func (u *UserBuilder) BuildView() *queries.MemberView {
	children := make([]queries.ChildView, 0, len(u.Children))
	for _, c := range u.Children {
		children = append(children, queries.ChildView{ID: uuid.New(), Name: c})
	}
	view := &queries.MemberView{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		Children:  children,
		PlanPaid:  u.PlanPaid,
		CreatedAt: u.Now,
	}
	if u.PlanID != "" {
		planID := u.PlanID
		startedAt := u.Now
		view.PlanID = &planID
		view.PlanStartedAt = &startedAt
	}
	return view
}

func (u *UserBuilder) BuildLoginDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{Name: u.Name, Phone: u.Phone}
}

// Fluent builder methods
func (u *UserBuilder) WithName(name string) *UserBuilder {
	u.Name = name
	return u
}

func (u *UserBuilder) WithPhone(phone string) *UserBuilder {
	u.Phone = phone
	return u
}

func (u *UserBuilder) WithChildren(names ...string) *UserBuilder {
	u.Children = append(u.Children, names...)
	return u
}

func (u *UserBuilder) WithPlan(planID string, paid bool) *UserBuilder {
	u.PlanID = planID
	u.PlanPaid = paid
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = "admin"
	u.Phone = ""
	return u
}
