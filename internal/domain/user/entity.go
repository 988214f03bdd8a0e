package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrChildNotFound       = errors.New("child not found")
	ErrDuplicateChild      = errors.New("child already registered")
	ErrNoPlanSelected      = errors.New("no plan selected")
	ErrPlayerNotRegistered = errors.New("player is not the member or one of their children")
)

type Child struct {
	ID         uuid.UUID
	Name       DisplayName
	Age        *int
	SkillLevel string
}

type Subscription struct {
	PlanID    string
	StartedAt time.Time
	Paid      bool
}

// Player is whoever actually attends: the member or one of their children.
type Player struct {
	Label   string
	ChildID *uuid.UUID
}

// User is a household account or the single administrator.
type User struct {
	id           uuid.UUID
	name         DisplayName
	phone        Phone
	role         Role
	children     []Child
	subscription *Subscription
	createdAt    time.Time
	updatedAt    time.Time
}

func NewMember(name DisplayName, phone Phone, now time.Time) *User {
	return &User{
		id:        uuid.New(),
		name:      name,
		phone:     phone,
		role:      RoleMember,
		createdAt: now,
		updatedAt: now,
	}
}

func NewAdmin(name DisplayName, now time.Time) *User {
	return &User{
		id:        uuid.New(),
		name:      name,
		role:      RoleAdmin,
		createdAt: now,
		updatedAt: now,
	}
}

func Reconstruct(
	id uuid.UUID,
	name DisplayName,
	phone Phone,
	role Role,
	children []Child,
	subscription *Subscription,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		name:         name,
		phone:        phone,
		role:         role,
		children:     children,
		subscription: subscription,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() DisplayName    { return u.name }
func (u *User) Phone() Phone         { return u.phone }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) Children() []Child {
	out := make([]Child, len(u.children))
	copy(out, u.children)
	return out
}

func (u *User) Subscription() *Subscription {
	if u.subscription == nil {
		return nil
	}
	s := *u.subscription
	return &s
}

func (u *User) AddChild(name DisplayName, age *int, skillLevel string, now time.Time) (Child, error) {
	if age != nil && (*age < 0 || *age > MaxChildAge) {
		return Child{}, ErrInvalidAge
	}
	for _, c := range u.children {
		if c.Name.Matches(name.String()) {
			return Child{}, ErrDuplicateChild
		}
	}
	child := Child{
		ID:         uuid.New(),
		Name:       name,
		Age:        age,
		SkillLevel: strings.TrimSpace(skillLevel),
	}
	u.children = append(u.children, child)
	u.updatedAt = now
	return child, nil
}

func (u *User) RemoveChild(childID uuid.UUID, now time.Time) error {
	for i, c := range u.children {
		if c.ID == childID {
			u.children = append(u.children[:i], u.children[i+1:]...)
			u.updatedAt = now
			return nil
		}
	}
	return ErrChildNotFound
}

// SelectPlan starts a new unpaid subscription period.
func (u *User) SelectPlan(plan Plan, now time.Time) {
	u.subscription = &Subscription{
		PlanID:    plan.ID,
		StartedAt: now,
		Paid:      false,
	}
	u.updatedAt = now
}

func (u *User) SetPlanPaid(paid bool, now time.Time) error {
	if u.subscription == nil {
		return ErrNoPlanSelected
	}
	u.subscription.Paid = paid
	u.updatedAt = now
	return nil
}

// ResolvePlayer maps a free-text label to the member or one of their children.
// The returned label uses the stored spelling so duplicate detection is stable.
func (u *User) ResolvePlayer(label string) (Player, error) {
	if u.name.Matches(label) {
		return Player{Label: u.name.String()}, nil
	}
	for _, c := range u.children {
		if c.Name.Matches(label) {
			id := c.ID
			return Player{Label: c.Name.String(), ChildID: &id}, nil
		}
	}
	return Player{}, ErrPlayerNotRegistered
}
