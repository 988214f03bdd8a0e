package response

import (
	"time"

	"academy-booking/internal/domain/user"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ChildResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Age        *int      `json:"age,omitempty"`
	SkillLevel string    `json:"skillLevel,omitempty"`
}

type MemberResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Role          string          `json:"role"`
	Children      []ChildResponse `json:"children"`
	PlanID        *string         `json:"planId,omitempty"`
	PlanPaid      bool            `json:"planPaid"`
	PlanStartedAt *time.Time      `json:"planStartedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type SubscriptionResponse struct {
	PlanID    string    `json:"planId"`
	StartedAt time.Time `json:"startedAt"`
	Paid      bool      `json:"paid"`
}

type PlanResponse struct {
	ID       string `json:"id"`
	Sessions int    `json:"sessions"`
	Price    int    `json:"price"`
}

func FromMemberView(v *queries.MemberView) (*MemberResponse, error) {
	r, err := copyOne[queries.MemberView, MemberResponse](v)
	if err != nil {
		return nil, err
	}
	if r.Children == nil {
		r.Children = []ChildResponse{}
	}
	return r, nil
}

func FromMemberViews(vs []*queries.MemberView) ([]*MemberResponse, error) {
	rs, err := copyAll[queries.MemberView, MemberResponse](vs)
	if err != nil {
		return nil, err
	}
	for _, r := range rs {
		if r.Children == nil {
			r.Children = []ChildResponse{}
		}
	}
	return rs, nil
}

func FromChild(c *user.Child) *ChildResponse {
	return &ChildResponse{ID: c.ID, Name: c.Name.String(), Age: c.Age, SkillLevel: c.SkillLevel}
}

func FromSubscription(s *user.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &SubscriptionResponse{PlanID: s.PlanID, StartedAt: s.StartedAt, Paid: s.Paid}
}

func FromPlans(ps []queries.PlanView) []PlanResponse {
	out := make([]PlanResponse, len(ps))
	for i, p := range ps {
		out[i] = PlanResponse(p)
	}
	return out
}
