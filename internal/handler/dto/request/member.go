package request

import "academy-booking/internal/usecase/commands"

type AddChildRequest struct {
	Name       string `json:"name" binding:"required,max=80"`
	Age        *int   `json:"age"`
	SkillLevel string `json:"skillLevel" binding:"omitempty,max=40"`
}

func (r *AddChildRequest) ToInput() commands.AddChildInput {
	return commands.AddChildInput{Name: r.Name, Age: r.Age, SkillLevel: r.SkillLevel}
}

type SelectPlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

type SetPaymentRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}
