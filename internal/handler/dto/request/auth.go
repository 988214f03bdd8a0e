package request

import "academy-booking/internal/usecase/commands"

type LoginRequest struct {
	Name  string `json:"name" binding:"required,max=80"`
	Phone string `json:"phone" binding:"required,min=6,max=32"`
}

func (r *LoginRequest) ToInput() commands.MemberLoginInput {
	return commands.MemberLoginInput{Name: r.Name, Phone: r.Phone}
}

type AdminLoginRequest struct {
	Pin string `json:"pin" binding:"required,min=4,max=12"`
}
