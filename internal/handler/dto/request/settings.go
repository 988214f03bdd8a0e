package request

import "academy-booking/internal/usecase/commands"

type UpdateSettingsRequest struct {
	Name             string `json:"academyName" binding:"required,max=80"`
	CustomBackground string `json:"customBackground" binding:"omitempty,url,max=500"`
}

func (r *UpdateSettingsRequest) ToInput() commands.UpdateSettingsInput {
	return commands.UpdateSettingsInput{Name: r.Name, CustomBackground: r.CustomBackground}
}
