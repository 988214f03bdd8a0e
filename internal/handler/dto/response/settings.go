package response

import (
	"time"

	"academy-booking/internal/domain/academy"
	"academy-booking/internal/usecase/queries"
)

type SettingsResponse struct {
	Name             string     `json:"academyName"`
	CustomBackground string     `json:"customBackground,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

func FromSettingsView(v *queries.SettingsView) *SettingsResponse {
	r := SettingsResponse(*v)
	return &r
}

func FromSettings(s academy.Settings) *SettingsResponse {
	updated := s.UpdatedAt
	return &SettingsResponse{Name: s.Name, CustomBackground: s.CustomBackground, UpdatedAt: &updated}
}
