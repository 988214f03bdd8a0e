package request

import (
	"time"

	"academy-booking/internal/usecase/commands"
)

type CreateSessionRequest struct {
	Title    string    `json:"title" binding:"required,max=120"`
	Audience string    `json:"audience" binding:"required,oneof=junior adult"`
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required,gtfield=StartsAt"`
	Location string    `json:"location" binding:"required,max=200"`
	// zero means the academy default
	Capacity int `json:"capacity" binding:"omitempty,min=1,max=100"`
}

func (r *CreateSessionRequest) ToInput() commands.CreateSessionInput {
	return commands.CreateSessionInput{
		Title:    r.Title,
		Audience: r.Audience,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		Location: r.Location,
		Capacity: r.Capacity,
	}
}

type UpdateSessionRequest struct {
	Title    *string    `json:"title" binding:"omitempty,max=120"`
	Audience *string    `json:"audience" binding:"omitempty,oneof=junior adult"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
	Location *string    `json:"location" binding:"omitempty,max=200"`
}

func (r *UpdateSessionRequest) ToInput() commands.UpdateSessionInput {
	return commands.UpdateSessionInput{
		Title:    r.Title,
		Audience: r.Audience,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		Location: r.Location,
	}
}

type ListSessionsQuery struct {
	Audience *string    `form:"audience" binding:"omitempty,oneof=junior adult"`
	From     *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}
