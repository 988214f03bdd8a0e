package request

import (
	"time"

	"academy-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAnnouncementRequest struct {
	Title     string     `json:"title" binding:"required,max=120"`
	Body      string     `json:"body" binding:"required,max=4000"`
	Audience  string     `json:"audience" binding:"omitempty,oneof=all junior adult"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (r *CreateAnnouncementRequest) ToInput() commands.CreateAnnouncementInput {
	return commands.CreateAnnouncementInput{
		Title:     r.Title,
		Body:      r.Body,
		Audience:  r.Audience,
		ExpiresAt: r.ExpiresAt,
	}
}

type MarkSeenRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=100"`
}
