package response

import (
	"time"

	"academy-booking/internal/domain/announcement"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type AnnouncementResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Audience  string     `json:"audience"`
	AuthorID  uuid.UUID  `json:"authorId"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func FromAnnouncement(a *announcement.Announcement) *AnnouncementResponse {
	return &AnnouncementResponse{
		ID:        a.ID(),
		Title:     a.Title(),
		Body:      a.Body(),
		Audience:  string(a.Audience()),
		AuthorID:  a.AuthorID(),
		CreatedAt: a.CreatedAt(),
		ExpiresAt: a.ExpiresAt(),
	}
}

func FromAnnouncementViews(vs []*queries.AnnouncementView) ([]*AnnouncementResponse, error) {
	return copyAll[queries.AnnouncementView, AnnouncementResponse](vs)
}
