package response

import (
	"time"

	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SessionResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Audience  string    `json:"audience"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	Booked    int       `json:"booked"`
	SpotsLeft int       `json:"spotsLeft"`
	Full      bool      `json:"full"`
}

func FromSessionView(v *queries.SessionView) (*SessionResponse, error) {
	r, err := copyOne[queries.SessionView, SessionResponse](v)
	if err != nil {
		return nil, err
	}
	r.Full = r.SpotsLeft == 0
	return r, nil
}

func FromSessionViews(vs []*queries.SessionView) ([]*SessionResponse, error) {
	rs, err := copyAll[queries.SessionView, SessionResponse](vs)
	if err != nil {
		return nil, err
	}
	for _, r := range rs {
		r.Full = r.SpotsLeft == 0
	}
	return rs, nil
}
