package session

import "errors"

var ErrInvalidAudience = errors.New("invalid audience")

// Audience is the age group a session is run for.
type Audience string

const (
	AudienceJunior Audience = "junior"
	AudienceAdult  Audience = "adult"
)

func NewAudience(s string) (Audience, error) {
	switch Audience(s) {
	case AudienceJunior, AudienceAdult:
		return Audience(s), nil
	default:
		return "", ErrInvalidAudience
	}
}

func (a Audience) String() string { return string(a) }
