package booking

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidStatus = errors.New("invalid booking status")
	ErrInvalidPlayer = errors.New("invalid player label")
)

const MaxPlayerLabelLength = 80

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusConfirmed, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// PlayerLabel names the person occupying a roster spot.
type PlayerLabel struct {
	value string
}

func NewPlayerLabel(s string) (PlayerLabel, error) {
	normalized := strings.Join(strings.Fields(s), " ")
	if normalized == "" || utf8.RuneCountInString(normalized) > MaxPlayerLabelLength {
		return PlayerLabel{}, ErrInvalidPlayer
	}
	return PlayerLabel{value: normalized}, nil
}

func (p PlayerLabel) String() string { return p.value }
