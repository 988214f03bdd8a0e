package user

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInvalidDisplayName = errors.New("invalid display name")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidAge         = errors.New("invalid child age")
)

const (
	MaxNameLength  = 80
	minPhoneDigits = 7
	maxPhoneDigits = 15
	MaxChildAge    = 99
)

type DisplayName struct {
	value string
}

func NewDisplayName(s string) (DisplayName, error) {
	trimmed := strings.Join(strings.Fields(s), " ")
	if trimmed == "" || utf8.RuneCountInString(trimmed) > MaxNameLength {
		return DisplayName{}, ErrInvalidDisplayName
	}
	return DisplayName{value: trimmed}, nil
}

func (n DisplayName) String() string { return n.value }

// Matches compares case-insensitively after whitespace normalisation.
func (n DisplayName) Matches(label string) bool {
	return strings.EqualFold(n.value, strings.Join(strings.Fields(label), " "))
}

// Phone keeps digits only, with an optional leading '+'.
type Phone struct {
	value string
}

func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	var b strings.Builder
	digits := 0
	for i, r := range s {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case unicode.IsDigit(r):
			b.WriteRune(r)
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return Phone{}, ErrInvalidPhone
		}
	}
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: b.String()}, nil
}

func (p Phone) String() string { return p.value }

func (p Phone) IsZero() bool { return p.value == "" }
