package academy

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidName       = errors.New("invalid academy name")
	ErrInvalidBackground = errors.New("invalid background url")
)

const (
	DefaultName   = "Academy"
	MaxNameLength = 80
)

// Settings is the single academy-wide configuration record.
type Settings struct {
	Name             string
	CustomBackground string
	UpdatedAt        time.Time
}

func Defaults() Settings {
	return Settings{Name: DefaultName}
}

func NewSettings(name, background string, now time.Time) (Settings, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return Settings{}, ErrInvalidName
	}
	background = strings.TrimSpace(background)
	if background != "" {
		u, err := url.Parse(background)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return Settings{}, ErrInvalidBackground
		}
	}
	return Settings{Name: name, CustomBackground: background, UpdatedAt: now}, nil
}
