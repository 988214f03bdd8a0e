package response

import (
	"academy-booking/internal/domain/user"
	"academy-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type AuthorizedUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string         `json:"accessToken"`
	User        AuthorizedUser `json:"user"`
	Created     bool           `json:"created"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: r.AccessToken,
		User:        fromUser(r.User),
		Created:     r.Created,
	}
}

func fromUser(u *user.User) AuthorizedUser {
	return AuthorizedUser{
		ID:    u.ID(),
		Name:  u.Name().String(),
		Phone: u.Phone().String(),
		Role:  u.Role().String(),
	}
}
