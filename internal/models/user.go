package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type LoginUserDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l LoginUserDTO) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Email, validation.Required, is.EmailFormat),
		validation.Field(&l.Password, validation.Required),
	)
}

// UserDTO is the registration payload.
type UserDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
}

func (u UserDTO) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, is.EmailFormat, validation.RuneLength(3, 256)),
		validation.Field(&u.FirstName, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&u.LastName, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&u.Password, validation.Required, validation.Length(8, 72)),
	)
}

type AuthResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
	Email  string `json:"email"`
}
