package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AuthorReadOnlyDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
}

// AuthorDetailsDTO is an author together with the books they wrote.
type AuthorDetailsDTO struct {
	AuthorReadOnlyDTO
	Books []BookReadOnlyDTO `json:"books"`
}

type AuthorCreateDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
}

func (a AuthorCreateDTO) Validate() error {
	return validation.ValidateStruct(&a, authorRules(&a)...)
}

type AuthorUpdateDTO struct {
	ID uint `json:"id"`
	AuthorCreateDTO
}

func (a AuthorUpdateDTO) Validate() error {
	return validation.ValidateStruct(&a.AuthorCreateDTO, authorRules(&a.AuthorCreateDTO)...)
}

func authorRules(a *AuthorCreateDTO) []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&a.FirstName, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&a.LastName, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&a.Bio, validation.RuneLength(0, 250)),
	}
}
