package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// BookReadOnlyDTO is the list projection of a book.
type BookReadOnlyDTO struct {
	ID         uint            `json:"id"`
	Title      string          `json:"title"`
	Image      string          `json:"image"`
	Price      decimal.Decimal `json:"price"`
	AuthorID   uint            `json:"authorId"`
	AuthorName string          `json:"authorName"`
}

// BookDetailsDTO adds the fields only shown for a single book.
type BookDetailsDTO struct {
	BookReadOnlyDTO
	ISBN    string `json:"isbn"`
	Summary string `json:"summary"`
}

type BookCreateDTO struct {
	Title    string          `json:"title"`
	ISBN     string          `json:"isbn"`
	Summary  string          `json:"summary"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	AuthorID uint            `json:"authorId"`
}

func (b BookCreateDTO) Validate() error {
	return validation.ValidateStruct(&b, bookRules(&b)...)
}

type BookUpdateDTO struct {
	ID uint `json:"id"`
	BookCreateDTO
}

func (b BookUpdateDTO) Validate() error {
	return validation.ValidateStruct(&b.BookCreateDTO, bookRules(&b.BookCreateDTO)...)
}

func bookRules(b *BookCreateDTO) []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&b.Title, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&b.ISBN, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&b.Summary, validation.RuneLength(0, 250)),
		validation.Field(&b.Image, validation.RuneLength(0, 50)),
		validation.Field(&b.Price, validation.By(validPrice)),
		validation.Field(&b.AuthorID, validation.Required.Error("author is required")),
	}
}
