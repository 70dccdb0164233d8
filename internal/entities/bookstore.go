package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:50" json:"first_name"`
	LastName  string    `gorm:"size:50" json:"last_name"`
	Bio       string    `gorm:"size:250" json:"bio,omitempty"`
	Books     []Book    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins first and last name the way listings display it.
func (a Author) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

type Book struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Title     string          `gorm:"size:50" json:"title"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2)" json:"price"`
	ISBN      string          `gorm:"column:isbn;uniqueIndex;size:50;not null" json:"isbn"`
	Summary   string          `gorm:"size:250" json:"summary,omitempty"`
	Image     string          `gorm:"size:50" json:"image,omitempty"`
	AuthorID  uint            `gorm:"index;not null" json:"author_id"`
	Author    *Author         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}
