package http

import (
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/models"
)

func toBookReadOnly(b *entities.Book) models.BookReadOnlyDTO {
	dto := models.BookReadOnlyDTO{
		ID:       b.ID,
		Title:    b.Title,
		Image:    b.Image,
		Price:    b.Price,
		AuthorID: b.AuthorID,
	}
	if b.Author != nil {
		dto.AuthorName = b.Author.FullName()
	}
	return dto
}

func toBookDetails(b *entities.Book) models.BookDetailsDTO {
	return models.BookDetailsDTO{
		BookReadOnlyDTO: toBookReadOnly(b),
		ISBN:            b.ISBN,
		Summary:         b.Summary,
	}
}

func bookFromCreate(dto models.BookCreateDTO) *entities.Book {
	book := &entities.Book{}
	applyBookFields(book, dto)
	return book
}

// applyBookFields copies every mutable field onto an existing entity.
func applyBookFields(book *entities.Book, dto models.BookCreateDTO) {
	book.Title = dto.Title
	book.ISBN = dto.ISBN
	book.Summary = dto.Summary
	book.Image = dto.Image
	book.Price = dto.Price.Round(2)
	book.AuthorID = dto.AuthorID
}

func toAuthorReadOnly(a *entities.Author) models.AuthorReadOnlyDTO {
	return models.AuthorReadOnlyDTO{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Bio:       a.Bio,
	}
}

func toAuthorDetails(a *entities.Author) models.AuthorDetailsDTO {
	dto := models.AuthorDetailsDTO{
		AuthorReadOnlyDTO: toAuthorReadOnly(a),
		Books:             make([]models.BookReadOnlyDTO, 0, len(a.Books)),
	}
	for i := range a.Books {
		book := a.Books[i]
		book.Author = a
		dto.Books = append(dto.Books, toBookReadOnly(&book))
	}
	return dto
}

func applyAuthorFields(author *entities.Author, dto models.AuthorCreateDTO) {
	author.FirstName = dto.FirstName
	author.LastName = dto.LastName
	author.Bio = dto.Bio
}
