package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/models"
)

const entityBook = "book"

// BooksController serves /api/Books.
type BooksController struct {
	books    BookStore
	recorder MutationRecorder
}

// NewBooksController creates a books controller. recorder may be nil.
func NewBooksController(store BookStore, recorder MutationRecorder) *BooksController {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &BooksController{books: store, recorder: recorder}
}

// GetBooks lists every book.
// GET /api/Books
func (bc *BooksController) GetBooks(c *gin.Context) {
	list, err := bc.books.ListBooks(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "GetBooks")
		return
	}

	result := make([]models.BookReadOnlyDTO, 0, len(list))
	for i := range list {
		result = append(result, toBookReadOnly(&list[i]))
	}
	c.JSON(http.StatusOK, result)
}

// GetBook returns one book with its details.
// GET /api/Books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.books.GetBookByID(c.Request.Context(), id)
	if errors.Is(err, books.ErrBookNotFound) {
		log.Warn().Uint("id", id).Msg("Book record not found in GetBook")
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "GetBook")
		return
	}

	c.JSON(http.StatusOK, toBookDetails(book))
}

// PutBook replaces the mutable fields of a book.
// PUT /api/Books/:id
func (bc *BooksController) PutBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.BookUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("id", id).Msg("Malformed book update payload")
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.ID != id {
		log.Warn().Uint("id", id).Uint("payload_id", req.ID).Msg("Update ID invalid in PutBook")
		respondBadRequest(c, "id in path does not match id in body")
		return
	}
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Uint("id", id).Msg("Book update failed validation")
		respondValidation(c, err)
		return
	}

	ctx := c.Request.Context()
	book, err := bc.books.GetBookByID(ctx, id)
	if errors.Is(err, books.ErrBookNotFound) {
		log.Warn().Uint("id", id).Msg("Book record not found in PutBook")
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "PutBook")
		return
	}

	applyBookFields(book, req.BookCreateDTO)

	err = bc.books.UpdateBook(ctx, book)
	switch {
	case err == nil:
	case errors.Is(err, books.ErrConcurrencyConflict):
		exists, existsErr := bc.books.BookExists(ctx, id)
		if existsErr == nil && !exists {
			log.Warn().Uint("id", id).Msg("Book removed while updating in PutBook")
			respondNotFound(c, "book")
			return
		}
		bc.record(c, entities.AuditEventUpdate, id, book.Title, err)
		respondInternalError(c, err, "PutBook")
		return
	case errors.Is(err, books.ErrAuthorNotFound):
		log.Warn().Uint("author_id", book.AuthorID).Msg("Unknown author in PutBook")
		respondBadRequest(c, "author does not exist")
		return
	case errors.Is(err, books.ErrDuplicateISBN):
		log.Warn().Str("isbn", book.ISBN).Msg("Duplicate ISBN in PutBook")
		respondConflict(c, err.Error())
		return
	default:
		bc.record(c, entities.AuditEventUpdate, id, book.Title, err)
		respondInternalError(c, err, "PutBook")
		return
	}

	bc.record(c, entities.AuditEventUpdate, id, book.Title, nil)
	c.Status(http.StatusNoContent)
}

// PostBook creates a book.
// POST /api/Books
func (bc *BooksController) PostBook(c *gin.Context) {
	var req models.BookCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Malformed book create payload")
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("Book create failed validation")
		respondValidation(c, err)
		return
	}

	book := bookFromCreate(req)
	err := bc.books.CreateBook(c.Request.Context(), book)
	switch {
	case errors.Is(err, books.ErrAuthorNotFound):
		log.Warn().Uint("author_id", req.AuthorID).Msg("Unknown author in PostBook")
		respondBadRequest(c, "author does not exist")
		return
	case errors.Is(err, books.ErrDuplicateISBN):
		log.Warn().Str("isbn", req.ISBN).Msg("Duplicate ISBN in PostBook")
		respondConflict(c, err.Error())
		return
	case err != nil:
		bc.record(c, entities.AuditEventCreate, 0, req.Title, err)
		respondInternalError(c, err, "PostBook")
		return
	}

	// Reload for the author name shown in the projection.
	if created, err := bc.books.GetBookByID(c.Request.Context(), book.ID); err == nil {
		book = created
	}

	bc.record(c, entities.AuditEventCreate, book.ID, book.Title, nil)
	c.Header("Location", "/api/Books/"+strconv.FormatUint(uint64(book.ID), 10))
	c.JSON(http.StatusCreated, toBookReadOnly(book))
}

// DeleteBook removes a book.
// DELETE /api/Books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := bc.books.GetBookByID(ctx, id)
	if errors.Is(err, books.ErrBookNotFound) {
		log.Warn().Uint("id", id).Msg("Book record not found in DeleteBook")
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "DeleteBook")
		return
	}

	err = bc.books.DeleteBook(ctx, id)
	if errors.Is(err, books.ErrBookNotFound) {
		log.Warn().Uint("id", id).Msg("Book removed concurrently in DeleteBook")
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		bc.record(c, entities.AuditEventDelete, id, book.Title, err)
		respondInternalError(c, err, "DeleteBook")
		return
	}

	bc.record(c, entities.AuditEventDelete, id, book.Title, nil)
	c.Status(http.StatusNoContent)
}

func (bc *BooksController) record(c *gin.Context, kind entities.AuditEventType, id uint, title string, err error) {
	bc.recorder.LogMutation(audit.Mutation{
		UserID:     currentUserID(c),
		Type:       kind,
		EntityType: entityBook,
		EntityID:   strconv.FormatUint(uint64(id), 10),
		Summary:    title,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Err:        err,
	})
}
