package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/models"
)

const entityAuthor = "author"

// AuthorsController serves /api/Authors with the same shape as books.
type AuthorsController struct {
	authors  AuthorStore
	recorder MutationRecorder
}

func NewAuthorsController(store AuthorStore, recorder MutationRecorder) *AuthorsController {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &AuthorsController{authors: store, recorder: recorder}
}

// GET /api/Authors
func (ac *AuthorsController) GetAuthors(c *gin.Context) {
	list, err := ac.authors.ListAuthors(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "GetAuthors")
		return
	}

	result := make([]models.AuthorReadOnlyDTO, 0, len(list))
	for i := range list {
		result = append(result, toAuthorReadOnly(&list[i]))
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/Authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.authors.GetAuthorByID(c.Request.Context(), id)
	if errors.Is(err, authors.ErrAuthorNotFound) {
		log.Warn().Uint("id", id).Msg("Author record not found in GetAuthor")
		respondNotFound(c, "author")
		return
	}
	if err != nil {
		respondInternalError(c, err, "GetAuthor")
		return
	}

	c.JSON(http.StatusOK, toAuthorDetails(author))
}

// PUT /api/Authors/:id
func (ac *AuthorsController) PutAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AuthorUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("id", id).Msg("Malformed author update payload")
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.ID != id {
		log.Warn().Uint("id", id).Uint("payload_id", req.ID).Msg("Update ID invalid in PutAuthor")
		respondBadRequest(c, "id in path does not match id in body")
		return
	}
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Uint("id", id).Msg("Author update failed validation")
		respondValidation(c, err)
		return
	}

	ctx := c.Request.Context()
	author, err := ac.authors.GetAuthorByID(ctx, id)
	if errors.Is(err, authors.ErrAuthorNotFound) {
		log.Warn().Uint("id", id).Msg("Author record not found in PutAuthor")
		respondNotFound(c, "author")
		return
	}
	if err != nil {
		respondInternalError(c, err, "PutAuthor")
		return
	}

	applyAuthorFields(author, req.AuthorCreateDTO)

	if err := ac.authors.UpdateAuthor(ctx, author); err != nil {
		if errors.Is(err, authors.ErrConcurrencyConflict) {
			if exists, existsErr := ac.authors.AuthorExists(ctx, id); existsErr == nil && !exists {
				log.Warn().Uint("id", id).Msg("Author removed while updating in PutAuthor")
				respondNotFound(c, "author")
				return
			}
		}
		ac.record(c, entities.AuditEventUpdate, id, author.FullName(), err)
		respondInternalError(c, err, "PutAuthor")
		return
	}

	ac.record(c, entities.AuditEventUpdate, id, author.FullName(), nil)
	c.Status(http.StatusNoContent)
}

// POST /api/Authors
func (ac *AuthorsController) PostAuthor(c *gin.Context) {
	var req models.AuthorCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Malformed author create payload")
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("Author create failed validation")
		respondValidation(c, err)
		return
	}

	author := &entities.Author{}
	applyAuthorFields(author, req)

	if err := ac.authors.CreateAuthor(c.Request.Context(), author); err != nil {
		ac.record(c, entities.AuditEventCreate, 0, author.FullName(), err)
		respondInternalError(c, err, "PostAuthor")
		return
	}

	ac.record(c, entities.AuditEventCreate, author.ID, author.FullName(), nil)
	c.Header("Location", "/api/Authors/"+strconv.FormatUint(uint64(author.ID), 10))
	c.JSON(http.StatusCreated, toAuthorReadOnly(author))
}

// DELETE /api/Authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	author, err := ac.authors.GetAuthorByID(ctx, id)
	if errors.Is(err, authors.ErrAuthorNotFound) {
		log.Warn().Uint("id", id).Msg("Author record not found in DeleteAuthor")
		respondNotFound(c, "author")
		return
	}
	if err != nil {
		respondInternalError(c, err, "DeleteAuthor")
		return
	}

	err = ac.authors.DeleteAuthor(ctx, id)
	switch {
	case errors.Is(err, authors.ErrAuthorNotFound):
		respondNotFound(c, "author")
		return
	case errors.Is(err, authors.ErrAuthorHasBooks):
		log.Warn().Uint("id", id).Msg("Refusing to delete author with books")
		respondConflict(c, "author still has books")
		return
	case err != nil:
		ac.record(c, entities.AuditEventDelete, id, author.FullName(), err)
		respondInternalError(c, err, "DeleteAuthor")
		return
	}

	ac.record(c, entities.AuditEventDelete, id, author.FullName(), nil)
	c.Status(http.StatusNoContent)
}

func (ac *AuthorsController) record(c *gin.Context, kind entities.AuditEventType, id uint, name string, err error) {
	ac.recorder.LogMutation(audit.Mutation{
		UserID:     currentUserID(c),
		Type:       kind,
		EntityType: entityAuthor,
		EntityID:   strconv.FormatUint(uint64(id), 10),
		Summary:    name,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Err:        err,
	})
}
