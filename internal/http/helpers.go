package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/auth"
)

// ServerErrorMessage is the only text a client ever sees for a 500.
const ServerErrorMessage = "Something went wrong. Please try again later."

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // field errors for validation failures
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondValidation sends a 400 carrying the per-field errors.
func respondValidation(c *gin.Context, err error) {
	resp := ErrorResponse{Error: "validation failed", Code: "validation"}
	if errs, ok := err.(validation.Errors); ok {
		resp.Details = errs
	} else {
		resp.Details = map[string]string{"": err.Error()}
	}
	c.JSON(http.StatusBadRequest, resp)
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message, Code: "conflict"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, operation string) {
	log.Error().
		Err(err).
		Str("operation", operation).
		Str("path", c.Request.URL.Path).
		Msg("Error performing request")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: ServerErrorMessage})
}

// --- Parameter Parsing Helpers ---

// parseIDParam extracts and validates a uint ID from URL parameters.
// Returns the ID and true on success, or sends a 400 response and returns false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	raw := c.Param(paramName)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		log.Warn().Str("param", paramName).Str("value", raw).Msg("Invalid id in request path")
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads limit and offset query params with bounds.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// currentUserID returns the id from the validated bearer token.
func currentUserID(c *gin.Context) string {
	return auth.GetUserID(c)
}
