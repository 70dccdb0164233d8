package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	events AuditReader
}

func NewAuditController(events AuditReader) *AuditController {
	return &AuditController{events: events}
}

// GetAuditEvents returns paginated audit events as JSON, newest first.
// ?user=<id> narrows to one user.
// GET /api/Audit
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, offset := parsePagination(c, 25, 100)

	events, total, err := ac.events.GetEvents(c.Request.Context(), c.Query("user"), limit, offset)
	if err != nil {
		respondInternalError(c, err, "GetAuditEvents")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
