package v1

import (
	"time"

	"github.com/pennyflow/backend/internal/models"
	ez_uuid "github.com/pennyflow/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2022-07"` // Year and month in YYYY-MM format
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Total  int64 `json:"total"`  // The total number of records matching the query
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
}

// currentUser returns the ID of the authenticated user. The auth
// middleware guarantees it is set for everything below /v1.
func currentUser(c *gin.Context) uuid.UUID {
	return c.MustGet(string(models.ContextUserID)).(uuid.UUID)
}
