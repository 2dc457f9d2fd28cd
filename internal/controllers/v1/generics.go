package v1

import (
	"net/http"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// resourceOptionsDetail handles the OPTIONS request for the detail
// endpoint of any resource that is scoped to a user.
func resourceOptionsDetail[R models.Account | models.Category | models.Transaction | models.Budget | models.SavingsGoal | models.Subscription | models.CategoryRule](c *gin.Context, resource R) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err := models.DB.First(&resource, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
