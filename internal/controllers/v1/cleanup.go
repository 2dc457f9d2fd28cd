package v1

import (
	"net/http"

	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Cleanup deletes all resources of the requesting user in a single
// database transaction. It requires the query parameter
// confirm=yes-please-delete-everything to be set.
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{Error: errCleanupConfirmation.Error()})
		return
	}

	userID := currentUser(c)

	// The order is important here since there are foreign key
	// relationships between the resources
	resources := []any{
		models.Transaction{},
		models.Budget{},
		models.CategoryRule{},
		models.Subscription{},
		models.SavingsGoal{},
		models.Category{},
		models.Account{},
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range resources {
			if err := tx.Where("user_id = ?", userID).Delete(&model).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
