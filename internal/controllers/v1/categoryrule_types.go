package v1

import (
	"fmt"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	ez_uuid "github.com/pennyflow/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryRuleEditable represents all values for a category rule that
// can be set by the API consumer.
type CategoryRuleEditable struct {
	Priority   uint      `json:"priority" example:"10" default:"0"`
	Match      string    `json:"match" example:"Edeka*" default:""`
	CategoryID uuid.UUID `json:"categoryId" example:"d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
}

func (editable CategoryRuleEditable) model(userID uuid.UUID) models.CategoryRule {
	return models.CategoryRule{
		UserID:     userID,
		Priority:   editable.Priority,
		Match:      editable.Match,
		CategoryID: editable.CategoryID,
	}
}

type CategoryRuleLinks struct {
	Self     string `json:"self" example:"https://example.com/v1/category-rules/9cce2b5c-9a40-4243-8844-17d06b702ae1"`
	Category string `json:"category" example:"https://example.com/v1/categories/d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
}

// CategoryRule is the API representation of a category rule.
type CategoryRule struct {
	models.DefaultModel
	CategoryRuleEditable
	Links CategoryRuleLinks `json:"links"`
}

func newCategoryRule(c *gin.Context, model models.CategoryRule) CategoryRule {
	url := httputil.RequestHost(c)

	return CategoryRule{
		DefaultModel: model.DefaultModel,
		CategoryRuleEditable: CategoryRuleEditable{
			Priority:   model.Priority,
			Match:      model.Match,
			CategoryID: model.CategoryID,
		},
		Links: CategoryRuleLinks{
			Self:     fmt.Sprintf("%s/v1/category-rules/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type CategoryRuleResponse struct {
	Data  *CategoryRule `json:"data"`
	Error *string       `json:"error"`
}

type CategoryRuleListResponse struct {
	Data       []CategoryRule `json:"data"`
	Error      *string        `json:"error"`
	Pagination *Pagination    `json:"pagination"`
}

type CategoryRuleQueryFilter struct {
	CategoryID ez_uuid.UUID `form:"category" filterField:"false"`
	Offset     uint         `form:"offset" filterField:"false"`
	Limit      int          `form:"limit" filterField:"false"`
}
