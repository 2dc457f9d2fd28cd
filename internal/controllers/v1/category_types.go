package v1

import (
	"fmt"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	ez_uuid "github.com/pennyflow/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryEditable represents all values for a category that can be
// set by the API consumer.
type CategoryEditable struct {
	Name     string              `json:"name" example:"Groceries" default:""`
	Kind     models.CategoryKind `json:"kind" example:"expense" default:"expense"`
	ParentID *uuid.UUID          `json:"parentId" example:"751d74c7-2c29-46f6-b072-12d5b0b17bf2"`
	Color    string              `json:"color" example:"#3bcc6a" default:""`
	Icon     string              `json:"icon" example:"cart" default:""`
}

func (editable CategoryEditable) model(userID uuid.UUID) models.Category {
	return models.Category{
		UserID:   userID,
		Name:     editable.Name,
		Kind:     editable.Kind,
		ParentID: editable.ParentID,
		Color:    editable.Color,
		Icon:     editable.Icon,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/v1/categories/d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions?category=d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
}

// Category is the API representation of a category.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := httputil.RequestHost(c)

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:     model.Name,
			Kind:     model.Kind,
			ParentID: model.ParentID,
			Color:    model.Color,
			Icon:     model.Icon,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryResponse struct {
	Data  *Category `json:"data"`
	Error *string   `json:"error"`
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`
	Error      *string     `json:"error"`
	Pagination *Pagination `json:"pagination"`
}

type CategoryQueryFilter struct {
	Name     string       `form:"name" filterField:"false"`
	Kind     string       `form:"kind"`
	ParentID ez_uuid.UUID `form:"parent" filterField:"false"`
	Search   string       `form:"search" filterField:"false"`
	Offset   uint         `form:"offset" filterField:"false"`
	Limit    int          `form:"limit" filterField:"false"`
}
