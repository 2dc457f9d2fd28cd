package v1

import (
	"fmt"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/types"
	ez_uuid "github.com/pennyflow/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all values for a budget that can be set
// by the API consumer.
type BudgetEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
	Month      types.Month     `json:"month" example:"2024-02-01T00:00:00Z"`
	Amount     decimal.Decimal `json:"amount" example:"350" default:"0"`
}

func (editable BudgetEditable) model(userID uuid.UUID) models.Budget {
	return models.Budget{
		UserID:     userID,
		CategoryID: editable.CategoryID,
		Month:      editable.Month,
		Amount:     editable.Amount,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/v1/budgets/6b95e1f9-0c67-4709-be86-2811b978b458"`
	Category string `json:"category" example:"https://example.com/v1/categories/d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
}

// Budget is the API representation of a budget.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	url := httputil.RequestHost(c)

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			CategoryID: model.CategoryID,
			Month:      model.Month,
			Amount:     model.Amount,
		},
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`
	Error *string `json:"error"`
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`
	Error      *string     `json:"error"`
	Pagination *Pagination `json:"pagination"`
}

type BudgetQueryFilter struct {
	CategoryID ez_uuid.UUID `form:"category" filterField:"false"`
	Month      string       `form:"month" filterField:"false"`
	Offset     uint         `form:"offset" filterField:"false"`
	Limit      int          `form:"limit" filterField:"false"`
}

// MonthBudget is a budget with the spending progress for its month.
type MonthBudget struct {
	Budget
	Spent     decimal.Decimal `json:"spent" example:"221.48"`
	Remaining decimal.Decimal `json:"remaining" example:"128.52"`
}

// BudgetMonth is the spending overview for all budgets of one month.
type BudgetMonth struct {
	Month           types.Month     `json:"month" example:"2024-02-01T00:00:00Z"`
	Budgets         []MonthBudget   `json:"budgets"`
	TotalBudget     decimal.Decimal `json:"totalBudget" example:"1200"`
	TotalSpent      decimal.Decimal `json:"totalSpent" example:"874.21"`
	RemainingBudget decimal.Decimal `json:"remainingBudget" example:"325.79"`
}

type BudgetMonthResponse struct {
	Data  *BudgetMonth `json:"data"`
	Error *string      `json:"error"`
}
