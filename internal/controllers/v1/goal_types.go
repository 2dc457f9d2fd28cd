package v1

import (
	"fmt"
	"time"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoalEditable represents all values for a savings goal that
// can be set by the API consumer.
type SavingsGoalEditable struct {
	Name          string          `json:"name" example:"Emergency fund" default:""`
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"10000"`
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"2150.50" default:"0"`
	StartDate     time.Time       `json:"startDate" example:"2024-01-01T00:00:00Z"`
	TargetDate    *time.Time      `json:"targetDate" example:"2025-06-30T00:00:00Z"`
	CategoryID    *uuid.UUID      `json:"categoryId" example:"d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
	Completed     bool            `json:"completed" example:"false" default:"false"`
}

func (editable SavingsGoalEditable) model(userID uuid.UUID) models.SavingsGoal {
	return models.SavingsGoal{
		UserID:        userID,
		Name:          editable.Name,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: editable.CurrentAmount,
		StartDate:     editable.StartDate,
		TargetDate:    editable.TargetDate,
		CategoryID:    editable.CategoryID,
		Completed:     editable.Completed,
	}
}

type SavingsGoalLinks struct {
	Self string `json:"self" example:"https://example.com/v1/goals/2c0bbb07-a355-4b81-b2eb-a5a957a1e8a7"`
}

// SavingsGoal is the API representation of a savings goal. Progress is
// the percentage of the target amount that has been saved, capped at
// 100.
type SavingsGoal struct {
	models.DefaultModel
	SavingsGoalEditable
	Progress decimal.Decimal  `json:"progress" example:"21.51"`
	Links    SavingsGoalLinks `json:"links"`
}

func newSavingsGoal(c *gin.Context, model models.SavingsGoal) SavingsGoal {
	url := httputil.RequestHost(c)

	return SavingsGoal{
		DefaultModel: model.DefaultModel,
		SavingsGoalEditable: SavingsGoalEditable{
			Name:          model.Name,
			TargetAmount:  model.TargetAmount,
			CurrentAmount: model.CurrentAmount,
			StartDate:     model.StartDate,
			TargetDate:    model.TargetDate,
			CategoryID:    model.CategoryID,
			Completed:     model.Completed,
		},
		Progress: model.Progress(),
		Links: SavingsGoalLinks{
			Self: fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
		},
	}
}

type SavingsGoalResponse struct {
	Data  *SavingsGoal `json:"data"`
	Error *string      `json:"error"`
}

type SavingsGoalListResponse struct {
	Data       []SavingsGoal `json:"data"`
	Error      *string       `json:"error"`
	Pagination *Pagination   `json:"pagination"`
}

type SavingsGoalQueryFilter struct {
	Name      string `form:"name" filterField:"false"`
	Completed bool   `form:"completed"`
	Offset    uint   `form:"offset" filterField:"false"`
	Limit     int    `form:"limit" filterField:"false"`
}
