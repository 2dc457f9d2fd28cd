package v1

import (
	"fmt"
	"time"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	ez_uuid "github.com/pennyflow/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all values for a transaction that can
// be set by the API consumer.
type TransactionEditable struct {
	Date        time.Time                `json:"date" example:"2024-02-24T12:14:00Z"`
	Amount      decimal.Decimal          `json:"amount" example:"-14.37" default:"0"`
	Currency    string                   `json:"currency" example:"EUR" default:""`
	Description string                   `json:"description" example:"Groceries at the corner shop" default:""`
	Merchant    string                   `json:"merchant" example:"Edeka" default:""`
	AccountID   uuid.UUID                `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`
	CategoryID  *uuid.UUID               `json:"categoryId" example:"d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
	Status      models.TransactionStatus `json:"status" example:"cleared" default:"cleared"`
	Flagged     bool                     `json:"flagged" example:"false" default:"false"`
}

func (editable TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:      userID,
		Date:        editable.Date,
		Amount:      editable.Amount,
		Currency:    editable.Currency,
		Description: editable.Description,
		Merchant:    editable.Merchant,
		AccountID:   editable.AccountID,
		CategoryID:  editable.CategoryID,
		Status:      editable.Status,
		Flagged:     editable.Flagged,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/v1/transactions/d430d7c3-d14c-4312-9857-030c104bf249"`
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := httputil.RequestHost(c)

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:        model.Date,
			Amount:      model.Amount,
			Currency:    model.Currency,
			Description: model.Description,
			Merchant:    model.Merchant,
			AccountID:   model.AccountID,
			CategoryID:  model.CategoryID,
			Status:      model.Status,
			Flagged:     model.Flagged,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`
	Error *string      `json:"error"`
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`
	Error      *string       `json:"error"`
	Pagination *Pagination   `json:"pagination"`
}

type TransactionQueryFilter struct {
	Date              time.Time         `form:"date" time_format:"2006-01-02" filterField:"false"`
	FromDate          time.Time         `form:"fromDate" time_format:"2006-01-02" filterField:"false"`
	UntilDate         time.Time         `form:"untilDate" time_format:"2006-01-02" filterField:"false"`
	Amount            decimal.Decimal   `form:"amount"`
	AmountLessOrEqual decimal.Decimal   `form:"amountLessOrEqual" filterField:"false"`
	AmountMoreOrEqual decimal.Decimal   `form:"amountMoreOrEqual" filterField:"false"`
	AccountID         ez_uuid.UUID      `form:"account" filterField:"false"`
	CategoryID        ez_uuid.UUID      `form:"category" filterField:"false"`
	Status            string            `form:"status"`
	Flagged           bool              `form:"flagged"`
	Search            string            `form:"search" filterField:"false"`
	Sort              string            `form:"sort" filterField:"false"`
	Offset            uint              `form:"offset" filterField:"false"`
	Limit             int               `form:"limit" filterField:"false"`
}

// BatchTransactionIDs is the request body for operations that work on
// a list of transactions at once.
type BatchTransactionIDs struct {
	IDs []uuid.UUID `json:"ids"`
}

// BatchCategoryUpdate is the request body for assigning a category to
// a list of transactions at once. A null categoryId clears the
// category on all of them.
type BatchCategoryUpdate struct {
	IDs        []uuid.UUID `json:"ids"`
	CategoryID *uuid.UUID  `json:"categoryId"`
}

type BatchDeleteResponse struct {
	Deleted int64   `json:"deleted"`
	Error   *string `json:"error"`
}

type BatchCategoryResponse struct {
	Updated int64   `json:"updated"`
	Error   *string `json:"error"`
}
