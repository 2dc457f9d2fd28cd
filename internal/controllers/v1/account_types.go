package v1

import (
	"fmt"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountEditable represents all values for an account that can be set
// by the API consumer.
type AccountEditable struct {
	Name     string             `json:"name" example:"Checking" default:""`
	Type     models.AccountType `json:"type" example:"checking" default:"checking"`
	Balance  decimal.Decimal    `json:"balance" example:"1209.31" default:"0"`
	Currency string             `json:"currency" example:"EUR" default:""`
	Archived bool               `json:"archived" example:"false" default:"false"`
}

func (editable AccountEditable) model(userID uuid.UUID) models.Account {
	return models.Account{
		UserID:   userID,
		Name:     editable.Name,
		Type:     editable.Type,
		Balance:  editable.Balance,
		Currency: editable.Currency,
		Archived: editable.Archived,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`
}

// Account is the API representation of an account.
type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) Account {
	url := httputil.RequestHost(c)

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:     model.Name,
			Type:     model.Type,
			Balance:  model.Balance,
			Currency: model.Currency,
			Archived: model.Archived,
		},
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
	}
}

type AccountResponse struct {
	Data  *Account `json:"data"`
	Error *string  `json:"error"`
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`
	Error      *string     `json:"error"`
	Pagination *Pagination `json:"pagination"`
}

type AccountQueryFilter struct {
	Name     string `form:"name" filterField:"false"`
	Type     string `form:"type"`
	Currency string `form:"currency"`
	Archived bool   `form:"archived"`
	Search   string `form:"search" filterField:"false"`
	Offset   uint   `form:"offset" filterField:"false"`
	Limit    int    `form:"limit" filterField:"false"`
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		Type:     models.AccountType(f.Type),
		Currency: f.Currency,
		Archived: f.Archived,
	}
}
