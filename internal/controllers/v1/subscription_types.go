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

// SubscriptionEditable represents all values for a subscription that
// can be set by the API consumer.
type SubscriptionEditable struct {
	Name        string              `json:"name" example:"Streaming service" default:""`
	Amount      decimal.Decimal     `json:"amount" example:"12.99"`
	Currency    string              `json:"currency" example:"EUR" default:""`
	Cycle       models.BillingCycle `json:"cycle" example:"monthly" default:"monthly"`
	NextPayment time.Time           `json:"nextPayment" example:"2024-03-01T00:00:00Z"`
	AccountID   uuid.UUID           `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`
	CategoryID  *uuid.UUID          `json:"categoryId" example:"d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
	Active      bool                `json:"active" example:"true" default:"true"`
}

func (editable SubscriptionEditable) model(userID uuid.UUID) models.Subscription {
	return models.Subscription{
		UserID:      userID,
		Name:        editable.Name,
		Amount:      editable.Amount,
		Currency:    editable.Currency,
		Cycle:       editable.Cycle,
		NextPayment: editable.NextPayment,
		AccountID:   editable.AccountID,
		CategoryID:  editable.CategoryID,
		Active:      editable.Active,
	}
}

type SubscriptionLinks struct {
	Self    string `json:"self" example:"https://example.com/v1/subscriptions/9a74f4a2-56e8-4ea7-9ac4-60ab79e819a4"`
	Process string `json:"process" example:"https://example.com/v1/subscriptions/9a74f4a2-56e8-4ea7-9ac4-60ab79e819a4/process"`
}

// Subscription is the API representation of a subscription.
type Subscription struct {
	models.DefaultModel
	SubscriptionEditable
	Links SubscriptionLinks `json:"links"`
}

func newSubscription(c *gin.Context, model models.Subscription) Subscription {
	url := httputil.RequestHost(c)

	return Subscription{
		DefaultModel: model.DefaultModel,
		SubscriptionEditable: SubscriptionEditable{
			Name:        model.Name,
			Amount:      model.Amount,
			Currency:    model.Currency,
			Cycle:       model.Cycle,
			NextPayment: model.NextPayment,
			AccountID:   model.AccountID,
			CategoryID:  model.CategoryID,
			Active:      model.Active,
		},
		Links: SubscriptionLinks{
			Self:    fmt.Sprintf("%s/v1/subscriptions/%s", url, model.ID),
			Process: fmt.Sprintf("%s/v1/subscriptions/%s/process", url, model.ID),
		},
	}
}

type SubscriptionResponse struct {
	Data  *Subscription `json:"data"`
	Error *string       `json:"error"`
}

type SubscriptionListResponse struct {
	Data       []Subscription `json:"data"`
	Error      *string        `json:"error"`
	Pagination *Pagination    `json:"pagination"`
}

// SubscriptionProcessResponse contains the transaction that was
// created for the payment and the subscription with the advanced next
// payment date.
type SubscriptionProcessResponse struct {
	Data  *SubscriptionProcessed `json:"data"`
	Error *string                `json:"error"`
}

type SubscriptionProcessed struct {
	Subscription Subscription `json:"subscription"`
	Transaction  Transaction  `json:"transaction"`
}

type SubscriptionQueryFilter struct {
	Name   string `form:"name" filterField:"false"`
	Cycle  string `form:"cycle"`
	Active bool   `form:"active"`
	Offset uint   `form:"offset" filterField:"false"`
	Limit  int    `form:"limit" filterField:"false"`
}
