package v1

import (
	"fmt"
	"net/http"

	"github.com/pennyflow/backend/internal/events"
	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterSubscriptionRoutes registers the routes for subscriptions
// with the RouterGroup that is passed.
func RegisterSubscriptionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSubscriptionList)
		r.GET("", GetSubscriptions)
		r.POST("", CreateSubscription)
	}
	{
		r.OPTIONS("/:id", OptionsSubscriptionDetail)
		r.GET("/:id", GetSubscription)
		r.PATCH("/:id", UpdateSubscription)
		r.DELETE("/:id", DeleteSubscription)
	}
	{
		r.OPTIONS("/:id/process", OptionsSubscriptionProcess)
		r.POST("/:id/process", ProcessSubscription)
	}
}

func OptionsSubscriptionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsSubscriptionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Subscription{})
}

func OptionsSubscriptionProcess(c *gin.Context) {
	httputil.OptionsPost(c)
}

func CreateSubscription(c *gin.Context) {
	var editable SubscriptionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	subscription := editable.model(currentUser(c))

	err = models.DB.Create(&subscription).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newSubscription(c, subscription)
	c.JSON(http.StatusCreated, SubscriptionResponse{Data: &data})
}

func GetSubscriptions(c *gin.Context) {
	var filter SubscriptionQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("datetime(next_payment) ASC, name ASC").
		Where("subscriptions.user_id = ?", currentUser(c)).
		Where(&models.Subscription{
			Cycle:  models.BillingCycle(filter.Cycle),
			Active: filter.Active,
		}, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var subscriptions []models.Subscription
	err := q.Find(&subscriptions).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := make([]Subscription, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		data = append(data, newSubscription(c, subscription))
	}

	c.JSON(http.StatusOK, SubscriptionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetSubscription(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var subscription models.Subscription
	err := models.DB.First(&subscription, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newSubscription(c, subscription)
	c.JSON(http.StatusOK, SubscriptionResponse{Data: &data})
}

func UpdateSubscription(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var subscription models.Subscription
	err := models.DB.First(&subscription, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SubscriptionEditable{})
	if err != nil {
		httpErrors(c, err)
		return
	}

	var editable SubscriptionEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Model(&subscription).Select("", updateFields...).Updates(editable.model(subscription.UserID)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newSubscription(c, subscription)
	c.JSON(http.StatusOK, SubscriptionResponse{Data: &data})
}

func DeleteSubscription(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var subscription models.Subscription
	err := models.DB.First(&subscription, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Delete(&subscription).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ProcessSubscription records the next payment of the subscription as
// a transaction and advances the next payment date by one billing
// cycle.
func ProcessSubscription(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var subscription models.Subscription
	err := models.DB.First(&subscription, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	transaction, err := subscription.ProcessPayment(models.DB)
	if err != nil {
		httpErrors(c, err)
		return
	}

	events.Publish(c.Request.Context(), events.NewEvent(events.TypeSubscriptionProcessed, subscription.UserID, subscription.ID))

	data := SubscriptionProcessed{
		Subscription: newSubscription(c, subscription),
		Transaction:  newTransaction(c, transaction),
	}
	c.JSON(http.StatusCreated, SubscriptionProcessResponse{Data: &data})
}
