package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pennyflow/backend/internal/events"
	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	ez_uuid "github.com/pennyflow/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}
	{
		r.OPTIONS("/batch-delete", OptionsTransactionBatch)
		r.POST("/batch-delete", BatchDeleteTransactions)
		r.OPTIONS("/batch-category", OptionsTransactionBatch)
		r.POST("/batch-category", BatchUpdateTransactionCategory)
	}
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsTransactionBatch(c *gin.Context) {
	httputil.OptionsPost(c)
}

func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{})
}

// transactionQuery builds the database query for the transaction list
// from the query string. It is shared between the list endpoint and
// the export since both support the same filters.
func transactionQuery(c *gin.Context, filter TransactionQueryFilter) (*gorm.DB, []string, error) {
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	order := "datetime(transactions.date) DESC, datetime(transactions.created_at) DESC"
	switch filter.Sort {
	case "", "date":
	case "amount":
		order = "transactions.amount ASC, datetime(transactions.date) DESC"
	default:
		return nil, nil, errSortInvalid
	}

	q := models.DB.
		Order(order).
		Where("transactions.user_id = ?", currentUser(c)).
		Where(&models.Transaction{
			Amount:  filter.Amount,
			Status:  models.TransactionStatus(filter.Status),
			Flagged: filter.Flagged,
		}, queryFields...)

	if filter.AccountID != ez_uuid.Nil {
		q = q.Where("transactions.account_id = ?", filter.AccountID.UUID)
	}

	if filter.CategoryID != ez_uuid.Nil {
		q = q.Where("transactions.category_id = ?", filter.CategoryID.UUID)
	} else if slices.Contains(setFields, "CategoryID") {
		q = q.Where("transactions.category_id IS NULL")
	}

	// date filters for a specific day and open ranges
	if !filter.Date.IsZero() {
		date := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("transactions.date >= date(?)", date).Where("transactions.date < date(?)", date.AddDate(0, 0, 1))
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("transactions.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("transactions.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	if slices.Contains(setFields, "AmountLessOrEqual") {
		q = q.Where("transactions.amount <= ?", filter.AmountLessOrEqual)
	}

	if slices.Contains(setFields, "AmountMoreOrEqual") {
		q = q.Where("transactions.amount >= ?", filter.AmountMoreOrEqual)
	}

	if filter.Search != "" {
		search := fmt.Sprintf("%%%s%%", filter.Search)
		q = q.Where(models.DB.Where("transactions.description LIKE ?", search).Or("transactions.merchant LIKE ?", search))
	}

	return q, setFields, nil
}

func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	userID := currentUser(c)
	transaction := editable.model(userID)

	// Auto-categorize by merchant when the consumer did not pick a
	// category themselves
	if transaction.CategoryID == nil && transaction.Merchant != "" {
		categoryID, err := models.MatchCategoryRules(models.DB, userID, transaction.Merchant)
		if err != nil {
			httpErrors(c, err)
			return
		}
		transaction.CategoryID = categoryID
	}

	err = models.DB.Create(&transaction).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	events.Publish(c.Request.Context(), events.NewEvent(events.TypeTransactionCreated, userID, transaction.ID))

	data := newTransaction(c, transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	q, setFields, err := transactionQuery(c, filter)
	if err != nil {
		httpErrors(c, err)
		return
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
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

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

func UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		httpErrors(c, err)
		return
	}

	var editable TransactionEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(editable.model(transaction.UserID)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// DeleteTransaction deletes a single transaction. The deletion goes
// through the same code path as the batch delete so that the account
// balance is adjusted in the same database transaction.
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	userID := currentUser(c)

	var transaction models.Transaction
	err := models.DB.First(&transaction, "id = ? AND user_id = ?", uri.ID, userID).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	_, err = models.BatchDeleteTransactions(models.DB, userID, []uuid.UUID{transaction.ID})
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// BatchDeleteTransactions deletes all transactions in the request body
// and adjusts the balances of the affected accounts, all in a single
// database transaction.
func BatchDeleteTransactions(c *gin.Context) {
	var body BatchTransactionIDs

	err := httputil.BindData(c, &body)
	if err != nil {
		httpErrors(c, err)
		return
	}

	if len(body.IDs) == 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: errTransactionIDsRequired.Error()})
		return
	}

	deleted, err := models.BatchDeleteTransactions(models.DB, currentUser(c), body.IDs)
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, BatchDeleteResponse{Deleted: deleted})
}

// BatchUpdateTransactionCategory sets or clears the category on all
// transactions in the request body.
func BatchUpdateTransactionCategory(c *gin.Context) {
	var body BatchCategoryUpdate

	err := httputil.BindData(c, &body)
	if err != nil {
		httpErrors(c, err)
		return
	}

	if len(body.IDs) == 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: errTransactionIDsRequired.Error()})
		return
	}

	updated, err := models.BatchUpdateTransactionCategory(models.DB, currentUser(c), body.IDs, body.CategoryID)
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, BatchCategoryResponse{Updated: updated})
}
