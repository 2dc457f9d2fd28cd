package v1

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterExportRoutes registers the routes for exports with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/transactions", OptionsExportTransactions)
	r.GET("/transactions", ExportTransactions)
}

func OptionsExportTransactions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// exportColumns is the fixed CSV header of the transaction export.
var exportColumns = []string{"id", "date", "description", "merchant", "amount", "currency", "category", "account", "status", "is_flagged"}

// ExportRecord is one transaction flattened for export. The CSV and
// JSON export contain the same fields with the same values.
type ExportRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Merchant    string `json:"merchant"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	Account     string `json:"account"`
	Status      string `json:"status"`
	IsFlagged   bool   `json:"is_flagged"`
}

func newExportRecord(t models.Transaction) ExportRecord {
	record := ExportRecord{
		ID:          t.ID.String(),
		Date:        t.Date.Format(time.RFC3339),
		Description: t.Description,
		Merchant:    t.Merchant,
		Amount:      t.Amount.String(),
		Currency:    t.Currency,
		Account:     t.Account.Name,
		Status:      string(t.Status),
		IsFlagged:   t.Flagged,
	}

	if t.Category != nil {
		record.Category = t.Category.Name
	}

	return record
}

func (r ExportRecord) row() []string {
	return []string{r.ID, r.Date, r.Description, r.Merchant, r.Amount, r.Currency, r.Category, r.Account, r.Status, strconv.FormatBool(r.IsFlagged)}
}

type ExportFormatQuery struct {
	Format string `form:"format" example:"csv"`
}

// ExportTransactions writes all transactions matching the filters of
// the transaction list endpoint as CSV or JSON download.
func ExportTransactions(c *gin.Context) {
	var format ExportFormatQuery
	if err := c.ShouldBindQuery(&format); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	if format.Format == "" {
		format.Format = "json"
	}

	if format.Format != "json" && format.Format != "csv" {
		c.JSON(http.StatusBadRequest, httpError{Error: errExportFormatInvalid.Error()})
		return
	}

	var filter TransactionQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	q, _, err := transactionQuery(c, filter)
	if err != nil {
		httpErrors(c, err)
		return
	}

	var transactions []models.Transaction
	err = q.Preload("Account").Preload("Category").Find(&transactions).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	records := make([]ExportRecord, 0, len(transactions))
	for _, transaction := range transactions {
		records = append(records, newExportRecord(transaction))
	}

	if format.Format == "json" {
		c.Header("Content-Disposition", `attachment; filename="transactions.json"`)
		c.JSON(http.StatusOK, records)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(exportColumns)
	for _, record := range records {
		_ = writer.Write(record.row())
	}
	writer.Flush()
}
