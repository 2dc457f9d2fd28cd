package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/pennyflow/backend/internal/aggregate"
	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/insight"
	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterInsightRoutes registers the routes for insights with
// the RouterGroup that is passed.
func RegisterInsightRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsInsights)
	r.GET("", GetInsights)
}

func OptionsInsights(c *gin.Context) {
	httputil.OptionsGet(c)
}

// InsightData is the generated insight list together with the metrics
// they were derived from.
type InsightData struct {
	Month    types.Month       `json:"month" example:"2024-02-01T00:00:00Z"`
	Metrics  insight.Metrics   `json:"metrics"`
	Insights []insight.Insight `json:"insights"`
}

type InsightsResponse struct {
	Data  *InsightData `json:"data"`
	Error *string      `json:"error"`
}

// GetInsights computes the financial metrics of the month compared to
// the preceding month and generates insights from them. The month
// defaults to the current one.
func GetInsights(c *gin.Context) {
	var query QueryMonth
	if err := c.Bind(&query); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	month := types.MonthOf(time.Now().In(time.UTC))
	if !query.Month.IsZero() {
		month = types.MonthOf(query.Month)
	}

	userID := currentUser(c)

	metrics, err := insightMetrics(userID, month)
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := InsightData{
		Month:    month,
		Metrics:  metrics,
		Insights: insight.Generate(metrics),
	}
	c.JSON(http.StatusOK, InsightsResponse{Data: &data})
}

// insightMetrics computes the metric bag for one month from the
// stored transactions.
func insightMetrics(userID uuid.UUID, month types.Month) (insight.Metrics, error) {
	previous := month.AddDate(0, -1)

	var transactions []models.Transaction
	err := models.DB.
		Preload("Category").
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", time.Time(previous), time.Time(month.AddDate(0, 1))).
		Find(&transactions).Error
	if err != nil {
		return insight.Metrics{}, err
	}

	months := []types.Month{previous, month}
	income, expenses := monthlySums(transactions, months)

	metrics := insight.Metrics{
		IncomeDelta:  percentChange(income[previous], income[month]),
		ExpenseDelta: percentChange(expenses[previous], expenses[month]),
	}

	if income[month].IsPositive() {
		metrics.SavingRate = income[month].Sub(expenses[month]).Div(income[month]).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	// Concentration of expenses on the largest category
	var monthExpenses []models.Transaction
	names := make(map[uuid.UUID]string)
	incomeSources := make(map[string]bool)
	for _, t := range transactions {
		if !month.Contains(t.Date) {
			continue
		}

		if t.Amount.IsNegative() && t.Category != nil {
			monthExpenses = append(monthExpenses, t)
			names[*t.CategoryID] = t.Category.Name
		}

		if t.Amount.IsPositive() && t.Merchant != "" {
			incomeSources[t.Merchant] = true
		}
	}
	metrics.IncomeSourceCount = len(incomeSources)

	sums := aggregate.Sums(monthExpenses,
		func(t models.Transaction) uuid.UUID { return *t.CategoryID },
		func(t models.Transaction) decimal.Decimal { return t.Amount.Abs() },
	)

	if total := expenses[month]; total.IsPositive() {
		var topID uuid.UUID
		top := decimal.Zero
		for id, amount := range sums {
			if amount.GreaterThan(top) || (amount.Equal(top) && names[id] < names[topID]) {
				topID, top = id, amount
			}
		}

		if top.IsPositive() {
			metrics.TopCategoryName = names[topID]
			metrics.TopCategoryShare = top.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
	}

	// Days since the user last recorded anything
	var latest models.Transaction
	err = models.DB.
		Where("user_id = ?", userID).
		Order("datetime(date) DESC").
		First(&latest).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return insight.Metrics{}, err
	}
	if err == nil {
		metrics.DaysSinceLastTransaction = int(time.Since(latest.Date).Hours() / 24)
	}

	return metrics, nil
}

// percentChange returns the change from previous to current in
// percent, 0 when there is no previous value to compare against.
func percentChange(previous, current decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}

	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
