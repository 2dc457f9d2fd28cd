package v1

import (
	"net/http"
	"sort"
	"time"

	"github.com/pennyflow/backend/internal/aggregate"
	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterAnalyticsRoutes registers the routes for analytics with
// the RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/categories", OptionsAnalytics)
	r.GET("/categories", GetCategoryBreakdown)
	r.OPTIONS("/merchants", OptionsAnalytics)
	r.GET("/merchants", GetMerchantBreakdown)
	r.OPTIONS("/monthly", OptionsAnalytics)
	r.GET("/monthly", GetMonthlyOverview)
	r.OPTIONS("/saving-rate", OptionsAnalytics)
	r.GET("/saving-rate", GetSavingRate)
	r.OPTIONS("/year-over-year", OptionsAnalytics)
	r.GET("/year-over-year", GetYearOverYear)
}

func OptionsAnalytics(c *gin.Context) {
	httputil.OptionsGet(c)
}

// AnalyticsQueryFilter is the date window for the analytics endpoints.
// The window defaults to the last twelve months including the current
// one.
type AnalyticsQueryFilter struct {
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" example:"2024-01-01"`
	UntilDate time.Time `form:"untilDate" time_format:"2006-01-02" example:"2024-12-31"`
	Kind      string    `form:"kind" example:"expense"`
	Limit     int       `form:"limit" example:"5"`
}

// QueryYear is the year selection for the per-year analytics
// endpoints, defaulting to the current year.
type QueryYear struct {
	Year int `form:"year" example:"2024"`
}

// window returns the date range to aggregate over as half-open
// interval [from, until).
func (f AnalyticsQueryFilter) window() (time.Time, time.Time) {
	until := f.UntilDate
	if until.IsZero() {
		until = time.Now().In(time.UTC)
	}
	until = time.Date(until.Year(), until.Month(), until.Day()+1, 0, 0, 0, 0, time.UTC)

	from := f.FromDate
	if from.IsZero() {
		from = time.Time(types.MonthOf(until.AddDate(0, 0, -1)).AddDate(0, -11))
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	return from, until
}

// analyticsTransactions fetches all transactions of the user in the
// window. The aggregation itself happens in memory.
func analyticsTransactions(userID uuid.UUID, from, until time.Time, preloadCategory bool) ([]models.Transaction, error) {
	q := models.DB.
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", from, until)

	if preloadCategory {
		q = q.Preload("Category")
	}

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	return transactions, err
}

type CategoryBreakdownEntry struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"d1a47bac-0f27-4b9e-8fdf-bb8e59e465fa"`
	Name       string          `json:"name" example:"Groceries"`
	Amount     decimal.Decimal `json:"amount" example:"221.48"`
	Percentage float64         `json:"percentage" example:"25.3"`
}

type CategoryBreakdownResponse struct {
	Data  []CategoryBreakdownEntry `json:"data"`
	Error *string                  `json:"error"`
}

// GetCategoryBreakdown sums the transaction volume per category over
// the date window. Only categories with at least one matching
// transaction appear in the result.
func GetCategoryBreakdown(c *gin.Context) {
	var filter AnalyticsQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	kind := models.CategoryKindExpense
	switch filter.Kind {
	case "", "expense":
	case "income":
		kind = models.CategoryKindIncome
	default:
		c.JSON(http.StatusBadRequest, httpError{Error: errAnalyticsKindInvalid.Error()})
		return
	}

	from, until := filter.window()
	transactions, err := analyticsTransactions(currentUser(c), from, until, true)
	if err != nil {
		httpErrors(c, err)
		return
	}

	matching := make([]models.Transaction, 0, len(transactions))
	names := make(map[uuid.UUID]string)
	for _, t := range transactions {
		if t.Category == nil || t.Category.Kind != kind {
			continue
		}

		matching = append(matching, t)
		names[*t.CategoryID] = t.Category.Name
	}

	sums := aggregate.Sums(matching,
		func(t models.Transaction) uuid.UUID { return *t.CategoryID },
		func(t models.Transaction) decimal.Decimal { return t.Amount.Abs() },
	)
	total := aggregate.Total(sums)

	data := make([]CategoryBreakdownEntry, 0, len(sums))
	for id, amount := range sums {
		percentage := 0.0
		if total.IsPositive() {
			percentage = amount.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		data = append(data, CategoryBreakdownEntry{
			CategoryID: id,
			Name:       names[id],
			Amount:     amount,
			Percentage: percentage,
		})
	}

	sort.Slice(data, func(i, j int) bool {
		if !data[i].Amount.Equal(data[j].Amount) {
			return data[i].Amount.GreaterThan(data[j].Amount)
		}
		return data[i].Name < data[j].Name
	})

	c.JSON(http.StatusOK, CategoryBreakdownResponse{Data: data})
}

type MerchantBreakdownEntry struct {
	Merchant     string          `json:"merchant" example:"Edeka"`
	Amount       decimal.Decimal `json:"amount" example:"184.20"`
	Transactions int             `json:"transactions" example:"7"`
}

type MerchantBreakdownResponse struct {
	Data  []MerchantBreakdownEntry `json:"data"`
	Error *string                  `json:"error"`
}

// GetMerchantBreakdown returns the merchants with the highest expense
// volume in the date window.
func GetMerchantBreakdown(c *gin.Context) {
	var filter AnalyticsQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	from, until := filter.window()
	transactions, err := analyticsTransactions(currentUser(c), from, until, false)
	if err != nil {
		httpErrors(c, err)
		return
	}

	expenses := make([]models.Transaction, 0, len(transactions))
	counts := make(map[string]int)
	for _, t := range transactions {
		if t.Amount.IsNegative() && t.Merchant != "" {
			expenses = append(expenses, t)
			counts[t.Merchant]++
		}
	}

	sums := aggregate.Sums(expenses,
		func(t models.Transaction) string { return t.Merchant },
		func(t models.Transaction) decimal.Decimal { return t.Amount.Abs() },
	)

	data := make([]MerchantBreakdownEntry, 0, len(sums))
	for merchant, amount := range sums {
		data = append(data, MerchantBreakdownEntry{
			Merchant:     merchant,
			Amount:       amount,
			Transactions: counts[merchant],
		})
	}

	sort.Slice(data, func(i, j int) bool {
		if !data[i].Amount.Equal(data[j].Amount) {
			return data[i].Amount.GreaterThan(data[j].Amount)
		}
		return data[i].Merchant < data[j].Merchant
	})

	limit := 10
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	if len(data) > limit {
		data = data[:limit]
	}

	c.JSON(http.StatusOK, MerchantBreakdownResponse{Data: data})
}

type MonthlyOverviewEntry struct {
	Month    types.Month     `json:"month" example:"2024-02-01T00:00:00Z"`
	Income   decimal.Decimal `json:"income" example:"2800"`
	Expenses decimal.Decimal `json:"expenses" example:"2134.96"`
	Net      decimal.Decimal `json:"net" example:"665.04"`
}

type MonthlyOverviewResponse struct {
	Data  []MonthlyOverviewEntry `json:"data"`
	Error *string                `json:"error"`
}

// GetMonthlyOverview returns income, expenses and net per calendar
// month. Every month in the window appears, months without activity
// are zero.
func GetMonthlyOverview(c *gin.Context) {
	var filter AnalyticsQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	from, until := filter.window()
	transactions, err := analyticsTransactions(currentUser(c), from, until, false)
	if err != nil {
		httpErrors(c, err)
		return
	}

	months := aggregate.Months(types.MonthOf(from), types.MonthOf(until.AddDate(0, 0, -1)))
	income, expenses := monthlySums(transactions, months)

	data := make([]MonthlyOverviewEntry, 0, len(months))
	for _, month := range months {
		data = append(data, MonthlyOverviewEntry{
			Month:    month,
			Income:   income[month],
			Expenses: expenses[month],
			Net:      income[month].Sub(expenses[month]),
		})
	}

	c.JSON(http.StatusOK, MonthlyOverviewResponse{Data: data})
}

// monthlySums buckets the transactions into months and sums income and
// expenses separately, zero-filling all months passed in.
func monthlySums(transactions []models.Transaction, months []types.Month) (income, expenses map[types.Month]decimal.Decimal) {
	var incomes, spending []models.Transaction
	for _, t := range transactions {
		if t.Amount.IsPositive() {
			incomes = append(incomes, t)
		} else if t.Amount.IsNegative() {
			spending = append(spending, t)
		}
	}

	key := func(t models.Transaction) types.Month { return types.MonthOf(t.Date) }
	abs := func(t models.Transaction) decimal.Decimal { return t.Amount.Abs() }

	income = aggregate.ZeroFill(aggregate.Sums(incomes, key, abs), months)
	expenses = aggregate.ZeroFill(aggregate.Sums(spending, key, abs), months)
	return income, expenses
}

type SavingRateEntry struct {
	Month    types.Month     `json:"month" example:"2024-02-01T00:00:00Z"`
	Income   decimal.Decimal `json:"income" example:"2800"`
	Expenses decimal.Decimal `json:"expenses" example:"2134.96"`
	Rate     float64         `json:"rate" example:"23.75"`
}

type SavingRateResponse struct {
	Data  []SavingRateEntry `json:"data"`
	Error *string           `json:"error"`
}

// GetSavingRate returns the saving rate for all twelve months of a
// year. The rate is 0 for months without income.
func GetSavingRate(c *gin.Context) {
	var query QueryYear
	if err := c.Bind(&query); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	year := query.Year
	if year == 0 {
		year = time.Now().In(time.UTC).Year()
	}

	first := types.NewMonth(year, time.January)
	from := time.Time(first)
	until := time.Time(first.AddDate(1, 0))

	transactions, err := analyticsTransactions(currentUser(c), from, until, false)
	if err != nil {
		httpErrors(c, err)
		return
	}

	months := aggregate.Months(first, first.AddDate(0, 11))
	income, expenses := monthlySums(transactions, months)

	data := make([]SavingRateEntry, 0, len(months))
	for _, month := range months {
		rate := 0.0
		if income[month].IsPositive() {
			rate = income[month].Sub(expenses[month]).Div(income[month]).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		data = append(data, SavingRateEntry{
			Month:    month,
			Income:   income[month],
			Expenses: expenses[month],
			Rate:     rate,
		})
	}

	c.JSON(http.StatusOK, SavingRateResponse{Data: data})
}

type YearOverYearEntry struct {
	Month        time.Month      `json:"month" example:"2"`
	CurrentYear  decimal.Decimal `json:"currentYear" example:"2134.96"`
	PreviousYear decimal.Decimal `json:"previousYear" example:"1910.22"`
	Delta        float64         `json:"delta" example:"11.76"`
}

type YearOverYearResponse struct {
	Data  []YearOverYearEntry `json:"data"`
	Error *string             `json:"error"`
}

// GetYearOverYear compares the expense totals of every month of a year
// with the same month of the previous year. All twelve months appear,
// the delta is 0 when there is nothing to compare against.
func GetYearOverYear(c *gin.Context) {
	var query QueryYear
	if err := c.Bind(&query); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	year := query.Year
	if year == 0 {
		year = time.Now().In(time.UTC).Year()
	}

	previousFirst := types.NewMonth(year-1, time.January)
	from := time.Time(previousFirst)
	until := time.Time(previousFirst.AddDate(2, 0))

	transactions, err := analyticsTransactions(currentUser(c), from, until, false)
	if err != nil {
		httpErrors(c, err)
		return
	}

	months := aggregate.Months(previousFirst, types.NewMonth(year, time.December))
	_, expenses := monthlySums(transactions, months)

	data := make([]YearOverYearEntry, 0, 12)
	for month := time.January; month <= time.December; month++ {
		current := expenses[types.NewMonth(year, month)]
		previous := expenses[types.NewMonth(year-1, month)]

		delta := 0.0
		if previous.IsPositive() {
			delta = current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		data = append(data, YearOverYearEntry{
			Month:        month,
			CurrentYear:  current,
			PreviousYear: previous,
			Delta:        delta,
		})
	}

	c.JSON(http.StatusOK, YearOverYearResponse{Data: data})
}
