package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/pennyflow/backend/internal/controllers/v1"
	"github.com/pennyflow/backend/internal/types"
	"github.com/pennyflow/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// analyticsFixture creates a set of transactions for the analytics
// tests: salary and two expense categories across two months.
func (suite *TestSuiteStandard) analyticsFixture() (groceries, transport v1.CategoryResponse) {
	account := createTestAccount(suite.T(), v1.AccountEditable{})
	groceries = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	transport = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport"})

	create := func(amount float64, date time.Time, categoryID *uuid.UUID, merchant string) {
		_ = createTestTransaction(suite.T(), v1.TransactionEditable{
			AccountID:  account.Data.ID,
			CategoryID: categoryID,
			Amount:     decimal.NewFromFloat(amount),
			Date:       date,
			Merchant:   merchant,
		})
	}

	create(2800, time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC), nil, "ACME Corp")
	create(-300, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), &groceries.Data.ID, "Edeka")
	create(-100, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), &transport.Data.ID, "Deutsche Bahn")

	create(2800, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), nil, "ACME Corp")
	create(-200, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), &groceries.Data.ID, "Edeka")
	create(-100, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), &groceries.Data.ID, "REWE")

	return groceries, transport
}

func (suite *TestSuiteStandard) TestAnalyticsCategories() {
	groceries, transport := suite.analyticsFixture()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/categories?fromDate=2024-01-01&untilDate=2024-02-29", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var breakdown v1.CategoryBreakdownResponse
	test.DecodeResponse(suite.T(), &r, &breakdown)

	suite.Require().Len(breakdown.Data, 2)

	// Sorted by volume, largest first
	suite.Assert().Equal(groceries.Data.ID, breakdown.Data[0].CategoryID)
	suite.Assert().True(breakdown.Data[0].Amount.Equal(decimal.NewFromInt(600)), "amount is %s", breakdown.Data[0].Amount)
	suite.Assert().InDelta(85.71, breakdown.Data[0].Percentage, 0.01)

	suite.Assert().Equal(transport.Data.ID, breakdown.Data[1].CategoryID)
	suite.Assert().InDelta(14.29, breakdown.Data[1].Percentage, 0.01)
}

func (suite *TestSuiteStandard) TestAnalyticsCategoriesIncome() {
	_, _ = suite.analyticsFixture()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/categories?kind=income&fromDate=2024-01-01&untilDate=2024-02-29", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var breakdown v1.CategoryBreakdownResponse
	test.DecodeResponse(suite.T(), &r, &breakdown)

	// The salary has no category and does not appear
	suite.Assert().Len(breakdown.Data, 0)
}

func (suite *TestSuiteStandard) TestAnalyticsCategoriesInvalidKind() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/categories?kind=windfall", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAnalyticsMerchants() {
	_, _ = suite.analyticsFixture()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/merchants?fromDate=2024-01-01&untilDate=2024-02-29", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var breakdown v1.MerchantBreakdownResponse
	test.DecodeResponse(suite.T(), &r, &breakdown)

	suite.Require().Len(breakdown.Data, 3)
	suite.Assert().Equal("Edeka", breakdown.Data[0].Merchant)
	suite.Assert().True(breakdown.Data[0].Amount.Equal(decimal.NewFromInt(500)), "amount is %s", breakdown.Data[0].Amount)
	suite.Assert().Equal(2, breakdown.Data[0].Transactions)
}

func (suite *TestSuiteStandard) TestAnalyticsMerchantsLimit() {
	_, _ = suite.analyticsFixture()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/merchants?limit=1&fromDate=2024-01-01&untilDate=2024-02-29", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var breakdown v1.MerchantBreakdownResponse
	test.DecodeResponse(suite.T(), &r, &breakdown)

	suite.Require().Len(breakdown.Data, 1)
	suite.Assert().Equal("Edeka", breakdown.Data[0].Merchant)
}

// TestAnalyticsMonthly verifies that every month of the window appears
// in the overview, months without transactions as zero.
func (suite *TestSuiteStandard) TestAnalyticsMonthly() {
	_, _ = suite.analyticsFixture()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/monthly?fromDate=2024-01-01&untilDate=2024-04-30", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var overview v1.MonthlyOverviewResponse
	test.DecodeResponse(suite.T(), &r, &overview)

	suite.Require().Len(overview.Data, 4)

	january := overview.Data[0]
	suite.Assert().True(january.Month.Equal(types.NewMonth(2024, 1)))
	suite.Assert().True(january.Income.Equal(decimal.NewFromInt(2800)))
	suite.Assert().True(january.Expenses.Equal(decimal.NewFromInt(400)))
	suite.Assert().True(january.Net.Equal(decimal.NewFromInt(2400)))

	april := overview.Data[3]
	suite.Assert().True(april.Income.IsZero())
	suite.Assert().True(april.Expenses.IsZero())
	suite.Assert().True(april.Net.IsZero())
}

func (suite *TestSuiteStandard) TestAnalyticsSavingRate() {
	_, _ = suite.analyticsFixture()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/saving-rate?year=2024", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var rates v1.SavingRateResponse
	test.DecodeResponse(suite.T(), &r, &rates)

	suite.Require().Len(rates.Data, 12)

	january := rates.Data[0]
	suite.Assert().True(january.Income.Equal(decimal.NewFromInt(2800)))
	suite.Assert().InDelta(85.71, january.Rate, 0.01)

	// Months without income have a rate of 0
	suite.Assert().Zero(rates.Data[11].Rate)
}

func (suite *TestSuiteStandard) TestAnalyticsYearOverYear() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(-100),
		Date:      time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(-150),
		Date:      time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/year-over-year?year=2024", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var comparison v1.YearOverYearResponse
	test.DecodeResponse(suite.T(), &r, &comparison)

	suite.Require().Len(comparison.Data, 12)

	february := comparison.Data[1]
	suite.Assert().Equal(time.February, february.Month)
	suite.Assert().True(february.CurrentYear.Equal(decimal.NewFromInt(150)))
	suite.Assert().True(february.PreviousYear.Equal(decimal.NewFromInt(100)))
	suite.Assert().InDelta(50.0, february.Delta, 0.01)

	// No spending in the previous March, so there is no delta
	suite.Assert().Zero(comparison.Data[2].Delta)
}
