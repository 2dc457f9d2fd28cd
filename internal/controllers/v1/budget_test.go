package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/pennyflow/backend/internal/controllers/v1"
	"github.com/pennyflow/backend/internal/types"
	"github.com/pennyflow/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetCreate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, 2),
		Amount:     decimal.NewFromInt(350),
	})

	suite.Assert().Equal(category.Data.ID, budget.Data.CategoryID)
	suite.Assert().True(budget.Data.Amount.Equal(decimal.NewFromInt(350)))
}

func (suite *TestSuiteStandard) TestBudgetCreateDuplicateMonth() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, 2),
		Amount:     decimal.NewFromInt(350),
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", v1.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, 2),
		Amount:     decimal.NewFromInt(400),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetCreateNegativeAmount() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", v1.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, 2),
		Amount:     decimal.NewFromInt(-1),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetsGetFilterMonth() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	otherCategory := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: category.Data.ID, Month: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(300)})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: category.Data.ID, Month: types.NewMonth(2024, 2), Amount: decimal.NewFromInt(350)})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: otherCategory.Data.ID, Month: types.NewMonth(2024, 2), Amount: decimal.NewFromInt(100)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets?month=2024-02", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var budgets v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &budgets)
	suite.Assert().Len(budgets.Data, 2)
}

// TestBudgetMonth verifies the spending overview of one month: the
// spent amount per budget and that the remaining budget is always the
// total budget minus the total spent.
func (suite *TestSuiteStandard) TestBudgetMonth() {
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	transport := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport"})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: groceries.Data.ID, Month: types.NewMonth(2024, 2), Amount: decimal.NewFromInt(350)})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: transport.Data.ID, Month: types.NewMonth(2024, 2), Amount: decimal.NewFromInt(100)})

	account := createTestAccount(suite.T(), v1.AccountEditable{})

	// Spending in the month
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID:  account.Data.ID,
		CategoryID: &groceries.Data.ID,
		Amount:     decimal.NewFromInt(-100),
		Date:       time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID:  account.Data.ID,
		CategoryID: &groceries.Data.ID,
		Amount:     decimal.NewFromInt(-50),
		Date:       time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
	})

	// Neither income nor spending in other months counts
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID:  account.Data.ID,
		CategoryID: &groceries.Data.ID,
		Amount:     decimal.NewFromInt(25),
		Date:       time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID:  account.Data.ID,
		CategoryID: &transport.Data.ID,
		Amount:     decimal.NewFromInt(-80),
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets/month?month=2024-02", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var month v1.BudgetMonthResponse
	test.DecodeResponse(suite.T(), &r, &month)

	suite.Require().Len(month.Data.Budgets, 2)

	for _, budget := range month.Data.Budgets {
		switch budget.CategoryID {
		case groceries.Data.ID:
			suite.Assert().True(budget.Spent.Equal(decimal.NewFromInt(150)), "spent is %s", budget.Spent)
			suite.Assert().True(budget.Remaining.Equal(decimal.NewFromInt(200)), "remaining is %s", budget.Remaining)
		case transport.Data.ID:
			suite.Assert().True(budget.Spent.IsZero(), "spent is %s", budget.Spent)
			suite.Assert().True(budget.Remaining.Equal(decimal.NewFromInt(100)), "remaining is %s", budget.Remaining)
		default:
			suite.Assert().Fail("unexpected budget in month response")
		}
	}

	suite.Assert().True(month.Data.TotalBudget.Equal(decimal.NewFromInt(450)), "total budget is %s", month.Data.TotalBudget)
	suite.Assert().True(month.Data.TotalSpent.Equal(decimal.NewFromInt(150)), "total spent is %s", month.Data.TotalSpent)
	suite.Assert().True(month.Data.RemainingBudget.Equal(month.Data.TotalBudget.Sub(month.Data.TotalSpent)))
}

func (suite *TestSuiteStandard) TestBudgetMonthRequiresMonth() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets/month", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestBudgetCopy verifies copying budgets into the following month.
// Categories that already have a budget in the target month keep it.
func (suite *TestSuiteStandard) TestBudgetCopy() {
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	transport := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport"})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: groceries.Data.ID, Month: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(350)})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: transport.Data.ID, Month: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(100)})

	// Transport already has a budget in February which must survive
	existing := createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: transport.Data.ID, Month: types.NewMonth(2024, 2), Amount: decimal.NewFromInt(120)})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets/copy?month=2024-02", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var copied v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &copied)
	suite.Require().Len(copied.Data, 1)
	suite.Assert().Equal(groceries.Data.ID, copied.Data[0].CategoryID)
	suite.Assert().True(copied.Data[0].Amount.Equal(decimal.NewFromInt(350)))

	r = test.Request(suite.T(), http.MethodGet, existing.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var kept v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &kept)
	suite.Assert().True(kept.Data.Amount.Equal(decimal.NewFromInt(120)))
}

func (suite *TestSuiteStandard) TestBudgetUpdate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Month:  types.NewMonth(2024, 2),
		Amount: decimal.NewFromInt(350),
	})

	r := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"amount": decimal.NewFromInt(400),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().True(updated.Data.Amount.Equal(decimal.NewFromInt(400)))
}

func (suite *TestSuiteStandard) TestBudgetDelete() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Month:  types.NewMonth(2024, 2),
		Amount: decimal.NewFromInt(350),
	})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
