package v1_test

import (
	"net/http"

	v1 "github.com/pennyflow/backend/internal/controllers/v1"
	"github.com/pennyflow/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestSavingsGoalCreate() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{
		Name:          "Emergency fund",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(2500),
	})

	suite.Assert().Equal("Emergency fund", goal.Data.Name)
	suite.Assert().True(goal.Data.Progress.Equal(decimal.NewFromInt(25)))
	suite.Assert().False(goal.Data.Completed)
}

func (suite *TestSuiteStandard) TestSavingsGoalCreateTargetNotPositive() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/goals", v1.SavingsGoalEditable{
		Name:         "No target",
		TargetAmount: decimal.NewFromInt(0),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestSavingsGoalCompletedByClient verifies that reaching the target
// amount does not complete a goal. Completion is an explicit decision
// of the client.
func (suite *TestSuiteStandard) TestSavingsGoalCompletedByClient() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(990),
	})
	suite.Assert().False(goal.Data.Completed)

	r := test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, map[string]any{
		"currentAmount": decimal.NewFromInt(1000),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SavingsGoalResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	suite.Assert().False(updated.Data.Completed)
	suite.Assert().True(updated.Data.Progress.Equal(decimal.NewFromInt(100)))

	r = test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, map[string]any{
		"completed": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().True(updated.Data.Completed)
}

func (suite *TestSuiteStandard) TestSavingsGoalProgressCapped() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(1500),
	})

	suite.Assert().True(goal.Data.Progress.Equal(decimal.NewFromInt(100)))
}

func (suite *TestSuiteStandard) TestSavingsGoalsGetFilter() {
	_ = createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{Name: "Emergency fund", TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(100), Completed: true})
	_ = createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{Name: "Vacation", TargetAmount: decimal.NewFromInt(2000)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/goals?completed=false", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var goals v1.SavingsGoalListResponse
	test.DecodeResponse(suite.T(), &r, &goals)

	suite.Require().Len(goals.Data, 1)
	suite.Assert().Equal("Vacation", goals.Data[0].Name)
}

func (suite *TestSuiteStandard) TestSavingsGoalDelete() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{})

	r := test.Request(suite.T(), http.MethodDelete, goal.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
