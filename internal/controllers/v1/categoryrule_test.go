package v1_test

import (
	"net/http"

	v1 "github.com/pennyflow/backend/internal/controllers/v1"
	"github.com/pennyflow/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestCategoryRuleCreate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	rule := createTestCategoryRule(suite.T(), v1.CategoryRuleEditable{
		Priority:   10,
		Match:      "Edeka*",
		CategoryID: category.Data.ID,
	})

	suite.Assert().Equal("Edeka*", rule.Data.Match)
	suite.Assert().Equal(uint(10), rule.Data.Priority)
}

func (suite *TestSuiteStandard) TestCategoryRuleCreateEmptyMatch() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/category-rules", v1.CategoryRuleEditable{
		CategoryID: category.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryRuleCreateCategoryNotFound() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/category-rules", v1.CategoryRuleEditable{
		Match:      "*",
		CategoryID: uuid.New(),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestCategoryRulesOrder verifies that rules are returned in their
// evaluation order.
func (suite *TestSuiteStandard) TestCategoryRulesOrder() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestCategoryRule(suite.T(), v1.CategoryRuleEditable{Priority: 100, Match: "*", CategoryID: category.Data.ID})
	_ = createTestCategoryRule(suite.T(), v1.CategoryRuleEditable{Priority: 1, Match: "Edeka*", CategoryID: category.Data.ID})
	_ = createTestCategoryRule(suite.T(), v1.CategoryRuleEditable{Priority: 50, Match: "REWE*", CategoryID: category.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/category-rules", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var rules v1.CategoryRuleListResponse
	test.DecodeResponse(suite.T(), &r, &rules)

	suite.Require().Len(rules.Data, 3)
	suite.Assert().Equal("Edeka*", rules.Data[0].Match)
	suite.Assert().Equal("REWE*", rules.Data[1].Match)
	suite.Assert().Equal("*", rules.Data[2].Match)
}

func (suite *TestSuiteStandard) TestCategoryRuleUpdate() {
	rule := createTestCategoryRule(suite.T(), v1.CategoryRuleEditable{Match: "Edeka*"})

	r := test.Request(suite.T(), http.MethodPatch, rule.Data.Links.Self, map[string]any{
		"match": "Edeka *",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.CategoryRuleResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Edeka *", updated.Data.Match)
}

func (suite *TestSuiteStandard) TestCategoryRuleDelete() {
	rule := createTestCategoryRule(suite.T(), v1.CategoryRuleEditable{})

	r := test.Request(suite.T(), http.MethodDelete, rule.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, rule.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
