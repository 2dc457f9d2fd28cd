package models_test

import (
	"testing"

	"github.com/pennyflow/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMatchCategoryRules() {
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	shopping := suite.createTestCategory(models.Category{Name: "Shopping"})

	suite.createTestCategoryRule(models.CategoryRule{Priority: 10, Match: "Amazon*", CategoryID: shopping.ID})
	suite.createTestCategoryRule(models.CategoryRule{Priority: 5, Match: "Edeka*", CategoryID: groceries.ID})

	tests := []struct {
		name     string
		merchant string
		category *models.Category
	}{
		{"exact prefix", "Edeka Hamburg", &groceries},
		{"other rule", "Amazon Marketplace", &shopping},
		{"no match", "Shell", nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			id, err := models.MatchCategoryRules(models.DB, testUserID, tt.merchant)
			require.Nil(t, err)

			if tt.category == nil {
				assert.Nil(t, id)
				return
			}

			require.NotNil(t, id)
			assert.Equal(t, tt.category.ID, *id)
		})
	}
}

// When multiple rules match the same merchant, the one with the lowest
// priority value wins.
func (suite *TestSuiteStandard) TestMatchCategoryRulesPriority() {
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	fallback := suite.createTestCategory(models.Category{Name: "Everything else"})

	suite.createTestCategoryRule(models.CategoryRule{Priority: 100, Match: "*", CategoryID: fallback.ID})
	suite.createTestCategoryRule(models.CategoryRule{Priority: 1, Match: "Edeka*", CategoryID: groceries.ID})

	id, err := models.MatchCategoryRules(models.DB, testUserID, "Edeka Hamburg")
	require.Nil(suite.T(), err)
	require.NotNil(suite.T(), id)
	assert.Equal(suite.T(), groceries.ID, *id)

	id, err = models.MatchCategoryRules(models.DB, testUserID, "Shell")
	require.Nil(suite.T(), err)
	require.NotNil(suite.T(), id)
	assert.Equal(suite.T(), fallback.ID, *id)
}

func (suite *TestSuiteStandard) TestCategoryRuleMatchEmpty() {
	category := suite.createTestCategory(models.Category{})

	err := models.DB.Create(&models.CategoryRule{
		UserID:     testUserID,
		CategoryID: category.ID,
		Match:      "  ",
	}).Error

	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrRuleMatchEmpty)
}
