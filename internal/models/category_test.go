package models_test

import (
	"github.com/pennyflow/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryKindDefault() {
	category := suite.createTestCategory(models.Category{Name: "Groceries"})
	assert.Equal(suite.T(), models.CategoryKindExpense, category.Kind)
}

func (suite *TestSuiteStandard) TestCategoryKindInvalid() {
	err := models.DB.Create(&models.Category{
		UserID: testUserID,
		Name:   "Schrödinger",
		Kind:   "both",
	}).Error

	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrCategoryKindInvalid)
}

func (suite *TestSuiteStandard) TestCategoryNesting() {
	parent := suite.createTestCategory(models.Category{Name: "Transport"})
	child := suite.createTestCategory(models.Category{Name: "Fuel", ParentID: &parent.ID})

	// A category with a parent cannot be a parent itself
	err := models.DB.Create(&models.Category{
		UserID:   testUserID,
		Name:     "Diesel",
		ParentID: &child.ID,
	}).Error

	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNestingTooDeep)
}

func (suite *TestSuiteStandard) TestCategoryParentMissing() {
	missing := uuid.New()

	err := models.DB.Create(&models.Category{
		UserID:   testUserID,
		Name:     "Orphan",
		ParentID: &missing,
	}).Error

	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
