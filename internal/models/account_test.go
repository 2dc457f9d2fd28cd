package models_test

import (
	"github.com/pennyflow/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestAccountTypeDefault() {
	account := suite.createTestAccount(models.Account{Name: "Main"})
	assert.Equal(suite.T(), models.AccountTypeChecking, account.Type)
}

func (suite *TestSuiteStandard) TestAccountTypeInvalid() {
	err := models.DB.Create(&models.Account{
		UserID: testUserID,
		Name:   "Gold bars",
		Type:   "commodity",
	}).Error

	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrAccountTypeInvalid)
}

func (suite *TestSuiteStandard) TestAccountCurrencyInvalid() {
	err := models.DB.Create(&models.Account{
		UserID:   testUserID,
		Name:     "Piggy bank",
		Currency: "DOGE",
	}).Error

	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrCurrencyInvalid)
}
