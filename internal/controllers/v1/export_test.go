package v1_test

import (
	"encoding/csv"
	"net/http"
	"time"

	v1 "github.com/pennyflow/backend/internal/controllers/v1"
	"github.com/pennyflow/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestExportJSON() {
	account := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Currency: "EUR"})
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID:   account.Data.ID,
		CategoryID:  &category.Data.ID,
		Amount:      decimal.NewFromFloat(-14.37),
		Date:        time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Description: "Groceries",
		Merchant:    "Edeka",
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/transactions", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Header().Get("Content-Disposition"), "transactions.json")

	var records []v1.ExportRecord
	test.DecodeResponse(suite.T(), &r, &records)

	suite.Require().Len(records, 1)
	suite.Assert().Equal("-14.37", records[0].Amount)
	suite.Assert().Equal("Checking", records[0].Account)
	suite.Assert().Equal("Groceries", records[0].Category)
}

// TestExportCSV verifies that the CSV export survives a round trip
// through a CSV parser, including fields with embedded commas and
// quotes.
func (suite *TestSuiteStandard) TestExportCSV() {
	account := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID:   account.Data.ID,
		Amount:      decimal.NewFromFloat(-23.42),
		Date:        time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Description: `Dinner at "Zur Post", with friends`,
		Merchant:    "Zur Post",
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/transactions?format=csv", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Header().Get("Content-Disposition"), "transactions.csv")

	records, err := csv.NewReader(r.Body).ReadAll()
	suite.Require().NoError(err)

	// Header plus one transaction
	suite.Require().Len(records, 2)
	suite.Assert().Equal("id", records[0][0])

	row := records[1]
	suite.Assert().Equal(`Dinner at "Zur Post", with friends`, row[2])
	suite.Assert().Equal("Zur Post", row[3])
	suite.Assert().Equal("-23.42", row[4])
	suite.Assert().Equal("Checking", row[7])
	suite.Assert().Equal("", row[6])
}

// TestExportFiltered verifies that the export honors the transaction
// filters.
func (suite *TestSuiteStandard) TestExportFiltered() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(-10),
		Date:      time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(-20),
		Date:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/transactions?fromDate=2024-03-01", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var records []v1.ExportRecord
	test.DecodeResponse(suite.T(), &r, &records)

	suite.Require().Len(records, 1)
	suite.Assert().Equal("-20", records[0].Amount)
}

func (suite *TestSuiteStandard) TestExportInvalidFormat() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/transactions?format=xml", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
