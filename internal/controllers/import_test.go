package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"

	"github.com/envelope-zero/budget-engine/internal/controllers"
	"github.com/envelope-zero/budget-engine/pkg/engine"
)

const statement = `Date,Payee,Amount,Memo
2024-05-03,Market,-12.30,
2024-05-04,Employer,1000,Salary
2024-05-05,Bakery,-3.50,
`

// upload returns a multipart body with the file and its content type.
func (suite *TestSuiteStandard) upload(name, content string) (*bytes.Buffer, map[string]string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", name)
	suite.Require().Nil(err)
	_, err = part.Write([]byte(content))
	suite.Require().Nil(err)
	suite.Require().Nil(writer.Close())

	return body, map[string]string{"Content-Type": writer.FormDataContentType()}
}

func (suite *TestSuiteStandard) TestImport() {
	account := suite.createTestAccount("Checking")
	suite.createTestTransaction("outflows", account, 3, "12.30", "Market")
	path := "/v1/accounts/" + account.ID.String() + "/import"

	w := suite.request(http.MethodPost, path+"/preview", statement, map[string]string{"Content-Type": "text/csv"})
	suite.assertHTTPStatus(http.StatusOK, w)

	preview := decode[controllers.Response[engine.ImportPreview]](suite, w).Data
	suite.Assert().Equal(2, preview.New)
	suite.Assert().Equal(1, preview.Duplicate)
	suite.Require().Len(preview.Rows, 3)
	suite.Assert().Equal(2, preview.Rows[0].Line)

	// Only import the salary
	body, headers := suite.upload("statement.csv", statement)
	w = suite.request(http.MethodPost, path+"/commit?line=3", body, headers)
	suite.assertHTTPStatus(http.StatusCreated, w)

	r := decode[engine.Result[engine.ImportResult]](suite, w)
	suite.Assert().Equal(1, r.Value.Inserted)
	suite.Require().Len(r.Value.Transactions, 1)
	suite.Assert().Equal("Employer", r.Value.Transactions[0].Payee)
	suite.Require().Len(r.Snapshot.Periods, 1)
	// The unassigned outflow to the market counts against the income
	suite.money("987.7", r.Snapshot.Periods[0].TotalIncome)

	w = suite.request(http.MethodPost, path+"/commit", statement)
	suite.assertHTTPStatus(http.StatusCreated, w)

	r = decode[engine.Result[engine.ImportResult]](suite, w)
	suite.Assert().Equal(1, r.Value.Inserted)
	suite.Assert().Equal(2, r.Value.SkippedDuplicates)
}

func (suite *TestSuiteStandard) TestImportErrors() {
	account := suite.createTestAccount("Checking")
	path := "/v1/accounts/" + account.ID.String() + "/import"

	body, headers := suite.upload("statement.pdf", statement)
	w := suite.request(http.MethodPost, path+"/preview", body, headers)
	suite.assertHTTPStatus(http.StatusBadRequest, w)

	w = suite.request(http.MethodPost, path+"/commit?line=first", statement)
	suite.assertHTTPStatus(http.StatusBadRequest, w)

	w = suite.request(http.MethodPost, path+"/commit?line=0", statement)
	suite.assertHTTPStatus(http.StatusBadRequest, w)

	w = suite.request(http.MethodPost, path+"/preview", "Date,Payee\n2024-05-03,Market\n")
	suite.assertHTTPStatus(http.StatusBadRequest, w)

	w = suite.request(http.MethodOptions, path+"/commit", nil)
	suite.assertHTTPStatus(http.StatusNoContent, w)
	suite.Assert().Equal("OPTIONS, POST", w.Header().Get("allow"))
}
