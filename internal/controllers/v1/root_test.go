package v1_test

import (
	"net/http"

	v1 "github.com/moneybooks/backend/internal/controllers/v1"
	"github.com/moneybooks/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRoot() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), v1.Links{
		Allocations: "http://example.com/v1/allocations",
		Export:      "http://example.com/v1/export",
		MoneyBooks:  "http://example.com/v1/money-books",
		Pockets:     "http://example.com/v1/pockets",
	}, response.Links)
}
