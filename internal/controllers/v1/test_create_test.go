package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/moneybooks/backend/internal/controllers/v1"
	"github.com/moneybooks/backend/test"
	"github.com/shopspring/decimal"
)

func createTestMoneyBook(t *testing.T, c v1.MoneyBookEditable, expectedStatus ...int) v1.MoneyBookResponse {
	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	if c.Name == "" {
		c.Name = "Salary"
	}

	requestBody := []v1.MoneyBookEditable{c}

	recorder := test.Request(t, http.MethodPost, "http://example.com/v1/money-books", requestBody)
	test.AssertHTTPStatus(t, &recorder, expectedStatus...)

	var response v1.MoneyBookCreateResponse
	test.DecodeResponse(t, &recorder, &response)

	return response.Data[0]
}

func createTestPocket(t *testing.T, c v1.PocketEditable, expectedStatus ...int) v1.PocketResponse {
	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	if c.MoneyBookID == uuid.Nil {
		c.MoneyBookID = createTestMoneyBook(t, v1.MoneyBookEditable{}).Data.ID
	}

	if c.Name == "" {
		c.Name = "Savings"
	}

	requestBody := []v1.PocketEditable{c}

	recorder := test.Request(t, http.MethodPost, "http://example.com/v1/pockets", requestBody)
	test.AssertHTTPStatus(t, &recorder, expectedStatus...)

	var response v1.PocketCreateResponse
	test.DecodeResponse(t, &recorder, &response)

	return response.Data[0]
}

// createTestBookWithPockets creates a money book with one pocket per
// percentage, named "Pocket 0", "Pocket 1" and so on, in that order.
func createTestBookWithPockets(t *testing.T, percentages ...string) (v1.MoneyBook, []v1.Pocket) {
	book := createTestMoneyBook(t, v1.MoneyBookEditable{}).Data

	pockets := make([]v1.Pocket, 0, len(percentages))
	for i, p := range percentages {
		pocket := createTestPocket(t, v1.PocketEditable{
			MoneyBookID: book.ID,
			Name:        fmt.Sprintf("Pocket %d", i),
			Percentage:  decimal.RequireFromString(p),
			OrderIndex:  i,
		})
		pockets = append(pockets, *pocket.Data)
	}

	return *book, pockets
}

func createTestAllocation(t *testing.T, c v1.AllocationEditable, expectedStatus ...int) v1.AllocationResponse {
	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	if c.MoneyBookID == uuid.Nil {
		book, _ := createTestBookWithPockets(t, "50", "30", "20")
		c.MoneyBookID = book.ID
	}

	requestBody := []v1.AllocationEditable{c}

	recorder := test.Request(t, http.MethodPost, "http://example.com/v1/allocations", requestBody)
	test.AssertHTTPStatus(t, &recorder, expectedStatus...)

	var response v1.AllocationCreateResponse
	test.DecodeResponse(t, &recorder, &response)

	return response.Data[0]
}
