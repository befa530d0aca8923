package v1_test

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/moneybooks/backend/internal/allocation"
	v1 "github.com/moneybooks/backend/internal/controllers/v1"
	"github.com/moneybooks/backend/internal/events"
	"github.com/moneybooks/backend/internal/models"
	"github.com/moneybooks/backend/internal/types"
	"github.com/moneybooks/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v1AllocationFor(id uuid.UUID, amount int64) v1.AllocationEditable {
	return v1.AllocationEditable{MoneyBookID: id, SourceAmount: amount}
}

func itemAmounts(a v1.Allocation) []int64 {
	amounts := make([]int64, 0, len(a.Items))
	for _, item := range a.Items {
		amounts = append(amounts, item.Amount)
	}
	return amounts
}

func (suite *TestSuiteStandard) TestAllocationsCreate() {
	book, pockets := createTestBookWithPockets(suite.T(), "33.33", "33.33", "33.34")

	recorder := &test.Recorder{}
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{
		{MoneyBookID: book.ID, SourceAmount: 100, Date: types.NewDate(2024, 5, 1), Note: "May salary"},
	}, recorder)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.AllocationCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	allocation := response.Data[0].Data

	assert.Equal(suite.T(), []int64{34, 33, 33}, itemAmounts(*allocation))
	assert.Equal(suite.T(), "Rp 100", allocation.SourceAmountFormatted)
	assert.Equal(suite.T(), "May salary", allocation.Note)
	assert.Equal(suite.T(), "2024-05-01", allocation.Date.String())
	assert.Equal(suite.T(), book.Links.Self, allocation.Links.MoneyBook)

	for i, item := range allocation.Items {
		require.NotNil(suite.T(), item.PocketID)
		assert.Equal(suite.T(), pockets[i].ID, *item.PocketID)
		assert.Equal(suite.T(), pockets[i].Name, item.PocketName)
	}
	assert.Equal(suite.T(), "33.33%", allocation.Items[0].PocketPercentageFormatted)
	assert.Equal(suite.T(), "Rp 34", allocation.Items[0].AmountFormatted)

	require.Len(suite.T(), recorder.Events, 1)
	assert.Equal(suite.T(), events.AllocationCreated, recorder.Events[0].Type)
	assert.Equal(suite.T(), allocation.ID, recorder.Events[0].ResourceID)
	assert.Equal(suite.T(), book.ID, recorder.Events[0].MoneyBookID)
}

func (suite *TestSuiteStandard) TestAllocationsCreateDefaultDate() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{SourceAmount: 10}).Data
	assert.Equal(suite.T(), types.Today().String(), allocation.Date.String())
}

func (suite *TestSuiteStandard) TestAllocationsCreateFormatting() {
	book, _ := createTestBookWithPockets(suite.T(), "50", "30", "20")
	allocation := createTestAllocation(suite.T(), v1AllocationFor(book.ID, 3_000_000)).Data

	assert.Equal(suite.T(), "Rp 3.000.000", allocation.SourceAmountFormatted)
	assert.Equal(suite.T(), "Rp 1.500.000", allocation.Items[0].AmountFormatted)
	assert.Equal(suite.T(), []int64{1_500_000, 900_000, 600_000}, itemAmounts(*allocation))

	english := createTestMoneyBook(suite.T(), v1.MoneyBookEditable{Name: "Dollars", Currency: "$", Locale: "en-US"}).Data
	_ = createTestPocket(suite.T(), v1.PocketEditable{MoneyBookID: english.ID, Name: "All", Percentage: decimal.NewFromInt(100)})
	allocation = createTestAllocation(suite.T(), v1AllocationFor(english.ID, 1_234_567)).Data
	assert.Equal(suite.T(), "$ 1,234,567", allocation.SourceAmountFormatted)
}

func (suite *TestSuiteStandard) TestAllocationsCreateFails() {
	book, _ := createTestBookWithPockets(suite.T(), "50", "30")
	empty := createTestMoneyBook(suite.T(), v1.MoneyBookEditable{Name: "Empty"}).Data

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Fractional amount", fmt.Sprintf(`[{ "moneyBookId": "%s", "sourceAmount": 10.5 }]`, book.ID), http.StatusBadRequest},
		{"Amount as string", fmt.Sprintf(`[{ "moneyBookId": "%s", "sourceAmount": "10" }]`, book.ID), http.StatusBadRequest},
		{"Invalid date", fmt.Sprintf(`[{ "moneyBookId": "%s", "sourceAmount": 10, "date": "05/01/2024" }]`, book.ID), http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
		{"Negative amount", []v1.AllocationEditable{v1AllocationFor(book.ID, -5)}, http.StatusBadRequest},
		{"Percentages invalid", []v1.AllocationEditable{v1AllocationFor(book.ID, 100)}, http.StatusBadRequest},
		{"No pockets", []v1.AllocationEditable{v1AllocationFor(empty.ID, 100)}, http.StatusBadRequest},
		{"Money book does not exist", []v1.AllocationEditable{v1AllocationFor(uuid.New(), 100)}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := &test.Recorder{}
			r := test.Request(t, http.MethodPost, "http://example.com/v1/allocations", tt.body, recorder)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Empty(t, recorder.Events)
		})
	}

	// Nothing has been stored
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/allocations", "")
	var response v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestAllocationsCreatePartialFailure() {
	book, _ := createTestBookWithPockets(suite.T(), "100")

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{
		v1AllocationFor(book.ID, 100),
		v1AllocationFor(uuid.New(), 100),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.AllocationCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.NotNil(suite.T(), response.Data[0].Data)
	assert.Equal(suite.T(), "there is no money book matching your query", *response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestAllocationsGetSingle() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{SourceAmount: 999}).Data

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Success", allocation.ID.String(), http.StatusOK},
		{"Does not exist", uuid.New().String(), http.StatusNotFound},
		{"Invalid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/allocations/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)

			if tt.status == http.StatusOK {
				var response v1.AllocationResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Equal(t, itemAmounts(*allocation), itemAmounts(*response.Data))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsGetFilter() {
	book, _ := createTestBookWithPockets(suite.T(), "50", "50")
	other, _ := createTestBookWithPockets(suite.T(), "100")

	_ = createTestAllocation(suite.T(), v1.AllocationEditable{MoneyBookID: book.ID, SourceAmount: 100, Date: types.NewDate(2024, 1, 15)})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{MoneyBookID: book.ID, SourceAmount: 200, Date: types.NewDate(2024, 2, 15)})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{MoneyBookID: book.ID, SourceAmount: 300, Date: types.NewDate(2024, 3, 15)})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{MoneyBookID: other.ID, SourceAmount: 100, Date: types.NewDate(2024, 2, 1)})

	tests := []struct {
		name    string
		query   string
		amounts []int64
	}{
		{"All, newest first", "", []int64{300, 200, 100, 100}},
		{"By money book", fmt.Sprintf("moneyBook=%s", book.ID), []int64{300, 200, 100}},
		{"By source amount", "sourceAmount=100", []int64{100, 100}},
		{"From date", "fromDate=2024-02-15", []int64{300, 200}},
		{"Until date", "untilDate=2024-02-01", []int64{100, 100}},
		{"Date range", fmt.Sprintf("moneyBook=%s&fromDate=2024-02-01&untilDate=2024-02-28", book.ID), []int64{200}},
		{"Limit", "limit=1", []int64{300}},
		{"Offset", "offset=3", []int64{100}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/allocations?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.AllocationListResponse
			test.DecodeResponse(t, &recorder, &response)

			amounts := []int64{}
			for _, a := range response.Data {
				amounts = append(amounts, a.SourceAmount)
				assert.NotEmpty(t, a.Items, "items must be included in lists")
			}
			assert.Equal(t, tt.amounts, amounts)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsGetInvalidFilter() {
	tests := []string{
		"fromDate=yesterday",
		"untilDate=2024-13-01",
		"moneyBook=NotAUUID",
		"sourceAmount=ten",
	}

	for _, query := range tests {
		suite.T().Run(query, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/allocations?%s", query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsImmutable() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{SourceAmount: 100}).Data

	recorder := test.Request(suite.T(), http.MethodPatch, allocation.Links.Self, `{ "note": "changed" }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestAllocationsDelete() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{SourceAmount: 100}).Data

	recorder := &test.Recorder{}
	r := test.Request(suite.T(), http.MethodDelete, allocation.Links.Self, "", recorder)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	assert.Equal(suite.T(), []events.Type{events.AllocationDeleted}, recorder.Types())
	assert.Equal(suite.T(), allocation.MoneyBookID, recorder.Events[0].MoneyBookID)

	r = test.Request(suite.T(), http.MethodGet, allocation.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	assert.Equal(suite.T(), "there is no allocation matching your query", test.DecodeError(suite.T(), r.Body.Bytes()))

	r = test.Request(suite.T(), http.MethodDelete, allocation.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestAllocationsSnapshot verifies that stored items do not change when
// pockets change after the allocation was created.
func (suite *TestSuiteStandard) TestAllocationsSnapshot() {
	book, pockets := createTestBookWithPockets(suite.T(), "60", "40")
	allocation := createTestAllocation(suite.T(), v1AllocationFor(book.ID, 1000)).Data

	r := test.Request(suite.T(), http.MethodPatch, pockets[0].Links.Self, map[string]any{"name": "Renamed", "percentage": "70"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodDelete, pockets[1].Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, allocation.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	items := response.Data.Items
	require.Len(suite.T(), items, 2)

	assert.Equal(suite.T(), "Pocket 0", items[0].PocketName)
	assert.Equal(suite.T(), "60%", items[0].PocketPercentageFormatted)
	assert.Equal(suite.T(), int64(600), items[0].Amount)
	require.NotNil(suite.T(), items[0].PocketID)
	assert.Equal(suite.T(), pockets[0].ID, *items[0].PocketID)

	assert.Equal(suite.T(), "Pocket 1", items[1].PocketName)
	assert.Equal(suite.T(), int64(400), items[1].Amount)
	assert.Nil(suite.T(), items[1].PocketID, "the pocket reference is removed when the pocket is deleted")
}

func (suite *TestSuiteStandard) TestAllocationsDatabaseError() {
	suite.CloseDB()

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "http://example.com/v1/allocations", ""},
		{http.MethodGet, fmt.Sprintf("http://example.com/v1/allocations/%s", uuid.New()), ""},
		{http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{v1AllocationFor(uuid.New(), 1)}},
	}

	for _, tt := range tests {
		suite.T().Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			recorder := test.Request(t, tt.method, tt.path, tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsSourceAmountLimit() {
	book, _ := createTestBookWithPockets(suite.T(), "50", "50")

	created := createTestAllocation(suite.T(), v1AllocationFor(book.ID, allocation.MaxSourceAmount)).Data
	assert.Equal(suite.T(), []int64{1 << 52, 1<<52 - 1}, itemAmounts(*created))

	for _, amount := range []int64{allocation.MaxSourceAmount + 1, math.MaxInt64} {
		suite.T().Run(fmt.Sprint(amount), func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{v1AllocationFor(book.ID, amount)})
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

			var response v1.AllocationCreateResponse
			test.DecodeResponse(t, &recorder, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, models.ErrAllocationSourceAmountTooLarge.Error(), *response.Data[0].Error)
		})
	}
}
