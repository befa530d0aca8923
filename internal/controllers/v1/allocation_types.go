package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneybooks/backend/internal/format"
	"github.com/moneybooks/backend/internal/models"
	"github.com/moneybooks/backend/internal/types"
	ez_uuid "github.com/moneybooks/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

type AllocationEditable struct {
	MoneyBookID  uuid.UUID  `json:"moneyBookId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                         // ID of the money book the source amount is split for
	SourceAmount int64      `json:"sourceAmount" example:"3000000" minimum:"0"`                                         // The amount to split, in the smallest currency unit
	Date         types.Date `json:"date" example:"2024-05-12"`                                                          // Date of the allocation. Defaults to today
	Note         string     `json:"note" example:"May salary" default:""`                                               // A note about the allocation
}

// model returns the database resource for the API representation of the editable fields
func (editable AllocationEditable) model() models.Allocation {
	return models.Allocation{
		MoneyBookID:  editable.MoneyBookID,
		SourceAmount: editable.SourceAmount,
		Date:         editable.Date,
		Note:         editable.Note,
	}
}

type AllocationItem struct {
	PocketID                  *uuid.UUID      `json:"pocketId" example:"a3d8a5b5-2e1f-4c4f-8a4f-9d4f4b0f2f43"` // ID of the pocket. null if the pocket has been deleted
	PocketName                string          `json:"pocketName" example:"Savings"`                            // Name of the pocket at the time of the allocation
	PocketPercentage          decimal.Decimal `json:"pocketPercentage" example:"33.33"`                        // Percentage of the pocket at the time of the allocation
	PocketPercentageFormatted string          `json:"pocketPercentageFormatted" example:"33.33%"`              // Percentage of the pocket, formatted for display
	Amount                    int64           `json:"amount" example:"1000000"`                                // Amount the pocket received
	AmountFormatted           string          `json:"amountFormatted" example:"Rp 1.000.000"`                  // Amount the pocket received, formatted for display
}

// newAllocationItem returns the API v1 representation of an item, formatted
// with the currency and locale of its money book
func newAllocationItem(model models.AllocationItem, currency string, tag language.Tag) AllocationItem {
	return AllocationItem{
		PocketID:                  model.PocketID,
		PocketName:                model.PocketName,
		PocketPercentage:          model.PocketPercentage,
		PocketPercentageFormatted: format.Percentage(model.PocketPercentage),
		Amount:                    model.Amount,
		AmountFormatted:           format.Currency(model.Amount, currency, tag),
	}
}

type AllocationLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/allocations/2f4b1d0a-54c1-4b6b-a3ad-7e6f5a0e9d1c"`     // The allocation itself
	MoneyBook string `json:"moneyBook" example:"https://example.com/api/v1/money-books/550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The money book of the allocation
}

type Allocation struct {
	models.DefaultModel
	AllocationEditable
	SourceAmountFormatted string           `json:"sourceAmountFormatted" example:"Rp 3.000.000"` // The source amount, formatted for display
	Items                 []AllocationItem `json:"items"`                                        // Amounts per pocket, in allocation order
	Links                 AllocationLinks  `json:"links"`
}

// newAllocation returns the API v1 representation of the resource
func newAllocation(c *gin.Context, model models.Allocation, book models.MoneyBook) Allocation {
	url := c.GetString(string(models.DBContextURL))
	tag := format.Locale(book.Locale)

	items := make([]AllocationItem, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, newAllocationItem(item, book.Currency, tag))
	}

	return Allocation{
		DefaultModel: model.DefaultModel,
		AllocationEditable: AllocationEditable{
			MoneyBookID:  model.MoneyBookID,
			SourceAmount: model.SourceAmount,
			Date:         model.Date,
			Note:         model.Note,
		},
		SourceAmountFormatted: format.Currency(model.SourceAmount, book.Currency, tag),
		Items:                 items,
		Links: AllocationLinks{
			Self:      fmt.Sprintf("%s/v1/allocations/%s", url, model.ID),
			MoneyBook: fmt.Sprintf("%s/v1/money-books/%s", url, model.MoneyBookID),
		},
	}
}

type AllocationListResponse struct {
	Data       []Allocation `json:"data"`                                                          // List of allocations
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type AllocationCreateResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []AllocationResponse `json:"data"`                                                          // List of created allocations
}

func (a *AllocationCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AllocationResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AllocationResponse struct {
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Allocation `json:"data"`                                                          // Data for the allocation
}

type AllocationQueryFilter struct {
	MoneyBookID  ez_uuid.UUID `form:"moneyBook"`                      // By ID of the money book
	SourceAmount int64        `form:"sourceAmount"`                   // By source amount
	FromDate     string       `form:"fromDate" filterField:"false"`  // Allocations on and after this date
	UntilDate    string       `form:"untilDate" filterField:"false"` // Allocations on and before this date
	Offset       uint         `form:"offset" filterField:"false"`    // The offset of the first allocation returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`     // Maximum number of allocations to return. Defaults to 50.
}

// model returns the filter for the fields that can be matched directly. The
// dates are handled in the controller function
func (f AllocationQueryFilter) model() models.Allocation {
	return models.Allocation{
		MoneyBookID:  f.MoneyBookID.UUID,
		SourceAmount: f.SourceAmount,
	}
}
