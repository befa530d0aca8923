package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneybooks/backend/internal/models"
)

type MoneyBookEditable struct {
	UserID   string `json:"userId" example:"5ec1ecb4-93c1-4a1c-b3e7-a3a8c46e2cfe" default:"" binding:"max=255"`      // ID of the user owning the money book
	Name     string `json:"name" example:"Monthly salary" default:"" binding:"max=255"`                             // Name of the money book
	Currency string `json:"currency" example:"Rp" default:"Rp" binding:"max=16"`                                     // Currency symbol used for display
	Locale   string `json:"locale" example:"id" default:"id" binding:"omitempty,bcp47_language_tag"`                 // Locale used to format amounts
}

// model returns the database resource for the API representation of the editable fields
func (editable MoneyBookEditable) model() models.MoneyBook {
	return models.MoneyBook{
		UserID:   editable.UserID,
		Name:     editable.Name,
		Currency: editable.Currency,
		Locale:   editable.Locale,
	}
}

type MoneyBookLinks struct {
	Self              string `json:"self" example:"https://example.com/api/v1/money-books/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                               // The money book itself
	Pockets           string `json:"pockets" example:"https://example.com/api/v1/pockets?moneyBook=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                     // Pockets of this money book
	Allocations       string `json:"allocations" example:"https://example.com/api/v1/allocations?moneyBook=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`             // Allocations of this money book
	PocketValidation  string `json:"pocketValidation" example:"https://example.com/api/v1/money-books/550dc009-cea6-4c12-b2a5-03446eb7b7cf/pocket-validation"` // Validation of the pocket percentages
	PocketOrder       string `json:"pocketOrder" example:"https://example.com/api/v1/money-books/550dc009-cea6-4c12-b2a5-03446eb7b7cf/pocket-order"`           // Endpoint to reorder the pockets
	AllocationPreview string `json:"allocationPreview" example:"https://example.com/api/v1/money-books/550dc009-cea6-4c12-b2a5-03446eb7b7cf/allocation-preview"` // Preview of an allocation. Needs the sourceAmount query parameter
}

type MoneyBook struct {
	models.DefaultModel
	MoneyBookEditable
	Links MoneyBookLinks `json:"links"`
}

// newMoneyBook returns the API v1 representation of the resource
func newMoneyBook(c *gin.Context, model models.MoneyBook) MoneyBook {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/money-books/%s", url, model.ID)

	return MoneyBook{
		DefaultModel: model.DefaultModel,
		MoneyBookEditable: MoneyBookEditable{
			UserID:   model.UserID,
			Name:     model.Name,
			Currency: model.Currency,
			Locale:   model.Locale,
		},
		Links: MoneyBookLinks{
			Self:              self,
			Pockets:           fmt.Sprintf("%s/v1/pockets?moneyBook=%s", url, model.ID),
			Allocations:       fmt.Sprintf("%s/v1/allocations?moneyBook=%s", url, model.ID),
			PocketValidation:  self + "/pocket-validation",
			PocketOrder:       self + "/pocket-order",
			AllocationPreview: self + "/allocation-preview",
		},
	}
}

type MoneyBookListResponse struct {
	Data       []MoneyBook `json:"data"`                                                          // List of money books
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MoneyBookCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []MoneyBookResponse `json:"data"`                                                          // List of created money books
}

func (m *MoneyBookCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MoneyBookResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MoneyBookResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *MoneyBook `json:"data"`                                                          // Data for the money book
}

type MoneyBookQueryFilter struct {
	UserID string `form:"userId"`                       // By owner
	Name   string `form:"name" filterField:"false"`     // By name
	Search string `form:"search" filterField:"false"`   // By string in name
	Offset uint   `form:"offset" filterField:"false"`   // The offset of the first money book returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`    // Maximum number of money books to return. Defaults to 50.
}

// This does not set the string fields since they are
// handled in the controller function
func (f MoneyBookQueryFilter) model() models.MoneyBook {
	return models.MoneyBook{
		UserID: f.UserID,
	}
}

type PocketValidationResponse struct {
	Error *string           `json:"error" example:"there is no money book matching your query"` // The error, if any occurred
	Data  *PocketValidation `json:"data"`                                                       // Validation result
}

type PocketValidation struct {
	Valid          bool   `json:"valid" example:"true"`             // If the pocket percentages sum up to 100
	Total          string `json:"total" example:"100"`              // Sum of all pocket percentages
	TotalFormatted string `json:"totalFormatted" example:"100%"`    // Sum of all pocket percentages, formatted for display
}

type PocketOrderEditable struct {
	PocketIDs []uuid.UUID `json:"pocketIds" binding:"required"` // IDs of all pockets of the money book in the new order
}

type PocketOrderResponse struct {
	Error *string  `json:"error" example:"the pocket order must contain every pocket of the money book exactly once"` // The error, if any occurred
	Data  []Pocket `json:"data"`                                                                                       // The pockets in their new order
}

type AllocationPreviewResponse struct {
	Error *string            `json:"error" example:"the pocket percentages of the money book must sum up to 100"` // The error, if any occurred
	Data  *AllocationPreview `json:"data"`                                                                        // The computed allocation
}

type AllocationPreview struct {
	SourceAmount          int64            `json:"sourceAmount" example:"3000000"`               // The amount to split
	SourceAmountFormatted string           `json:"sourceAmountFormatted" example:"Rp 3.000.000"` // The amount to split, formatted for display
	Items                 []AllocationItem `json:"items"`                                        // Amounts per pocket
}
