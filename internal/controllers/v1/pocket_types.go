package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneybooks/backend/internal/format"
	"github.com/moneybooks/backend/internal/models"
	ez_uuid "github.com/moneybooks/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type PocketEditable struct {
	MoneyBookID uuid.UUID       `json:"moneyBookId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                                             // ID of the money book the pocket belongs to
	Name        string          `json:"name" example:"Savings" default:"" binding:"max=255"`                                                  // Name of the pocket. Unique per money book
	Percentage  decimal.Decimal `json:"percentage" example:"33.33" minimum:"0" maximum:"100" multipleOf:"0.00000001" default:"0"`             // Share of every allocation this pocket receives, in percent
	OrderIndex  int             `json:"orderIndex" example:"2" default:"0"`                                                                   // Position of the pocket when allocating. Pockets earlier in the order receive remainders first
}

// model returns the database resource for the API representation of the editable fields
func (editable PocketEditable) model() models.Pocket {
	return models.Pocket{
		MoneyBookID: editable.MoneyBookID,
		Name:        editable.Name,
		Percentage:  editable.Percentage,
		OrderIndex:  editable.OrderIndex,
	}
}

type PocketLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/pockets/a3d8a5b5-2e1f-4c4f-8a4f-9d4f4b0f2f43"`        // The pocket itself
	MoneyBook string `json:"moneyBook" example:"https://example.com/api/v1/money-books/550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The money book the pocket belongs to
}

type Pocket struct {
	models.DefaultModel
	PocketEditable
	PercentageFormatted string      `json:"percentageFormatted" example:"33.33%"` // The percentage, formatted for display
	Links               PocketLinks `json:"links"`
}

// newPocket returns the API v1 representation of the resource
func newPocket(c *gin.Context, model models.Pocket) Pocket {
	url := c.GetString(string(models.DBContextURL))

	return Pocket{
		DefaultModel: model.DefaultModel,
		PocketEditable: PocketEditable{
			MoneyBookID: model.MoneyBookID,
			Name:        model.Name,
			Percentage:  model.Percentage,
			OrderIndex:  model.OrderIndex,
		},
		PercentageFormatted: format.Percentage(model.Percentage),
		Links: PocketLinks{
			Self:      fmt.Sprintf("%s/v1/pockets/%s", url, model.ID),
			MoneyBook: fmt.Sprintf("%s/v1/money-books/%s", url, model.MoneyBookID),
		},
	}
}

type PocketListResponse struct {
	Data       []Pocket    `json:"data"`                                                          // List of pockets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PocketCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []PocketResponse `json:"data"`                                                          // List of created pockets
}

func (p *PocketCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PocketResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PocketResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Pocket `json:"data"`                                                          // Data for the pocket
}

type PocketQueryFilter struct {
	MoneyBookID ez_uuid.UUID `form:"moneyBook"`                   // By ID of the money book
	Name        string       `form:"name" filterField:"false"`   // By name
	Search      string       `form:"search" filterField:"false"` // By string in name
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first pocket returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of pockets to return. Defaults to 50.
}

func (f PocketQueryFilter) model() models.Pocket {
	return models.Pocket{
		MoneyBookID: f.MoneyBookID.UUID,
	}
}
