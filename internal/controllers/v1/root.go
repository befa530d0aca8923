package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneybooks/backend/internal/events"
	"github.com/moneybooks/backend/internal/httputil"
	"github.com/moneybooks/backend/internal/models"
)

var (
	backendVersion string

	// publisher receives the events for committed changes.
	publisher events.Publisher = events.Nop{}
)

// RegisterRoutes registers all v1 routes on the group.
//
// The version is reported in exports, the publisher is used for all events
// emitted by the v1 controllers.
func RegisterRoutes(r *gin.RouterGroup, version string, p events.Publisher) {
	backendVersion = version
	if p != nil {
		publisher = p
	}

	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)

	RegisterExportRoutes(r.Group("/export"))
	RegisterMoneyBookRoutes(r.Group("/money-books"))
	RegisterPocketRoutes(r.Group("/pockets"))
	RegisterAllocationRoutes(r.Group("/allocations"))
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations"` // URL of Allocation collection endpoint
	Export      string `json:"export" example:"https://example.com/api/v1/export"`           // URL of the export endpoint
	MoneyBooks  string `json:"moneyBooks" example:"https://example.com/api/v1/money-books"`  // URL of Money Book collection endpoint
	Pockets     string `json:"pockets" example:"https://example.com/api/v1/pockets"`         // URL of Pocket collection endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Allocations: url + "/v1/allocations",
			Export:      url + "/v1/export",
			MoneyBooks:  url + "/v1/money-books",
			Pockets:     url + "/v1/pockets",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
