package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneybooks/backend/internal/httputil"
	"github.com/moneybooks/backend/internal/models"
	"gorm.io/gorm"
)

func RegisterPocketRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsPockets)
		r.GET("", GetPockets)
		r.POST("", CreatePockets)
	}
	{
		r.OPTIONS("/:id", OptionsPocketDetail)
		r.GET("/:id", GetPocket)
		r.PATCH("/:id", UpdatePocket)
		r.DELETE("/:id", DeletePocket)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pockets
// @Success		204
// @Router			/v1/pockets [options]
func OptionsPockets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pockets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pockets/{id} [options]
func OptionsPocketDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Pocket{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Create pockets
// @Description	Creates new pockets
// @Tags			Pockets
// @Produce		json
// @Success		201		{object}	PocketCreateResponse
// @Failure		400		{object}	PocketCreateResponse
// @Failure		404		{object}	PocketCreateResponse
// @Failure		500		{object}	PocketCreateResponse
// @Param			pockets	body		[]PocketEditable	true	"Pockets"
// @Router			/v1/pockets [post]
func CreatePockets(c *gin.Context) {
	var pockets []PocketEditable

	err := httputil.BindData(c, &pockets)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PocketCreateResponse{}

	for _, create := range pockets {
		pocket := create.model()
		err = models.DB.Create(&pocket).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newPocket(c, pocket)
		r.Data = append(r.Data, PocketResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get pockets
// @Description	Returns a list of pockets in allocation order
// @Tags			Pockets
// @Produce		json
// @Success		200			{object}	PocketListResponse
// @Failure		400			{object}	PocketListResponse
// @Failure		500			{object}	PocketListResponse
// @Router			/v1/pockets [get]
// @Param			moneyBook	query	string	false	"Filter by money book ID"
// @Param			name		query	string	false	"Filter by name"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first pocket returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of pockets to return. Defaults to 50."
func GetPockets(c *gin.Context) {
	var filter PocketQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(status(err), PocketListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()
	q := models.DB.
		Order("order_index ASC, created_at ASC").
		Where(&where, queryFields...)

	q = stringFilters(q, setFields, filter.Name, filter.Search)

	var count int64
	err := q.Session(&gorm.Session{}).Model(&models.Pocket{}).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketListResponse{
			Error: &e,
		})
		return
	}

	limit := queryLimit(setFields, filter.Limit)

	var pockets []models.Pocket
	err = q.Offset(int(filter.Offset)).Limit(limit).Find(&pockets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Pocket, 0, len(pockets))
	for _, pocket := range pockets {
		data = append(data, newPocket(c, pocket))
	}

	c.JSON(http.StatusOK, PocketListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func getPocket(c *gin.Context) (models.Pocket, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Pocket{}, err
	}

	var pocket models.Pocket
	err = models.DB.First(&pocket, uri.ID.UUID).Error
	if err != nil {
		return models.Pocket{}, err
	}

	return pocket, nil
}

// @Summary		Get pocket
// @Description	Returns a specific pocket
// @Tags			Pockets
// @Produce		json
// @Success		200	{object}	PocketResponse
// @Failure		400	{object}	PocketResponse
// @Failure		404	{object}	PocketResponse
// @Failure		500	{object}	PocketResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pockets/{id} [get]
func GetPocket(c *gin.Context) {
	pocket, err := getPocket(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketResponse{
			Error: &e,
		})
		return
	}

	apiResource := newPocket(c, pocket)
	c.JSON(http.StatusOK, PocketResponse{Data: &apiResource})
}

// @Summary		Update pocket
// @Description	Updates an existing pocket. Only values to be updated need to be specified. Existing allocations are not changed.
// @Tags			Pockets
// @Accept			json
// @Produce		json
// @Success		200		{object}	PocketResponse
// @Failure		400		{object}	PocketResponse
// @Failure		404		{object}	PocketResponse
// @Failure		500		{object}	PocketResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			pocket	body		PocketEditable	true	"Pocket"
// @Router			/v1/pockets/{id} [patch]
func UpdatePocket(c *gin.Context) {
	pocket, err := getPocket(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, PocketEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data PocketEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&pocket).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketResponse{
			Error: &e,
		})
		return
	}

	apiResource := newPocket(c, pocket)
	c.JSON(http.StatusOK, PocketResponse{Data: &apiResource})
}

// @Summary		Delete pocket
// @Description	Deletes a pocket. Items of existing allocations keep the name and percentage of the pocket.
// @Tags			Pockets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pockets/{id} [delete]
func DeletePocket(c *gin.Context) {
	pocket, err := getPocket(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&pocket).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
