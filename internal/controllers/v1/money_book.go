package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/moneybooks/backend/internal/events"
	"github.com/moneybooks/backend/internal/format"
	"github.com/moneybooks/backend/internal/httputil"
	"github.com/moneybooks/backend/internal/models"
	"gorm.io/gorm"
)

func RegisterMoneyBookRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMoneyBooks)
		r.GET("", GetMoneyBooks)
		r.POST("", CreateMoneyBooks)
	}
	{
		r.OPTIONS("/:id", OptionsMoneyBookDetail)
		r.GET("/:id", GetMoneyBook)
		r.PATCH("/:id", UpdateMoneyBook)
		r.DELETE("/:id", DeleteMoneyBook)
	}
	{
		r.OPTIONS("/:id/pocket-validation", OptionsPocketValidation)
		r.GET("/:id/pocket-validation", GetPocketValidation)
		r.OPTIONS("/:id/pocket-order", OptionsPocketOrder)
		r.PATCH("/:id/pocket-order", UpdatePocketOrder)
		r.OPTIONS("/:id/allocation-preview", OptionsAllocationPreview)
		r.GET("/:id/allocation-preview", GetAllocationPreview)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Money Books
// @Success		204
// @Router			/v1/money-books [options]
func OptionsMoneyBooks(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Money Books
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/money-books/{id} [options]
func OptionsMoneyBookDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.MoneyBook{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Create money books
// @Description	Creates new money books
// @Tags			Money Books
// @Produce		json
// @Success		201			{object}	MoneyBookCreateResponse
// @Failure		400			{object}	MoneyBookCreateResponse
// @Failure		500			{object}	MoneyBookCreateResponse
// @Param			moneyBooks	body		[]MoneyBookEditable	true	"Money Books"
// @Router			/v1/money-books [post]
func CreateMoneyBooks(c *gin.Context) {
	var moneyBooks []MoneyBookEditable

	err := httputil.BindData(c, &moneyBooks)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MoneyBookCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MoneyBookCreateResponse{}

	for _, create := range moneyBooks {
		book := create.model()
		err = models.DB.Create(&book).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newMoneyBook(c, book)
		r.Data = append(r.Data, MoneyBookResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get money books
// @Description	Returns a list of money books
// @Tags			Money Books
// @Produce		json
// @Success		200		{object}	MoneyBookListResponse
// @Failure		400		{object}	MoneyBookListResponse
// @Failure		500		{object}	MoneyBookListResponse
// @Router			/v1/money-books [get]
// @Param			userId	query	string	false	"Filter by owner"
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first money book returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of money books to return. Defaults to 50."
func GetMoneyBooks(c *gin.Context) {
	var filter MoneyBookQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MoneyBookListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()
	q := models.DB.
		Order("name ASC, created_at ASC").
		Where(&where, queryFields...)

	q = stringFilters(q, setFields, filter.Name, filter.Search)

	var count int64
	err := q.Session(&gorm.Session{}).Model(&models.MoneyBook{}).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MoneyBookListResponse{
			Error: &e,
		})
		return
	}

	limit := queryLimit(setFields, filter.Limit)

	var books []models.MoneyBook
	err = q.Offset(int(filter.Offset)).Limit(limit).Find(&books).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MoneyBookListResponse{
			Error: &e,
		})
		return
	}

	data := make([]MoneyBook, 0, len(books))
	for _, book := range books {
		data = append(data, newMoneyBook(c, book))
	}

	c.JSON(http.StatusOK, MoneyBookListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// getMoneyBook binds the ID from the URI and loads the money book.
func getMoneyBook(c *gin.Context) (models.MoneyBook, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.MoneyBook{}, err
	}

	var book models.MoneyBook
	err = models.DB.First(&book, uri.ID.UUID).Error
	if err != nil {
		return models.MoneyBook{}, err
	}

	return book, nil
}

// @Summary		Get money book
// @Description	Returns a specific money book
// @Tags			Money Books
// @Produce		json
// @Success		200	{object}	MoneyBookResponse
// @Failure		400	{object}	MoneyBookResponse
// @Failure		404	{object}	MoneyBookResponse
// @Failure		500	{object}	MoneyBookResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/money-books/{id} [get]
func GetMoneyBook(c *gin.Context) {
	book, err := getMoneyBook(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MoneyBookResponse{
			Error: &e,
		})
		return
	}

	apiResource := newMoneyBook(c, book)
	c.JSON(http.StatusOK, MoneyBookResponse{Data: &apiResource})
}

// @Summary		Update money book
// @Description	Updates an existing money book. Only values to be updated need to be specified.
// @Tags			Money Books
// @Accept			json
// @Produce		json
// @Success		200			{object}	MoneyBookResponse
// @Failure		400			{object}	MoneyBookResponse
// @Failure		404			{object}	MoneyBookResponse
// @Failure		500			{object}	MoneyBookResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			moneyBook	body		MoneyBookEditable	true	"Money Book"
// @Router			/v1/money-books/{id} [patch]
func UpdateMoneyBook(c *gin.Context) {
	book, err := getMoneyBook(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MoneyBookResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, MoneyBookEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MoneyBookResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data MoneyBookEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MoneyBookResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&book).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MoneyBookResponse{
			Error: &e,
		})
		return
	}

	apiResource := newMoneyBook(c, book)
	c.JSON(http.StatusOK, MoneyBookResponse{Data: &apiResource})
}

// @Summary		Delete money book
// @Description	Deletes a money book with all its pockets and allocations
// @Tags			Money Books
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/money-books/{id} [delete]
func DeleteMoneyBook(c *gin.Context) {
	book, err := getMoneyBook(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&book).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.PublishLogged(c.Request.Context(), publisher, events.New(events.MoneyBookDeleted, book.ID, book.ID))
	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Money Books
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/money-books/{id}/pocket-validation [options]
func OptionsPocketValidation(c *gin.Context) {
	resourceOptionsDetail(c, models.MoneyBook{}, httputil.OptionsGet)
}

// @Summary		Validate pocket percentages
// @Description	Returns the sum of the pocket percentages of the money book and if allocations can be created with them
// @Tags			Money Books
// @Produce		json
// @Success		200	{object}	PocketValidationResponse
// @Failure		400	{object}	PocketValidationResponse
// @Failure		404	{object}	PocketValidationResponse
// @Failure		500	{object}	PocketValidationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/money-books/{id}/pocket-validation [get]
func GetPocketValidation(c *gin.Context) {
	book, err := getMoneyBook(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketValidationResponse{
			Error: &e,
		})
		return
	}

	valid, total, err := book.PocketPercentages(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketValidationResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, PocketValidationResponse{
		Data: &PocketValidation{
			Valid:          valid,
			Total:          total.String(),
			TotalFormatted: format.Percentage(total),
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Money Books
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/money-books/{id}/pocket-order [options]
func OptionsPocketOrder(c *gin.Context) {
	resourceOptionsDetail(c, models.MoneyBook{}, httputil.OptionsPatch)
}

// @Summary		Reorder pockets
// @Description	Sets the allocation order of the pockets of the money book. All pockets must be listed exactly once.
// @Tags			Money Books
// @Accept			json
// @Produce		json
// @Success		200		{object}	PocketOrderResponse
// @Failure		400		{object}	PocketOrderResponse
// @Failure		404		{object}	PocketOrderResponse
// @Failure		500		{object}	PocketOrderResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			order	body		PocketOrderEditable	true	"Pocket order"
// @Router			/v1/money-books/{id}/pocket-order [patch]
func UpdatePocketOrder(c *gin.Context) {
	book, err := getMoneyBook(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketOrderResponse{
			Error: &e,
		})
		return
	}

	var data PocketOrderEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketOrderResponse{
			Error: &e,
		})
		return
	}

	err = models.ReorderPockets(models.DB, book.ID, data.PocketIDs)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketOrderResponse{
			Error: &e,
		})
		return
	}

	pockets, err := book.OrderedPockets(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PocketOrderResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Pocket, 0, len(pockets))
	for _, pocket := range pockets {
		apiResources = append(apiResources, newPocket(c, pocket))
	}

	c.JSON(http.StatusOK, PocketOrderResponse{Data: apiResources})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Money Books
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/money-books/{id}/allocation-preview [options]
func OptionsAllocationPreview(c *gin.Context) {
	resourceOptionsDetail(c, models.MoneyBook{}, httputil.OptionsGet)
}

// @Summary		Preview allocation
// @Description	Computes how a source amount would be split across the pockets of the money book without storing anything
// @Tags			Money Books
// @Produce		json
// @Success		200				{object}	AllocationPreviewResponse
// @Failure		400				{object}	AllocationPreviewResponse
// @Failure		404				{object}	AllocationPreviewResponse
// @Failure		500				{object}	AllocationPreviewResponse
// @Param			id				path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			sourceAmount	query		int		true	"The amount to split, in the smallest currency unit"
// @Router			/v1/money-books/{id}/allocation-preview [get]
func GetAllocationPreview(c *gin.Context) {
	book, err := getMoneyBook(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationPreviewResponse{
			Error: &e,
		})
		return
	}

	value, ok := c.GetQuery("sourceAmount")
	if !ok {
		e := errSourceAmountMissing.Error()
		c.JSON(http.StatusBadRequest, AllocationPreviewResponse{
			Error: &e,
		})
		return
	}

	sourceAmount, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		e := fmt.Errorf("%w: %w", errSourceAmountInvalid, err).Error()
		c.JSON(http.StatusBadRequest, AllocationPreviewResponse{
			Error: &e,
		})
		return
	}

	items, err := models.PreviewAllocation(models.DB, book.ID, sourceAmount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationPreviewResponse{
			Error: &e,
		})
		return
	}

	tag := format.Locale(book.Locale)
	apiItems := make([]AllocationItem, 0, len(items))
	for _, item := range items {
		apiItems = append(apiItems, newAllocationItem(item, book.Currency, tag))
	}

	c.JSON(http.StatusOK, AllocationPreviewResponse{
		Data: &AllocationPreview{
			SourceAmount:          sourceAmount,
			SourceAmountFormatted: format.Currency(sourceAmount, book.Currency, tag),
			Items:                 apiItems,
		},
	})
}
