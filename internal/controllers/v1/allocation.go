package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneybooks/backend/internal/events"
	"github.com/moneybooks/backend/internal/httputil"
	"github.com/moneybooks/backend/internal/models"
	"github.com/moneybooks/backend/internal/types"
	"gorm.io/gorm"
)

func RegisterAllocationRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsAllocations)
		r.GET("", GetAllocations)
		r.POST("", CreateAllocations)
	}
	{
		r.OPTIONS("/:id", OptionsAllocationDetail)
		r.GET("/:id", GetAllocation)
		r.DELETE("/:id", DeleteAllocation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Router			/v1/allocations [options]
func OptionsAllocations(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [options]
func OptionsAllocationDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Allocation{}, httputil.OptionsGetDelete)
}

// @Summary		Create allocations
// @Description	Splits the source amounts across the pockets of the money books and stores the results
// @Tags			Allocations
// @Produce		json
// @Success		201			{object}	AllocationCreateResponse
// @Failure		400			{object}	AllocationCreateResponse
// @Failure		404			{object}	AllocationCreateResponse
// @Failure		500			{object}	AllocationCreateResponse
// @Param			allocations	body		[]AllocationEditable	true	"Allocations"
// @Router			/v1/allocations [post]
func CreateAllocations(c *gin.Context) {
	var allocations []AllocationEditable

	err := httputil.BindData(c, &allocations)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AllocationCreateResponse{}
	books := moneyBookCache{}

	for _, create := range allocations {
		allocation, err := models.CreateAllocation(models.DB, create.model())
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		allocationsCreated.Inc()
		allocatedAmount.Add(float64(allocation.SourceAmount))
		events.PublishLogged(c.Request.Context(), publisher, events.New(events.AllocationCreated, allocation.ID, allocation.MoneyBookID))

		book, err := books.get(allocation.MoneyBookID)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newAllocation(c, allocation, book)
		r.Data = append(r.Data, AllocationResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get allocations
// @Description	Returns a list of allocations, newest first
// @Tags			Allocations
// @Produce		json
// @Success		200				{object}	AllocationListResponse
// @Failure		400				{object}	AllocationListResponse
// @Failure		500				{object}	AllocationListResponse
// @Router			/v1/allocations [get]
// @Param			moneyBook		query	string	false	"Filter by money book ID"
// @Param			sourceAmount	query	int		false	"Filter by source amount"
// @Param			fromDate		query	string	false	"Allocations on and after this date, YYYY-MM-DD"
// @Param			untilDate		query	string	false	"Allocations on and before this date, YYYY-MM-DD"
// @Param			offset			query	uint	false	"The offset of the first allocation returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of allocations to return. Defaults to 50."
func GetAllocations(c *gin.Context) {
	var filter AllocationQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()
	q := models.DB.
		Order("date(allocations.date) DESC, allocations.created_at DESC").
		Where(&where, queryFields...)

	if filter.FromDate != "" {
		fromDate, err := types.ParseDate(filter.FromDate)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, AllocationListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("date(allocations.date) >= date(?)", fromDate)
	}

	if filter.UntilDate != "" {
		untilDate, err := types.ParseDate(filter.UntilDate)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, AllocationListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("date(allocations.date) <= date(?)", untilDate)
	}

	var count int64
	err := q.Session(&gorm.Session{}).Model(&models.Allocation{}).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &e,
		})
		return
	}

	limit := queryLimit(setFields, filter.Limit)

	var allocations []models.Allocation
	err = models.WithItems(q).Offset(int(filter.Offset)).Limit(limit).Find(&allocations).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &e,
		})
		return
	}

	books := moneyBookCache{}
	data := make([]Allocation, 0, len(allocations))
	for _, allocation := range allocations {
		book, err := books.get(allocation.MoneyBookID)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), AllocationListResponse{
				Error: &e,
			})
			return
		}

		data = append(data, newAllocation(c, allocation, book))
	}

	c.JSON(http.StatusOK, AllocationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func getAllocation(c *gin.Context) (models.Allocation, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Allocation{}, err
	}

	var allocation models.Allocation
	err = models.WithItems(models.DB).First(&allocation, uri.ID.UUID).Error
	if err != nil {
		return models.Allocation{}, err
	}

	return allocation, nil
}

// @Summary		Get allocation
// @Description	Returns a specific allocation with its items
// @Tags			Allocations
// @Produce		json
// @Success		200	{object}	AllocationResponse
// @Failure		400	{object}	AllocationResponse
// @Failure		404	{object}	AllocationResponse
// @Failure		500	{object}	AllocationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [get]
func GetAllocation(c *gin.Context) {
	allocation, err := getAllocation(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	var book models.MoneyBook
	err = models.DB.First(&book, allocation.MoneyBookID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &e,
		})
		return
	}

	apiResource := newAllocation(c, allocation, book)
	c.JSON(http.StatusOK, AllocationResponse{Data: &apiResource})
}

// @Summary		Delete allocation
// @Description	Deletes an allocation with all its items
// @Tags			Allocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [delete]
func DeleteAllocation(c *gin.Context) {
	allocation, err := getAllocation(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&allocation).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.PublishLogged(c.Request.Context(), publisher, events.New(events.AllocationDeleted, allocation.ID, allocation.MoneyBookID))
	c.Status(http.StatusNoContent)
}

// moneyBookCache loads every money book at most once per request.
type moneyBookCache map[uuid.UUID]models.MoneyBook

func (m moneyBookCache) get(id uuid.UUID) (models.MoneyBook, error) {
	if book, ok := m[id]; ok {
		return book, nil
	}

	var book models.MoneyBook
	err := models.DB.First(&book, id).Error
	if err != nil {
		return models.MoneyBook{}, err
	}

	m[id] = book
	return book, nil
}
