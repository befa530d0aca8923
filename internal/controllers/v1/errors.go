package v1

import (
	"errors"
	"net/http"

	"github.com/moneybooks/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
	errSourceAmountMissing = errors.New("the sourceAmount query parameter must be set")
	errSourceAmountInvalid = errors.New("the sourceAmount must be a whole number in the smallest currency unit")
)
