package models

import (
	"errors"
	"fmt"

	"github.com/moneybooks/backend/internal/allocation"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrMoneyBookNameEmpty = errors.New("the money book name must not be empty")

	ErrPocketNameEmpty          = errors.New("the pocket name must not be empty")
	ErrPocketNameNotUnique      = errors.New("the pocket name must be unique for the money book")
	ErrPocketPercentageRange    = errors.New("the pocket percentage must be between 0 and 100")
	ErrPocketPercentagesInvalid = errors.New("the pocket percentages of the money book must sum up to 100")
	ErrPocketOrderMismatch      = errors.New("the pocket order must contain every pocket of the money book exactly once")

	ErrAllocationSourceAmountNegative = errors.New("the source amount must not be negative")
	ErrAllocationSourceAmountTooLarge = fmt.Errorf("the source amount must not be larger than %d", allocation.MaxSourceAmount)
	ErrAllocationNoPockets            = errors.New("the money book needs at least one pocket to allocate money")
	ErrAllocationImmutable            = errors.New("allocations cannot be changed. Delete the allocation and create a new one instead")
)
