package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/moneybooks/backend/internal/allocation"
	"github.com/moneybooks/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allocation records how a source amount was split across the pockets of a
// money book. Allocations are never updated, only created and deleted.
type Allocation struct {
	DefaultModel
	MoneyBookID  uuid.UUID `gorm:"index"`
	SourceAmount int64
	Date         types.Date
	Note         string
	Items        []AllocationItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// AllocationItem is the amount one pocket received in an allocation.
//
// Name and percentage of the pocket are copied so that the item stays
// unchanged when the pocket is edited or deleted.
type AllocationItem struct {
	DefaultModel
	AllocationID     uuid.UUID  `gorm:"index"`
	PocketID         *uuid.UUID `gorm:"index"`
	Pocket           *Pocket    `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	PocketName       string
	PocketPercentage decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Amount           int64
	OrderIndex       int
}

func (a *Allocation) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	err := checkSourceAmount(a.SourceAmount)
	if err != nil {
		return err
	}

	if a.Date.IsZero() {
		a.Date = types.Today()
	}

	a.Note = strings.TrimSpace(a.Note)

	return tx.First(&MoneyBook{}, a.MoneyBookID).Error
}

func (a *Allocation) BeforeUpdate(_ *gorm.DB) error {
	return ErrAllocationImmutable
}

func (i *AllocationItem) BeforeUpdate(_ *gorm.DB) error {
	return ErrAllocationImmutable
}

// WithItems preloads the items of allocations in their allocation order.
func WithItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("allocation_items.order_index ASC")
	})
}

// checkSourceAmount verifies that the amount can be split exactly.
func checkSourceAmount(amount int64) error {
	if amount < 0 {
		return ErrAllocationSourceAmountNegative
	}

	if amount > allocation.MaxSourceAmount {
		return ErrAllocationSourceAmountTooLarge
	}

	return nil
}

// PreviewAllocation computes the items an allocation of sourceAmount would
// have for the money book, without writing anything.
func PreviewAllocation(db *gorm.DB, moneyBookID uuid.UUID, sourceAmount int64) ([]AllocationItem, error) {
	err := checkSourceAmount(sourceAmount)
	if err != nil {
		return nil, err
	}

	var book MoneyBook
	err = db.First(&book, moneyBookID).Error
	if err != nil {
		return nil, err
	}

	pockets, err := book.OrderedPockets(db)
	if err != nil {
		return nil, err
	}

	if len(pockets) == 0 {
		return nil, ErrAllocationNoPockets
	}

	percentages := make([]decimal.Decimal, 0, len(pockets))
	shares := make([]allocation.Share[uuid.UUID], 0, len(pockets))
	for _, p := range pockets {
		percentages = append(percentages, p.Percentage)
		shares = append(shares, allocation.Share[uuid.UUID]{ID: p.ID, Percentage: p.Percentage.InexactFloat64()})
	}

	if valid, total := allocation.CheckPercentages(percentages); !valid {
		return nil, fmt.Errorf("%w, the current total is %s%%", ErrPocketPercentagesInvalid, total)
	}

	amounts := allocation.Split(sourceAmount, shares)
	items := make([]AllocationItem, 0, len(amounts))
	for i, a := range amounts {
		pocketID := a.ID
		items = append(items, AllocationItem{
			PocketID:         &pocketID,
			PocketName:       pockets[i].Name,
			PocketPercentage: pockets[i].Percentage,
			Amount:           a.Amount,
			OrderIndex:       i,
		})
	}

	return items, nil
}

// CreateAllocation splits the source amount of the allocation across the
// pockets of its money book and stores the allocation with its items.
//
// Computing the split and writing header and items happen in a single
// transaction. Items set on the allocation passed in are ignored.
func CreateAllocation(db *gorm.DB, a Allocation) (Allocation, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		items, err := PreviewAllocation(tx, a.MoneyBookID, a.SourceAmount)
		if err != nil {
			return err
		}

		a.Items = items
		return tx.Create(&a).Error
	})
	if err != nil {
		return Allocation{}, generalError(err)
	}

	return a, nil
}

// Returns all allocations on this instance for export
func (Allocation) Export() (json.RawMessage, error) {
	return export[Allocation]()
}

// Returns all allocation items on this instance for export
func (AllocationItem) Export() (json.RawMessage, error) {
	return export[AllocationItem]()
}
