package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// Pocket is a named, percentage weighted share of a money book.
type Pocket struct {
	DefaultModel
	MoneyBookID uuid.UUID       `gorm:"uniqueIndex:pocket_name_money_book"`
	Name        string          `gorm:"uniqueIndex:pocket_name_money_book"`
	Percentage  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	OrderIndex  int
}

func (p *Pocket) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrPocketNameEmpty
	}

	err := checkPercentage(p.Percentage)
	if err != nil {
		return err
	}

	return tx.First(&MoneyBook{}, p.MoneyBookID).Error
}

func (p *Pocket) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Pocket)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Name") {
		name := strings.TrimSpace(toSave.Name)
		if name == "" {
			return ErrPocketNameEmpty
		}
		tx.Statement.SetColumn("Name", name)
	}

	if tx.Statement.Changed("Percentage") {
		err := checkPercentage(toSave.Percentage)
		if err != nil {
			return err
		}
	}

	if tx.Statement.Changed("MoneyBookID") {
		err := tx.First(&MoneyBook{}, toSave.MoneyBookID).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func checkPercentage(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return fmt.Errorf("%w, got %s", ErrPocketPercentageRange, p)
	}
	return nil
}

// ReorderPockets sets the order of the money book's pockets to the order of
// the IDs passed in. The IDs must be exactly the set of the book's pockets.
func ReorderPockets(db *gorm.DB, moneyBookID uuid.UUID, ids []uuid.UUID) error {
	var book MoneyBook
	err := db.First(&book, moneyBookID).Error
	if err != nil {
		return err
	}

	pockets, err := book.OrderedPockets(db)
	if err != nil {
		return err
	}

	if len(pockets) != len(ids) {
		return ErrPocketOrderMismatch
	}

	for i, id := range ids {
		if slices.Contains(ids[:i], id) {
			return ErrPocketOrderMismatch
		}

		if !slices.ContainsFunc(pockets, func(p Pocket) bool { return p.ID == id }) {
			return ErrPocketOrderMismatch
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			err := tx.Model(&Pocket{}).Where("id = ?", id).Update("order_index", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})

	return generalError(err)
}

// Returns all pockets on this instance for export
func (Pocket) Export() (json.RawMessage, error) {
	return export[Pocket]()
}
