package models

import (
	"encoding/json"
	"strings"

	"github.com/moneybooks/backend/internal/allocation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultCurrency = "Rp"
	DefaultLocale   = "id"
)

// MoneyBook is the container that pockets and allocations belong to.
type MoneyBook struct {
	DefaultModel
	UserID      string       `gorm:"index"`
	Name        string
	Currency    string
	Locale      string
	Pockets     []Pocket     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Allocations []Allocation `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (m *MoneyBook) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return ErrMoneyBookNameEmpty
	}

	if m.Currency == "" {
		m.Currency = DefaultCurrency
	}

	if m.Locale == "" {
		m.Locale = DefaultLocale
	}

	return nil
}

func (m *MoneyBook) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(MoneyBook)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Name") {
		name := strings.TrimSpace(toSave.Name)
		if name == "" {
			return ErrMoneyBookNameEmpty
		}
		tx.Statement.SetColumn("Name", name)
	}

	return nil
}

// OrderedPockets returns the pockets of the money book in allocation order.
func (m MoneyBook) OrderedPockets(db *gorm.DB) ([]Pocket, error) {
	var pockets []Pocket
	err := db.
		Where(&Pocket{MoneyBookID: m.ID}).
		Order("order_index ASC, created_at ASC").
		Find(&pockets).Error
	if err != nil {
		return nil, err
	}

	return pockets, nil
}

// PocketPercentages returns the sum of all pocket percentages and if that
// sum is accepted for allocations.
func (m MoneyBook) PocketPercentages(db *gorm.DB) (bool, decimal.Decimal, error) {
	pockets, err := m.OrderedPockets(db)
	if err != nil {
		return false, decimal.Zero, err
	}

	percentages := make([]decimal.Decimal, 0, len(pockets))
	for _, p := range pockets {
		percentages = append(percentages, p.Percentage)
	}

	valid, total := allocation.CheckPercentages(percentages)
	return valid, total, nil
}

// Returns all money books on this instance for export
func (MoneyBook) Export() (json.RawMessage, error) {
	return export[MoneyBook]()
}
