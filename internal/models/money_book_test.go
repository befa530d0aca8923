package models_test

import (
	"testing"

	"github.com/moneybooks/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMoneyBookDefaults() {
	book := suite.createTestMoneyBook(models.MoneyBook{Name: "  Household \t"})

	assert.Equal(suite.T(), "Household", book.Name)
	assert.Equal(suite.T(), models.DefaultCurrency, book.Currency)
	assert.Equal(suite.T(), models.DefaultLocale, book.Locale)
}

func (suite *TestSuiteStandard) TestMoneyBookKeepsCurrency() {
	book := suite.createTestMoneyBook(models.MoneyBook{Name: "Travel", Currency: "€", Locale: "de"})

	assert.Equal(suite.T(), "€", book.Currency)
	assert.Equal(suite.T(), "de", book.Locale)
}

func (suite *TestSuiteStandard) TestMoneyBookNameEmpty() {
	err := models.DB.Create(&models.MoneyBook{Name: "   "}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMoneyBookNameEmpty)
}

func (suite *TestSuiteStandard) TestMoneyBookUpdateName() {
	book := suite.createTestMoneyBook(models.MoneyBook{})

	err := models.DB.Model(&book).Select("Name").Updates(models.MoneyBook{Name: "  Renamed "}).Error
	require.Nil(suite.T(), err)

	var stored models.MoneyBook
	require.Nil(suite.T(), models.DB.First(&stored, book.ID).Error)
	assert.Equal(suite.T(), "Renamed", stored.Name)

	err = models.DB.Model(&book).Select("Name").Updates(models.MoneyBook{Name: ""}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMoneyBookNameEmpty)
}

func (suite *TestSuiteStandard) TestMoneyBookPocketPercentages() {
	tests := []struct {
		name        string
		percentages []string
		valid       bool
		total       string
	}{
		{"No pockets", []string{}, false, "0"},
		{"Full", []string{"50", "30", "20"}, true, "100"},
		{"Thirds", []string{"33.33", "33.33", "33.34"}, true, "100"},
		{"Missing", []string{"50", "30"}, false, "80"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			book, _ := suite.createTestBookWithPockets(tt.percentages...)

			valid, total, err := book.PocketPercentages(models.DB)
			require.Nil(t, err)
			assert.Equal(t, tt.valid, valid)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(total), "Total is %s, expected %s", total, tt.total)
		})
	}
}

func (suite *TestSuiteStandard) TestMoneyBookOrderedPockets() {
	book := suite.createTestMoneyBook(models.MoneyBook{})
	suite.createTestPocket(models.Pocket{MoneyBookID: book.ID, Name: "Second", OrderIndex: 1})
	suite.createTestPocket(models.Pocket{MoneyBookID: book.ID, Name: "First", OrderIndex: 0})
	suite.createTestPocket(models.Pocket{MoneyBookID: book.ID, Name: "Third", OrderIndex: 2})

	pockets, err := book.OrderedPockets(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), pockets, 3)
	assert.Equal(suite.T(), "First", pockets[0].Name)
	assert.Equal(suite.T(), "Second", pockets[1].Name)
	assert.Equal(suite.T(), "Third", pockets[2].Name)
}

// TestMoneyBookDeleteCascades verifies that pockets, allocations and
// allocation items are deleted together with their money book.
func (suite *TestSuiteStandard) TestMoneyBookDeleteCascades() {
	book, _ := suite.createTestBookWithPockets("60", "40")
	_, err := models.CreateAllocation(models.DB, models.Allocation{MoneyBookID: book.ID, SourceAmount: 1000})
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), models.DB.Delete(&book).Error)

	for _, model := range []any{&models.Pocket{}, &models.Allocation{}, &models.AllocationItem{}} {
		var count int64
		require.Nil(suite.T(), models.DB.Model(model).Count(&count).Error)
		assert.Equal(suite.T(), int64(0), count, "%T was not deleted", model)
	}
}
