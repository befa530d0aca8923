package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/moneybooks/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestPocketCreate() {
	book := suite.createTestMoneyBook(models.MoneyBook{})

	tests := []struct {
		name       string
		pocket     models.Pocket
		err        error
		wantedName string
	}{
		{"Trimmed name", models.Pocket{MoneyBookID: book.ID, Name: " Needs\t", Percentage: decimal.NewFromInt(50)}, nil, "Needs"},
		{"Zero percent", models.Pocket{MoneyBookID: book.ID, Name: "Nothing"}, nil, "Nothing"},
		{"Hundred percent", models.Pocket{MoneyBookID: book.ID, Name: "Everything", Percentage: decimal.NewFromInt(100)}, nil, "Everything"},
		{"Empty name", models.Pocket{MoneyBookID: book.ID, Name: "  ", Percentage: decimal.NewFromInt(10)}, models.ErrPocketNameEmpty, ""},
		{"Negative percentage", models.Pocket{MoneyBookID: book.ID, Name: "Negative", Percentage: decimal.NewFromInt(-1)}, models.ErrPocketPercentageRange, ""},
		{"Percentage too large", models.Pocket{MoneyBookID: book.ID, Name: "Large", Percentage: decimal.RequireFromString("100.01")}, models.ErrPocketPercentageRange, ""},
		{"Non-existing money book", models.Pocket{MoneyBookID: uuid.New(), Name: "Orphan"}, models.ErrResourceNotFound, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			pocket := tt.pocket
			err := models.DB.Create(&pocket).Error
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}

			require.Nil(t, err)
			assert.Equal(t, tt.wantedName, pocket.Name)
		})
	}
}

func (suite *TestSuiteStandard) TestPocketNameUnique() {
	book := suite.createTestMoneyBook(models.MoneyBook{})
	other := suite.createTestMoneyBook(models.MoneyBook{Name: "Other"})

	suite.createTestPocket(models.Pocket{MoneyBookID: book.ID, Name: "Savings"})

	err := models.DB.Create(&models.Pocket{MoneyBookID: book.ID, Name: "Savings"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrPocketNameNotUnique)

	// The same name in another money book is fine
	err = models.DB.Create(&models.Pocket{MoneyBookID: other.ID, Name: "Savings"}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestPocketUpdate() {
	book := suite.createTestMoneyBook(models.MoneyBook{})
	pocket := suite.createTestPocket(models.Pocket{MoneyBookID: book.ID, Name: "Fun", Percentage: decimal.NewFromInt(10)})

	tests := []struct {
		name   string
		fields []any
		data   models.Pocket
		err    error
	}{
		{"Valid percentage", []any{"Percentage"}, models.Pocket{Percentage: decimal.NewFromInt(20)}, nil},
		{"Invalid percentage", []any{"Percentage"}, models.Pocket{Percentage: decimal.NewFromInt(101)}, models.ErrPocketPercentageRange},
		{"Empty name", []any{"Name"}, models.Pocket{Name: " "}, models.ErrPocketNameEmpty},
		{"Invalid money book", []any{"MoneyBookID"}, models.Pocket{MoneyBookID: uuid.New()}, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Model(&pocket).Select("", tt.fields...).Updates(tt.data).Error
			if tt.err == nil {
				assert.Nil(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestPocketUpdateTrimsName() {
	book := suite.createTestMoneyBook(models.MoneyBook{})
	pocket := suite.createTestPocket(models.Pocket{MoneyBookID: book.ID, Name: "Fun"})

	err := models.DB.Model(&pocket).Select("Name").Updates(models.Pocket{Name: "  Games "}).Error
	require.Nil(suite.T(), err)

	var stored models.Pocket
	require.Nil(suite.T(), models.DB.First(&stored, pocket.ID).Error)
	assert.Equal(suite.T(), "Games", stored.Name)
}

func (suite *TestSuiteStandard) TestReorderPockets() {
	book, pockets := suite.createTestBookWithPockets("50", "30", "20")

	err := models.ReorderPockets(models.DB, book.ID, []uuid.UUID{pockets[2].ID, pockets[0].ID, pockets[1].ID})
	require.Nil(suite.T(), err)

	ordered, err := book.OrderedPockets(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), ordered, 3)
	assert.Equal(suite.T(), pockets[2].ID, ordered[0].ID)
	assert.Equal(suite.T(), pockets[0].ID, ordered[1].ID)
	assert.Equal(suite.T(), pockets[1].ID, ordered[2].ID)

	for i, p := range ordered {
		assert.Equal(suite.T(), i, p.OrderIndex)
	}
}

func (suite *TestSuiteStandard) TestReorderPocketsMismatch() {
	book, pockets := suite.createTestBookWithPockets("50", "50")
	_, otherPockets := suite.createTestBookWithPockets("100")

	tests := []struct {
		name string
		ids  []uuid.UUID
	}{
		{"Missing pocket", []uuid.UUID{pockets[0].ID}},
		{"Duplicate pocket", []uuid.UUID{pockets[0].ID, pockets[0].ID}},
		{"Pocket of other money book", []uuid.UUID{pockets[0].ID, otherPockets[0].ID}},
		{"Too many pockets", []uuid.UUID{pockets[0].ID, pockets[1].ID, otherPockets[0].ID}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.ReorderPockets(models.DB, book.ID, tt.ids)
			assert.ErrorIs(t, err, models.ErrPocketOrderMismatch)
		})
	}
}

func (suite *TestSuiteStandard) TestReorderPocketsNoMoneyBook() {
	err := models.ReorderPockets(models.DB, uuid.New(), []uuid.UUID{})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
