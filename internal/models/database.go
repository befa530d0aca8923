package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DB is the database connection used by all models.
var DB *gorm.DB

type MBContext string

const (
	DBContextURL MBContext = "mb-backend-url"
)

var pluralIES = regexp.MustCompile("ies$")

// Connect opens the SQLite database at dsn, migrates the schema and
// configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	// Migration runs with foreign keys disabled since sqlite does not
	// support ALTER COLUMN. Tables are copied to a temporary table,
	// then the table is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Reconnect with foreign keys enabled. Cascading deletes depend on it
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	callbacks := []struct {
		register func(name string, fn func(*gorm.DB)) error
		name     string
		fn       func(*gorm.DB)
	}{
		{db.Callback().Query().After("*").Register, "money_books:after_query", queryCallback},
		{db.Callback().Query().After("*").Register, "money_books:after_query_general", generalCallback},
		{db.Callback().Create().After("*").Register, "money_books:after_create", createUpdateCallback},
		{db.Callback().Create().After("*").Register, "money_books:after_create_general", generalCallback},
		{db.Callback().Update().After("*").Register, "money_books:after_update", createUpdateCallback},
		{db.Callback().Update().After("*").Register, "money_books:after_update_general", generalCallback},
		{db.Callback().Delete().After("*").Register, "money_books:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		err = c.register(c.name, c.fn)
		if err != nil {
			return fmt.Errorf("registering callback %s failed: %w", c.name, err)
		}
	}

	DB = db
	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = pluralIES.ReplaceAllString(name, "y")
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: pockets.money_book_id, pockets.name") {
		db.Error = ErrPocketNameNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	db.Error = generalError(db.Error)
}

// generalError logs errors of the database itself and replaces them with
// ErrGeneral. All other errors are returned unchanged.
//
// It is used directly where gorm returns errors without running callbacks,
// e.g. when a transaction cannot be started.
func generalError(err error) error {
	if err == nil {
		return nil
	}

	// "sql: database is closed" is hard-coded in the sql module
	if err.Error() == "sql: database is closed" || reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(MoneyBook{}, Pocket{}, Allocation{}, AllocationItem{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
