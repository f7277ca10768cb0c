// Package mock provides in-memory stand-ins for external dependencies used
// by the BDD suite.
package mock

import (
	"database/sql"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/billtrack/recurring-engine/internal/integration/persistence/model"
)

var dbOnce sync.Once
var dbConn *gorm.DB

// NewDb opens a shared in-memory SQLite database migrated with the service
// schema. The connection is shared across scenarios; call ClearDb between
// them.
func NewDb() *gorm.DB {
	dbOnce.Do(func() {
		dbConn = openDb()
	})
	return dbConn
}

func openDb() *gorm.DB {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := conn.AutoMigrate(
		&model.TransactionModel{},
		&model.RecurringExpenseModel{},
		&model.MatchedInstanceModel{},
	); err != nil {
		panic("failed to migrate database. err: " + err.Error())
	}

	return conn
}

// ClearDb truncates every table so scenarios start from a clean slate.
func ClearDb(db *gorm.DB) error {
	for _, table := range []string{"matched_instances", "recurring_expenses", "transactions"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
