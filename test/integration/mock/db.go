package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

var once sync.Once
var database *Db

// Db is a shared in-memory SQLite store reset between scenarios.
type Db struct {
	Database *db.Database
	DbConn   *gorm.DB
	models   map[string]any
}

// NewDb opens the shared in-memory store once and migrates the expense tables.
func NewDb(name string) *Db {
	once.Do(func() {
		database = open(name)
	})
	return database
}

func open(name string) *Db {
	conn, err := db.NewConnection(&config.DatabaseConfig{
		URL: fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", name),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}
	if err := conn.Migrate(); err != nil {
		panic("failed to migrate database. err: " + err.Error())
	}

	newDbMock := &Db{
		Database: conn,
		DbConn:   conn.DB(),
		models: map[string]any{
			"expenses":   &model.ExpenseModel{},
			"categories": &model.CategoryModel{},
		},
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB removes every row from the migrated tables.
func (d *Db) ClearDB() error {
	for table, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
