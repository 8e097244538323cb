package mock

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spend-smart/backend/internal/infra/dependency"
	"github.com/spend-smart/backend/internal/integration/persistence/model"
)

var once sync.Once
var db *Db

// Db is the shared in-memory database used by every scenario.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the database once, migrates it and seeds the category vocabulary.
func NewDb() *Db {
	once.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	dbSQL, err := sql.Open("sqlite", "file:spendsmart?mode=memory&cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dependency.PrepareDatabase(context.Background(), dbConn); err != nil {
		panic(fmt.Sprintf("failed to prepare database. err: %s", err.Error()))
	}

	models := make(map[string]any)
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(m); err != nil {
			panic(err)
		}
		models[stmt.Schema.Table] = m
	}

	return &Db{DbConn: dbConn, models: models}
}

// ClearDB deletes everything except categories. The fallback category is
// resolved once at startup, so the vocabulary has to survive between scenarios.
func (d *Db) ClearDB() error {
	for table, m := range d.models {
		if table == "categories" {
			continue
		}
		if err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
