package mock

import (
	"fmt"
	"sync/atomic"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-records/backend/internal/integration/persistence/model"
)

var dbCounter atomic.Int64

// Db wraps an in-memory sqlite database migrated to the application schema.
// Every call to NewDb opens a fresh database, so scenarios stay isolated.
type Db struct {
	Conn *gorm.DB
}

func NewDb() (*Db, error) {
	dsn := fmt.Sprintf("file:scenario%d?mode=memory&cache=shared", dbCounter.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	if err := conn.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.RecordModel{},
		&model.RecordHistoryModel{},
		&model.RefreshTokenModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return &Db{Conn: conn}, nil
}
