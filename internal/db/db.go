package db

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/models"
)

// Open открывает соединение с БД. В проде — postgres по DB_DSN,
// для локальной разработки и тестов — sqlite (DSN = путь к файлу).
func Open(driver, dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case "postgres", "":
		dial = postgres.Open(dsn)
	case "sqlite", "sqlite3":
		dial = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported db driver %q", driver)
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}
	return db, nil
}

// Migrate создаёт таблицы, если их ещё нет. Безопасно вызывать на каждом старте.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.AdminUser{}, &models.Product{}); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
