package database

import (
	"fmt"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the terminal's local store. sqlite is the default; mysql
// lets several terminals of one shop share a session store.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported session driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	return db, nil
}

// Migrate creates the tables the terminal owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SessionEntry{}); err != nil {
		return fmt.Errorf("migrate session store: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
