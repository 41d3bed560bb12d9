package database

import (
	"seatlab/internal/layouts"
	"seatlab/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&layouts.LayoutRecord{},
	)
}
