package models

import "gorm.io/gorm"

// AutoMigrate creates or updates tables for the relational backend
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Request{},
		&Session{},
	)
}
