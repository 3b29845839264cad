package db

import (
	"friender/pkg/models"

	"gorm.io/gorm"
)

type DB interface {
	GetDB() *gorm.DB
}

// MySQLDatabase 구조체
type MySQLDatabase struct {
	DB *gorm.DB
}

func (m *MySQLDatabase) GetDB() *gorm.DB {
	return m.DB
}

// Migrate creates the users table and both edge tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Like{}, &models.Dislike{})
}
