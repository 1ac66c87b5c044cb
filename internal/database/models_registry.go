package database

import "murmur/internal/models"

// PersistentModels returns every model that is persisted to the database.
// AutoMigrate and the test harness both migrate from this single list so
// they cannot drift apart.
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
		&models.Conversation{},
		&models.Message{},
		&models.Media{},
	}
}
