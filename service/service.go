package service

import (
	"time"

	"gorm.io/gorm"
)

// Services is the global service container
type Services struct {
	Content  *ContentService
	Settings *SettingsService
	Session  *SessionService
	User     *UserService
}

// GlobalServices is the global service instance
var GlobalServices *Services

// InitServices initializes all services
func InitServices(db *gorm.DB, adminPassword string, sessionTTL time.Duration) {
	userSvc := NewUserService(db)

	GlobalServices = &Services{
		Content:  NewContentService(db),
		Settings: NewSettingsService(db),
		Session:  NewSessionService(db, adminPassword, sessionTTL, userSvc),
		User:     userSvc,
	}
}
