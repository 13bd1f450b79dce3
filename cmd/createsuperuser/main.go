package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/MeetupServices/meetup-scheduler/internal/config"
	dbpkg "github.com/MeetupServices/meetup-scheduler/internal/db"
	"github.com/MeetupServices/meetup-scheduler/internal/domain/user"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

// Bootstraps the admin account from SUPERUSER_* env vars. Skips
// silently when no password is set or the account already exists, so
// it is safe to run on every deploy.
func main() {

	cfg := config.Load()

	if cfg.SuperuserPassword == "" {
		log.Println("SUPERUSER_PASSWORD not set, skipping superuser creation")
		return
	}

	db := dbpkg.NewDB(cfg)

	var count int64
	db.Model(&models.User{}).Where("username = ?", cfg.SuperuserUsername).Count(&count)
	if count > 0 {
		log.Printf("superuser %q already exists, skipping", cfg.SuperuserUsername)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperuserPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := models.User{
		Username:     cfg.SuperuserUsername,
		Email:        cfg.SuperuserEmail,
		PasswordHash: string(hashed),
		Role:         string(user.RoleAdmin),
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}

	log.Printf("superuser %q created", admin.Username)
}
