package db

import (
	"log"
	"time"

	"github.com/MeetupServices/meetup-scheduler/internal/config"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.TimeSlot{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// At most one confirmed booking per slot; a racing second claim
	// fails on this index even if it slips past the conditional update.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_confirmed_slot
        ON bookings (slot_id)
        WHERE status = 'confirmed'
    `)

	return db
}
