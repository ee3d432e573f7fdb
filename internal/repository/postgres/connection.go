package postgres

import (
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// One bounded pool shared by all sessions instead of a connection per
	// operation; each session still sees plain blocking calls.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(16)
	sqlDB.SetMaxIdleConns(8)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate idempotently creates the three tables, the cascading foreign
// keys and the unique indexes. Existing data is never touched.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.UserInfo{},
		&domain.AttendanceRecord{},
	)
}

// TableExists reports whether the named table is present in the schema.
func TableExists(db *gorm.DB, name string) bool {
	return db.Migrator().HasTable(name)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Users:      NewUserRepository(db),
		Attendance: NewAttendanceRepository(db),
	}
}
