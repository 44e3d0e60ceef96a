package database

import (
	"fmt"
	"log"

	"unicourse_backend/internal/config"
	"unicourse_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate runs the schema migration and seeds the default institution
// chain on an empty database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Institution{},
		&model.School{},
		&model.Faculty{},
		&model.Membership{},
		&model.Course{},
		&model.ApprovalRecord{},
		&model.ApprovalHistory{},
		&model.Notification{},
		&model.AuditLog{},
	)
	if err != nil {
		return err
	}

	// Seed a default institution chain so a fresh install has somewhere
	// to hang courses and memberships.
	var count int64
	db.Model(&model.Institution{}).Count(&count)
	if count == 0 {
		inst := &model.Institution{Name: "Default University", Code: "DEFAULT", IsActive: true}
		if err := db.Create(inst).Error; err != nil {
			return err
		}
		school := &model.School{InstitutionID: inst.ID, Name: "School of Engineering", Code: "ENG", IsActive: true}
		if err := db.Create(school).Error; err != nil {
			return err
		}
		faculty := &model.Faculty{SchoolID: school.ID, InstitutionID: inst.ID, Name: "Computer Science", Code: "CS", IsActive: true}
		if err := db.Create(faculty).Error; err != nil {
			return err
		}
	}

	return nil
}
