package database

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"guia-piracicaba-backend/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

// Connect opens PostgreSQL, or SQLite when the DSN starts with "sqlite://" (local development).
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=guia_piracicaba port=5432 sslmode=disable"
	}

	cfg := &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, sqlitePrefix) {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		return CreateSQLiteTables(db)
	}

	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Customer{},
	)
}

// CreateDefaultAdmin creates the admin account if no user has the given email.
// An empty password is replaced by a random one that is logged once.
func CreateDefaultAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "admin@guiapiracicaba.com.br"
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	if password == "" {
		buf := make([]byte, 12)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		password = hex.EncodeToString(buf)
		logrus.WithField("email", email).Warnf("ADMIN_PASSWORD not set, generated password: %s", password)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		Name:     "Administrador",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logrus.WithField("email", email).Info("Default admin created")
	return nil
}

// CreateSampleBusinesses seeds a few listings when the directory is empty.
func CreateSampleBusinesses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Business{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	lat := func(v float64) *float64 { return &v }

	samples := []models.Business{
		{
			Name:           "Padaria Rua do Porto",
			Category:       models.CategoryFood,
			Segment:        "Padaria",
			Street:         "Rua do Porto",
			Number:         "250",
			Neighborhood:   "Centro",
			Phone:          "1934220000",
			Latitude:       lat(-22.7180),
			Longitude:      lat(-47.6560),
			OffersDelivery: true,
			OffersPickup:   true,
			Schedule:       models.DefaultSchedule(),
		},
		{
			Name:         "Farmácia Paulista",
			Category:     models.CategoryHealth,
			Segment:      "Farmácia",
			Street:       "Avenida Independência",
			Number:       "1500",
			Neighborhood: "Alto",
			Phone:        "1934330000",
			Latitude:     lat(-22.7270),
			Longitude:    lat(-47.6440),
			Is24h:        true,
			Schedule:     models.DefaultSchedule(),
		},
		{
			Name:         "Prefeitura de Piracicaba",
			Category:     models.CategoryServices,
			Segment:      "Serviço público",
			Street:       "Rua Capitão Antônio Corrêa Barbosa",
			Number:       "2233",
			Neighborhood: "Chácara Nazareth",
			Phone:        "1934031000",
			IsOfficial:   true,
			Schedule:     models.DefaultSchedule(),
		},
	}

	for i := range samples {
		samples[i].Code = models.FormatCode(int64(i + 1))
		if err := db.Create(&samples[i]).Error; err != nil {
			return fmt.Errorf("seed business %q: %w", samples[i].Name, err)
		}
	}

	logrus.WithField("count", len(samples)).Info("Sample businesses created")
	return nil
}
