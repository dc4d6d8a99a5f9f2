package database

import (
	"testing"

	"guia-piracicaba-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := CreateSQLiteTables(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestConnectSQLite(t *testing.T) {
	db, err := Connect("sqlite://file::memory:")
	if err != nil {
		t.Fatalf("expected sqlite connection, got %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if db.Dialector.Name() != "sqlite" {
		t.Errorf("expected sqlite dialector, got %s", db.Dialector.Name())
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("expected sqlite migration to succeed, got %v", err)
	}
	if !db.Migrator().HasTable("businesses") {
		t.Error("expected businesses table to exist")
	}
}

func TestCreateSQLiteTablesIdempotent(t *testing.T) {
	db := setupTestDB(t)
	if err := CreateSQLiteTables(db); err != nil {
		t.Fatalf("second run should be a no-op, got %v", err)
	}
}

func TestCreateDefaultAdminNew(t *testing.T) {
	db := setupTestDB(t)

	if err := CreateDefaultAdmin(db, "admin@guia.test", "password123"); err != nil {
		t.Fatal(err)
	}

	var user models.User
	if err := db.Where("email = ?", "admin@guia.test").First(&user).Error; err != nil {
		t.Fatal("admin not created")
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected role admin, got %s", user.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
		t.Error("password should be stored as a bcrypt hash of the given password")
	}
}

func TestCreateDefaultAdminAlreadyExists(t *testing.T) {
	db := setupTestDB(t)

	if err := CreateDefaultAdmin(db, "existing@guia.test", "password123"); err != nil {
		t.Fatal(err)
	}
	if err := CreateDefaultAdmin(db, "existing@guia.test", "password123"); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "existing@guia.test").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 admin, got %d", count)
	}
}

func TestCreateDefaultAdminRandomPassword(t *testing.T) {
	db := setupTestDB(t)

	if err := CreateDefaultAdmin(db, "random@guia.test", ""); err != nil {
		t.Fatal(err)
	}

	var user models.User
	if err := db.Where("email = ?", "random@guia.test").First(&user).Error; err != nil {
		t.Fatal("admin not created with random password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("")); err == nil {
		t.Error("empty password must not be accepted")
	}
}

func TestCreateSampleBusinessesNew(t *testing.T) {
	db := setupTestDB(t)

	if err := CreateSampleBusinesses(db); err != nil {
		t.Fatal(err)
	}

	var businesses []models.Business
	db.Order("code").Find(&businesses)
	if len(businesses) != 3 {
		t.Fatalf("expected 3 sample businesses, got %d", len(businesses))
	}
	if businesses[0].Code != "001" {
		t.Errorf("expected first code 001, got %s", businesses[0].Code)
	}
	for _, b := range businesses {
		if b.BusinessHours != models.SummarizeSchedule(b.Schedule) {
			t.Errorf("business %s: hours %q out of sync with schedule", b.Name, b.BusinessHours)
		}
		if b.Address == "" {
			t.Errorf("business %s: expected composed address", b.Name)
		}
	}
}

func TestCreateSampleBusinessesAlreadySeeded(t *testing.T) {
	db := setupTestDB(t)

	CreateSampleBusinesses(db)
	if err := CreateSampleBusinesses(db); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&models.Business{}).Count(&count)
	if count != 3 {
		t.Errorf("expected 3 businesses, got %d", count)
	}
}
