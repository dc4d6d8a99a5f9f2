package database

import (
	"gorm.io/gorm"
)

// sqliteTables mirrors the gorm models with SQLite-compatible DDL. AutoMigrate cannot be
// used on SQLite because the model tags carry PostgreSQL defaults like gen_random_uuid().
var sqliteTables = []string{
	`CREATE TABLE IF NOT EXISTS "users" (
		"id" TEXT PRIMARY KEY,
		"email" TEXT NOT NULL UNIQUE,
		"password" TEXT NOT NULL,
		"name" TEXT,
		"role" TEXT DEFAULT 'merchant',
		"business_id" TEXT,
		"is_blocked" INTEGER DEFAULT 0,
		"created_at" DATETIME,
		"updated_at" DATETIME,
		"deleted_at" DATETIME
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON "users"("deleted_at")`,
	`CREATE INDEX IF NOT EXISTS idx_users_business_id ON "users"("business_id")`,

	`CREATE TABLE IF NOT EXISTS "businesses" (
		"id" TEXT PRIMARY KEY,
		"code" TEXT,
		"name" TEXT NOT NULL,
		"username" TEXT,
		"category" TEXT NOT NULL,
		"segment" TEXT,
		"street" TEXT,
		"number" TEXT,
		"neighborhood" TEXT,
		"postal_code" TEXT,
		"address" TEXT,
		"latitude" REAL,
		"longitude" REAL,
		"phone" TEXT,
		"description" TEXT,
		"image_url" TEXT,
		"logo_url" TEXT,
		"rating" REAL,
		"review_count" INTEGER,
		"is_active" INTEGER DEFAULT 1,
		"offers_delivery" INTEGER DEFAULT 0,
		"offers_pickup" INTEGER DEFAULT 0,
		"is_24h" INTEGER DEFAULT 0,
		"is_official" INTEGER DEFAULT 0,
		"is_sponsor" INTEGER DEFAULT 0,
		"schedule" TEXT,
		"business_hours" TEXT,
		"views" INTEGER DEFAULT 0,
		"created_at" DATETIME,
		"updated_at" DATETIME,
		"deleted_at" DATETIME
	)`,
	`CREATE INDEX IF NOT EXISTS idx_businesses_deleted_at ON "businesses"("deleted_at")`,
	`CREATE INDEX IF NOT EXISTS idx_businesses_category ON "businesses"("category")`,
	`CREATE INDEX IF NOT EXISTS idx_businesses_neighborhood ON "businesses"("neighborhood")`,

	`CREATE TABLE IF NOT EXISTS "customers" (
		"id" TEXT PRIMARY KEY,
		"name" TEXT NOT NULL,
		"phone" TEXT NOT NULL UNIQUE,
		"neighborhood" TEXT,
		"created_at" DATETIME
	)`,
}

// CreateSQLiteTables creates all tables on a SQLite connection (local development and tests).
func CreateSQLiteTables(db *gorm.DB) error {
	for _, sql := range sqliteTables {
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}
