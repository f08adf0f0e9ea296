// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"firstaid_backend/internal/model"
	"firstaid_backend/pkg/database"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the schema migrated and
// the catalog seeded. A single connection keeps the shared-cache database alive
// and serialises writers the way a row lock would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

// CreateUser inserts a student with the given username and password.
func CreateUser(t *testing.T, db *gorm.DB, username, password string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{Username: username, Password: string(hashed), Role: model.Student}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func MustModule(t *testing.T, db *gorm.DB, slug string) *model.Module {
	t.Helper()
	var m model.Module
	if err := db.Where("slug = ?", slug).First(&m).Error; err != nil {
		t.Fatalf("module %s: %v", slug, err)
	}
	return &m
}

func MustScenario(t *testing.T, db *gorm.DB, slug string) *model.Scenario {
	t.Helper()
	var s model.Scenario
	if err := db.Where("slug = ?", slug).First(&s).Error; err != nil {
		t.Fatalf("scenario %s: %v", slug, err)
	}
	return &s
}
