package repository_test

import (
	"errors"
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/repository"
	"firstaid_backend/internal/testutil"
	"testing"

	"gorm.io/gorm"
)

func TestCreateDuplicateUsername(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserRepository(db)
	testutil.CreateUser(t, db, "alice", "password123")

	err := repo.Create(&model.User{Username: "alice", Password: "x", Role: model.Student})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}

	exists, err := repo.ExistsByUsername("alice")
	if err != nil || !exists {
		t.Fatalf("exists: %v %v", exists, err)
	}
}
