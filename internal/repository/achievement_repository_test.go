package repository_test

import (
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/repository"
	"firstaid_backend/internal/testutil"
	"testing"
)

func TestGrantIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "alice", "password123")
	repo := repository.NewAchievementRepository(db)

	all, err := repo.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 9 {
		t.Fatalf("expected 9 seeded achievements, got %d", len(all))
	}

	granted, err := repo.Grant(user.ID, all[0].ID)
	if err != nil || !granted {
		t.Fatalf("first grant: granted=%v err=%v", granted, err)
	}
	for i := 0; i < 3; i++ {
		granted, err = repo.Grant(user.ID, all[0].ID)
		if err != nil {
			t.Fatalf("repeat grant: %v", err)
		}
		if granted {
			t.Fatalf("repeat grant must not report a new row")
		}
	}

	var count int64
	db.Model(&model.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one grant row, got %d", count)
	}

	earned, err := repo.EarnedIDs(user.ID)
	if err != nil {
		t.Fatalf("earned ids: %v", err)
	}
	if !earned[all[0].ID] || len(earned) != 1 {
		t.Fatalf("unexpected earned set: %v", earned)
	}

	mine, err := repo.FindByUserID(user.ID)
	if err != nil {
		t.Fatalf("find by user: %v", err)
	}
	if len(mine) != 1 || mine[0].Title != all[0].Title {
		t.Fatalf("unexpected user achievements: %+v", mine)
	}
}

func TestUpdateIcon(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAchievementRepository(db)

	all, _ := repo.FindAll()
	if err := repo.UpdateIcon(all[1].ID, "/uploads/achievements/x.png"); err != nil {
		t.Fatalf("update icon: %v", err)
	}
	got, err := repo.FindByID(all[1].ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Icon != "/uploads/achievements/x.png" {
		t.Fatalf("icon not updated: %q", got.Icon)
	}
}
