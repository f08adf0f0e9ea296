package service_test

import (
	"bytes"
	"context"
	"errors"
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/service"
	"firstaid_backend/internal/testutil"
	"firstaid_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestGetAchievementsReportsNewUnlocksOnce(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "alice", "password123")

	// Progress written directly, as if the grant after submit had been missed.
	db.Create(&model.UserModuleProgress{UserID: user.ID, ModuleID: testutil.MustModule(t, db, "burns_quiz").ID,
		Progress: model.Progress{Score: 100, Completed: true, Attempts: 1}})

	view, err := svc.achievement.GetAchievements(ctx, user.ID)
	if err != nil {
		t.Fatalf("achievements: %v", err)
	}
	if len(view.Achievements) != 9 {
		t.Fatalf("expected full catalog of 9, got %d", len(view.Achievements))
	}
	if view.UnlockedCount != 2 || len(view.NewlyUnlocked) != 2 {
		t.Fatalf("expected First Steps and Perfect Score, got %+v", view.NewlyUnlocked)
	}
	for _, st := range view.Achievements {
		want := st.Achievement.Title == service.AchievementFirstSteps || st.Achievement.Title == service.AchievementPerfectScore
		if st.Achieved != want {
			t.Fatalf("%s achieved=%v", st.Achievement.Title, st.Achieved)
		}
	}

	again, err := svc.achievement.GetAchievements(ctx, user.ID)
	if err != nil {
		t.Fatalf("achievements again: %v", err)
	}
	if again.UnlockedCount != 2 || len(again.NewlyUnlocked) != 0 {
		t.Fatalf("second view should report nothing new: %+v", again)
	}
}

func TestConcurrentCheckAndGrantWritesEachTitleOnce(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "alice", "password123")

	for _, slug := range moduleSlugs {
		db.Create(&model.UserModuleProgress{UserID: user.ID, ModuleID: testutil.MustModule(t, db, slug).ID,
			Progress: model.Progress{Score: 100, Completed: true, Attempts: 1}})
	}

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted []model.Achievement
		errs    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlocked, err := svc.achievement.CheckAndGrant(ctx, user.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			granted = append(granted, unlocked...)
		}()
	}
	wg.Wait()
	if len(errs) > 0 {
		t.Fatalf("check and grant: %v", errs[0])
	}

	// First Steps, Life Saver, Expert Medic, Academic Ace and Perfect Score.
	want := []string{
		service.AchievementFirstSteps,
		service.AchievementLifeSaver,
		service.AchievementExpertMedic,
		service.AchievementAcademicAce,
		service.AchievementPerfectScore,
	}
	if len(granted) != len(want) {
		t.Fatalf("expected %d grants across all callers, got %d", len(want), len(granted))
	}
	for _, title := range want {
		if countTitle(granted, title) != 1 {
			t.Fatalf("%s reported %d times", title, countTitle(granted, title))
		}
	}

	var rows []struct {
		AchievementID uint
		N             int64
	}
	db.Model(&model.UserAchievement{}).
		Select("achievement_id, count(*) as n").
		Where("user_id = ?", user.ID).
		Group("achievement_id").
		Scan(&rows)
	if len(rows) != len(want) {
		t.Fatalf("expected %d granted titles, got %d", len(want), len(rows))
	}
	for _, r := range rows {
		if r.N != 1 {
			t.Fatalf("achievement %d has %d grant rows", r.AchievementID, r.N)
		}
	}
}

func TestCheckAndGrantSkipsMissingCatalogEntries(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "alice", "password123")

	if err := db.Where("title = ?", service.AchievementFirstSteps).Delete(&model.Achievement{}).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}
	db.Create(&model.UserModuleProgress{UserID: user.ID, ModuleID: testutil.MustModule(t, db, "burns_quiz").ID,
		Progress: model.Progress{Score: 70, Completed: true, Attempts: 1}})

	unlocked, err := svc.achievement.CheckAndGrant(ctx, user.ID)
	if err != nil {
		t.Fatalf("a missing title must not be an error: %v", err)
	}
	if len(unlocked) != 0 {
		t.Fatalf("nothing grantable, got %+v", unlocked)
	}
}

func TestUpdateIconStoresImage(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	ctx := context.Background()

	var ach model.Achievement
	db.Where("title = ?", service.AchievementAllStar).First(&ach)

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	updated, err := svc.achievement.UpdateIcon(ctx, ach.ID, "Star.PNG", bytes.NewReader(png), int64(len(png)))
	if err != nil {
		t.Fatalf("update icon: %v", err)
	}
	if !strings.HasPrefix(updated.Icon, "/uploads/achievements/") || !strings.HasSuffix(updated.Icon, ".png") {
		t.Fatalf("unexpected icon url %q", updated.Icon)
	}

	local := svc.achievement.Storage.Provider.(*service.LocalStorageProvider)
	stored := filepath.Join(local.Config.LocalPath, strings.TrimPrefix(updated.Icon, "/uploads/"))
	data, err := os.ReadFile(stored)
	if err != nil || !bytes.Equal(data, png) {
		t.Fatalf("stored file mismatch: %v", err)
	}

	var reloaded model.Achievement
	db.First(&reloaded, ach.ID)
	if reloaded.Icon != updated.Icon {
		t.Fatalf("icon not persisted: %q", reloaded.Icon)
	}
}

func TestUpdateIconReplacesPreviousUpload(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	ctx := context.Background()
	local := svc.achievement.Storage.Provider.(*service.LocalStorageProvider)
	storedPath := func(url string) string {
		return filepath.Join(local.Config.LocalPath, strings.TrimPrefix(url, "/uploads/"))
	}

	var ach model.Achievement
	db.Where("title = ?", service.AchievementTrailblazer).First(&ach)
	if _, ok := svc.achievement.Storage.ObjectName(ach.Icon); ok {
		t.Fatalf("seeded icon %q is not a stored object", ach.Icon)
	}

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{1}, 32)...)
	first, err := svc.achievement.UpdateIcon(ctx, ach.ID, "a.png", bytes.NewReader(png), int64(len(png)))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	firstPath := storedPath(first.Icon)
	if _, err := os.Stat(firstPath); err != nil {
		t.Fatalf("first icon not stored: %v", err)
	}

	second, err := svc.achievement.UpdateIcon(ctx, ach.ID, "b.png", bytes.NewReader(png), int64(len(png)))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second.Icon == first.Icon {
		t.Fatal("replacement should get a new object name")
	}
	if _, err := os.Stat(firstPath); !os.IsNotExist(err) {
		t.Fatalf("replaced icon should be deleted, stat err=%v", err)
	}
	if _, err := os.Stat(storedPath(second.Icon)); err != nil {
		t.Fatalf("new icon not stored: %v", err)
	}
}

func TestUpdateIconRejects(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	ctx := context.Background()

	text := []byte("definitely not an image")
	if _, err := svc.achievement.UpdateIcon(ctx, 1, "x.png", bytes.NewReader(text), int64(len(text))); !errors.Is(err, util.ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
	if _, err := svc.achievement.UpdateIcon(ctx, 999, "x.png", bytes.NewReader(text), int64(len(text))); !errors.Is(err, util.ErrAchievementNotFound) {
		t.Fatalf("expected ErrAchievementNotFound, got %v", err)
	}
}
