package service_test

import (
	"context"
	"errors"
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/service"
	"firstaid_backend/internal/testutil"
	"firstaid_backend/internal/util"
	"sync"
	"testing"
)

func TestSubmitModuleKeepsBestScore(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	user := testutil.CreateUser(t, db, "alice", "password123")
	ctx := context.Background()

	first, err := svc.progress.SubmitModule(ctx, user.ID, "burns_quiz", service.Submission{Score: 40})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if !first.Improved || first.Progress.Score != 40 || first.Progress.Attempts != 1 {
		t.Fatalf("unexpected first result: %+v", first)
	}

	second, err := svc.progress.SubmitModule(ctx, user.ID, "burns_quiz", service.Submission{Score: 35})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	p := second.Progress
	if second.Improved || p.Score != 40 || p.Completed || p.Attempts != 2 {
		t.Fatalf("expected score 40, not completed, 2 attempts; got %+v", p)
	}

	var rows []model.UserModuleProgress
	db.Where("user_id = ?", user.ID).Find(&rows)
	if len(rows) != 1 || rows[0].Score != 40 || rows[0].Attempts != 2 {
		t.Fatalf("stored rows: %+v", rows)
	}
}

func TestSubmitModuleCompletesAndTracksTime(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	user := testutil.CreateUser(t, db, "alice", "password123")
	ctx := context.Background()

	res, err := svc.progress.SubmitModule(ctx, user.ID, "choking_quiz", service.Submission{Score: 80, TimeSpent: intPtr(45)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Progress.Completed || *res.Progress.TimeSpent != 45 {
		t.Fatalf("unexpected progress: %+v", res.Progress)
	}
	if countTitle(res.NewAchievements, service.AchievementFirstSteps) != 1 {
		t.Fatalf("first completion should unlock First Steps, got %+v", res.NewAchievements)
	}

	res, err = svc.progress.SubmitModule(ctx, user.ID, "choking_quiz", service.Submission{Score: 20, TimeSpent: intPtr(12)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Progress.Score != 80 || *res.Progress.TimeSpent != 12 {
		t.Fatalf("expected faster time with unchanged score, got %+v", res.Progress)
	}
	if countTitle(res.NewAchievements, service.AchievementQuickThinker) != 1 {
		t.Fatalf("fast completed module should unlock Quick Thinker, got %+v", res.NewAchievements)
	}
	if countTitle(res.NewAchievements, service.AchievementFirstSteps) != 0 {
		t.Fatal("First Steps must not be granted twice")
	}
}

func TestConcurrentSubmitsToSameModule(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	user := testutil.CreateUser(t, db, "alice", "password123")
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sub := service.Submission{Score: i * 5, TimeSpent: intPtr(100 + i)}
			if _, err := svc.progress.SubmitModule(ctx, user.ID, "choking_quiz", sub); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("submit: %v", err)
	}

	var rows []model.UserModuleProgress
	db.Where("user_id = ?", user.ID).Find(&rows)
	if len(rows) != 1 {
		t.Fatalf("expected one progress row, got %d", len(rows))
	}
	p := rows[0].Progress
	if p.Attempts != n || p.Score != n*5 || !p.Completed {
		t.Fatalf("expected %d attempts and score %d, got %+v", n, n*5, p)
	}
	if p.TimeSpent == nil || *p.TimeSpent != 101 {
		t.Fatalf("expected fastest time 101, got %v", p.TimeSpent)
	}
}

func TestSubmitScenarioUsesFixedPassingScore(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	user := testutil.CreateUser(t, db, "alice", "password123")
	ctx := context.Background()

	res, err := svc.progress.SubmitScenario(ctx, user.ID, "hiking_scenario", service.Submission{Score: 32})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Progress.Completed || res.Progress.PassingScore != model.ScenarioPassingScore {
		t.Fatalf("32 should not pass a scenario: %+v", res.Progress)
	}

	res, err = svc.progress.SubmitScenario(ctx, user.ID, "hiking_scenario", service.Submission{Score: 33})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Progress.Completed || res.Progress.Attempts != 2 {
		t.Fatalf("33 should pass: %+v", res.Progress)
	}
	if countTitle(res.NewAchievements, service.AchievementTrailblazer) != 1 {
		t.Fatalf("first scenario should unlock Trailblazer, got %+v", res.NewAchievements)
	}
}

func TestSubmitUnknownSlug(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	user := testutil.CreateUser(t, db, "alice", "password123")
	ctx := context.Background()

	if _, err := svc.progress.SubmitModule(ctx, user.ID, "nope", service.Submission{Score: 10}); !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
	if _, err := svc.progress.SubmitScenario(ctx, user.ID, "nope", service.Submission{Score: 10}); !errors.Is(err, util.ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}

	var count int64
	db.Model(&model.UserModuleProgress{}).Count(&count)
	if count != 0 {
		t.Fatalf("no progress rows expected, got %d", count)
	}
}

func TestTenModulesGrantLifeSaverOnce(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	user := testutil.CreateUser(t, db, "alice", "password123")
	ctx := context.Background()

	granted := 0
	for _, slug := range moduleSlugs {
		res, err := svc.progress.SubmitModule(ctx, user.ID, slug, service.Submission{Score: 60})
		if err != nil {
			t.Fatalf("submit %s: %v", slug, err)
		}
		granted += countTitle(res.NewAchievements, service.AchievementLifeSaver)
	}
	if granted != 1 {
		t.Fatalf("Life Saver granted %d times during submissions", granted)
	}

	res, err := svc.progress.SubmitModule(ctx, user.ID, "burns_quiz", service.Submission{Score: 70})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if len(res.NewAchievements) != 0 {
		t.Fatalf("nothing new expected, got %+v", res.NewAchievements)
	}

	view, err := svc.achievement.GetAchievements(ctx, user.ID)
	if err != nil {
		t.Fatalf("achievements: %v", err)
	}
	if len(view.NewlyUnlocked) != 0 {
		t.Fatalf("re-evaluation should not grant again, got %v", view.NewlyUnlocked)
	}

	var rows int64
	db.Model(&model.UserAchievement{}).
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id").
		Where("user_achievements.user_id = ? AND achievements.title = ?", user.ID, service.AchievementLifeSaver).
		Count(&rows)
	if rows != 1 {
		t.Fatalf("expected one Life Saver row, got %d", rows)
	}
}

func TestExpertMedicAtExactlyThousand(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	user := testutil.CreateUser(t, db, "alice", "password123")
	ctx := context.Background()

	for _, slug := range moduleSlugs[:9] {
		if _, err := svc.progress.SubmitModule(ctx, user.ID, slug, service.Submission{Score: 100}); err != nil {
			t.Fatalf("submit %s: %v", slug, err)
		}
	}
	res, err := svc.progress.SubmitScenario(ctx, user.ID, "restaurant_scenario", service.Submission{Score: 99})
	if err != nil {
		t.Fatalf("submit scenario: %v", err)
	}
	if countTitle(res.NewAchievements, service.AchievementExpertMedic) != 0 {
		t.Fatal("999 points must not unlock Expert Medic")
	}

	res, err = svc.progress.SubmitScenario(ctx, user.ID, "restaurant_scenario", service.Submission{Score: 100})
	if err != nil {
		t.Fatalf("submit scenario: %v", err)
	}
	if countTitle(res.NewAchievements, service.AchievementExpertMedic) != 1 {
		t.Fatalf("1000 points should unlock Expert Medic, got %+v", res.NewAchievements)
	}
}

func TestDetailCreatesEmptyProgress(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	user := testutil.CreateUser(t, db, "alice", "password123")

	snap, err := svc.catalog.ModuleDetail(user.ID, "poison_quiz")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if snap.Score != 0 || snap.Attempts != 0 || snap.Completed || snap.Title != "Poisoning" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if _, err := svc.catalog.ModuleDetail(user.ID, "poison_quiz"); err != nil {
		t.Fatalf("second detail: %v", err)
	}

	var count int64
	db.Model(&model.UserModuleProgress{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row after two views, got %d", count)
	}

	if _, err := svc.catalog.ScenarioDetail(user.ID, "missing"); !errors.Is(err, util.ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestCatalogListings(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newServices(t, db, nil)
	user := testutil.CreateUser(t, db, "alice", "password123")
	ctx := context.Background()

	svc.progress.SubmitModule(ctx, user.ID, "burns_quiz", service.Submission{Score: 90})
	svc.progress.SubmitModule(ctx, user.ID, "wounds_quiz", service.Submission{Score: 10})
	svc.progress.SubmitScenario(ctx, user.ID, "burns_scenario", service.Submission{Score: 50})

	modules, err := svc.catalog.ListModules(user.ID)
	if err != nil {
		t.Fatalf("list modules: %v", err)
	}
	if len(modules.Modules) != 10 || len(modules.CompletedModules) != 1 || modules.CompletedModules[0] != "Burns" {
		t.Fatalf("unexpected modules view: %d modules, completed %v", len(modules.Modules), modules.CompletedModules)
	}

	scenarios, err := svc.catalog.ListScenarios(user.ID)
	if err != nil {
		t.Fatalf("list scenarios: %v", err)
	}
	if len(scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(scenarios))
	}
	for _, s := range scenarios {
		want := s.Scenario.Slug == "burns_scenario"
		if s.Completed != want || (want && s.Score != 50) {
			t.Fatalf("unexpected scenario status: %+v", s)
		}
	}
}
