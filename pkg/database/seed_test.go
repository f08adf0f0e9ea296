package database_test

import (
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/testutil"
	"firstaid_backend/pkg/database"
	"testing"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	if err := db.Model(&model.Achievement{}).Where("title = ?", "First Steps").Update("icon", "custom.png").Error; err != nil {
		t.Fatalf("update icon: %v", err)
	}

	if err := database.Seed(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	counts := map[string]struct {
		model interface{}
		want  int64
	}{
		"modules":      {&model.Module{}, 10},
		"scenarios":    {&model.Scenario{}, 3},
		"achievements": {&model.Achievement{}, 9},
	}
	for name, c := range counts {
		var got int64
		if err := db.Model(c.model).Count(&got).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if got != c.want {
			t.Fatalf("expected %d %s, got %d", c.want, name, got)
		}
	}

	var a model.Achievement
	if err := db.Where("title = ?", "First Steps").First(&a).Error; err != nil {
		t.Fatalf("load achievement: %v", err)
	}
	if a.Icon != "custom.png" {
		t.Fatalf("seed overwrote edited icon: %q", a.Icon)
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := database.LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	for _, m := range c.Modules {
		if m.PassingScore <= 0 || m.PassingScore > m.MaxScore {
			t.Fatalf("module %s has invalid thresholds %d/%d", m.Slug, m.PassingScore, m.MaxScore)
		}
	}
	if len(c.Modules)+len(c.Scenarios) != 13 {
		t.Fatalf("expected 13 catalog items, got %d", len(c.Modules)+len(c.Scenarios))
	}
}
