package database

import (
	_ "embed"
	"errors"
	"firstaid_backend/internal/model"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed/catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Modules []struct {
		Title        string `yaml:"title"`
		Slug         string `yaml:"slug"`
		MaxScore     int    `yaml:"max_score"`
		PassingScore int    `yaml:"passing_score"`
	} `yaml:"modules"`
	Scenarios []struct {
		Title string `yaml:"title"`
		Slug  string `yaml:"slug"`
	} `yaml:"scenarios"`
	Achievements []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Icon        string `yaml:"icon"`
	} `yaml:"achievements"`
}

func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return &c, nil
}

// Seed inserts catalog rows that are missing, matched by slug or title.
// Existing rows are left untouched so admin edits such as uploaded icons survive.
func Seed(db *gorm.DB) error {
	catalog, err := LoadCatalog()
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range catalog.Modules {
			row := model.Module{Title: m.Title, Slug: m.Slug, MaxScore: m.MaxScore, PassingScore: m.PassingScore}
			if err := firstOrCreate(tx, &model.Module{}, "slug = ?", m.Slug, &row); err != nil {
				return fmt.Errorf("seed module %s: %w", m.Slug, err)
			}
		}
		for _, s := range catalog.Scenarios {
			row := model.Scenario{Title: s.Title, Slug: s.Slug}
			if err := firstOrCreate(tx, &model.Scenario{}, "slug = ?", s.Slug, &row); err != nil {
				return fmt.Errorf("seed scenario %s: %w", s.Slug, err)
			}
		}
		for _, a := range catalog.Achievements {
			row := model.Achievement{Title: a.Title, Description: a.Description, Icon: a.Icon}
			if err := firstOrCreate(tx, &model.Achievement{}, "title = ?", a.Title, &row); err != nil {
				return fmt.Errorf("seed achievement %s: %w", a.Title, err)
			}
		}
		return nil
	})
}

func firstOrCreate(tx *gorm.DB, existing interface{}, query string, arg interface{}, row interface{}) error {
	err := tx.Where(query, arg).First(existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(row).Error
}
