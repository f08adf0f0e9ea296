package repository

import (
	"firstaid_backend/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository reads the seeded modules and scenarios.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) FindModuleBySlug(slug string) (*model.Module, error) {
	var m model.Module
	err := r.DB.Where("slug = ?", slug).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CatalogRepository) FindScenarioBySlug(slug string) (*model.Scenario, error) {
	var s model.Scenario
	err := r.DB.Where("slug = ?", slug).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepository) ListModules() ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Order("id ASC").Find(&modules).Error
	return modules, err
}

func (r *CatalogRepository) ListScenarios() ([]model.Scenario, error) {
	var scenarios []model.Scenario
	err := r.DB.Order("id ASC").Find(&scenarios).Error
	return scenarios, err
}

func (r *CatalogRepository) CountModules() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Module{}).Count(&count).Error
	return count, err
}
