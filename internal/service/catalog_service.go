package service

import (
	"errors"
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/repository"
	"firstaid_backend/internal/util"

	"gorm.io/gorm"
)

type CatalogService struct {
	CatalogRepo  *repository.CatalogRepository
	ProgressRepo *repository.ProgressRepository
}

func NewCatalogService(catalogRepo *repository.CatalogRepository, progressRepo *repository.ProgressRepository) *CatalogService {
	return &CatalogService{
		CatalogRepo:  catalogRepo,
		ProgressRepo: progressRepo,
	}
}

type ModulesView struct {
	Modules          []model.Module `json:"modules"`
	CompletedModules []string       `json:"completedModules"`
}

type ScenarioStatus struct {
	Scenario  model.Scenario `json:"scenario"`
	Score     int            `json:"score"`
	Completed bool           `json:"completed"`
	Attempts  int            `json:"attempts"`
}

// ListModules returns the catalog and the titles of the modules the user has passed.
func (s *CatalogService) ListModules(userID uint) (*ModulesView, error) {
	modules, err := s.CatalogRepo.ListModules()
	if err != nil {
		return nil, err
	}
	rows, err := s.ProgressRepo.ListModuleProgress(userID)
	if err != nil {
		return nil, err
	}

	view := &ModulesView{Modules: modules, CompletedModules: []string{}}
	for _, row := range rows {
		if row.Completed && row.Module != nil {
			view.CompletedModules = append(view.CompletedModules, row.Module.Title)
		}
	}
	return view, nil
}

func (s *CatalogService) ListScenarios(userID uint) ([]ScenarioStatus, error) {
	scenarios, err := s.CatalogRepo.ListScenarios()
	if err != nil {
		return nil, err
	}
	rows, err := s.ProgressRepo.ListScenarioProgress(userID)
	if err != nil {
		return nil, err
	}

	byScenario := make(map[uint]model.Progress, len(rows))
	for _, row := range rows {
		byScenario[row.ScenarioID] = row.Progress
	}

	out := make([]ScenarioStatus, 0, len(scenarios))
	for _, sc := range scenarios {
		p := byScenario[sc.ID]
		out = append(out, ScenarioStatus{
			Scenario:  sc,
			Score:     p.Score,
			Completed: p.Completed,
			Attempts:  p.Attempts,
		})
	}
	return out, nil
}

// ModuleDetail returns the module and the user's row for it, creating an empty
// row on first view.
func (s *CatalogService) ModuleDetail(userID uint, slug string) (*ProgressSnapshot, error) {
	module, err := s.CatalogRepo.FindModuleBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	row, err := s.ProgressRepo.EnsureModuleProgress(userID, module.ID, false)
	if err != nil {
		return nil, err
	}
	snap := newSnapshot(KindModule, module.Slug, module.Title, module.PassingScore, row.Progress)
	return &snap, nil
}

func (s *CatalogService) ScenarioDetail(userID uint, slug string) (*ProgressSnapshot, error) {
	scenario, err := s.CatalogRepo.FindScenarioBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScenarioNotFound
		}
		return nil, err
	}

	row, err := s.ProgressRepo.EnsureScenarioProgress(userID, scenario.ID, false)
	if err != nil {
		return nil, err
	}
	snap := newSnapshot(KindScenario, scenario.Slug, scenario.Title, scenario.PassingScore(), row.Progress)
	return &snap, nil
}
