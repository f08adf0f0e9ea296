package model

// ScenarioPassingScore is the same for every scenario.
const ScenarioPassingScore = 33

// swagger:model Module
type Module struct {
	BaseModel
	Title        string `gorm:"size:100;not null" json:"title"`
	Slug         string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	MaxScore     int    `gorm:"not null;default:50" json:"maxScore"`
	PassingScore int    `gorm:"not null;default:60" json:"passingScore"`
}

func (Module) TableName() string {
	return "modules"
}

// swagger:model Scenario
type Scenario struct {
	BaseModel
	Title string `gorm:"size:100;not null" json:"title"`
	Slug  string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
}

func (Scenario) TableName() string {
	return "scenarios"
}

func (Scenario) PassingScore() int {
	return ScenarioPassingScore
}
