package dbschema

import (
	"time"

	"testhub/internal/domain/testplan"
	"testhub/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&TestPlan{})
}

// TestPlan is the persisted form of a test plan. Deleting a plan
// cascades to its executions.
type TestPlan struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(255);not null;index"`
	Description string `gorm:"type:text"`
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    bool `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Executions []TestExecution `gorm:"foreignKey:TestPlanID;constraint:OnDelete:CASCADE"`
}

// EtoD converts schema model to domain representation.
func (p *TestPlan) EtoD() *testplan.TestPlan {
	if p == nil {
		return nil
	}
	return &testplan.TestPlan{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// TestPlanDtoE converts domain model to schema representation.
func TestPlanDtoE(p *testplan.TestPlan) *TestPlan {
	if p == nil {
		return nil
	}
	return &TestPlan{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
