package dbschema

import (
	"time"

	"testhub/internal/domain/execution"
	"testhub/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&TestExecution{})
}

// TestExecution joins a plan and a case with one recorded run.
// Deleting an execution cascades to its step results.
type TestExecution struct {
	ID         uint   `gorm:"primaryKey"`
	TestPlanID uint   `gorm:"not null;index"`
	TestCaseID uint   `gorm:"not null;index"`
	Status     string `gorm:"type:varchar(16);not null;default:pending;index"`
	ExecutedAt *time.Time
	ExecutedBy string `gorm:"type:varchar(128)"`
	Duration   *int
	Notes      string `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Results []TestResult `gorm:"foreignKey:ExecutionID;constraint:OnDelete:CASCADE"`
}

// EtoD converts schema model to domain representation.
func (e *TestExecution) EtoD() *execution.Execution {
	if e == nil {
		return nil
	}
	return &execution.Execution{
		ID:         e.ID,
		TestPlanID: e.TestPlanID,
		TestCaseID: e.TestCaseID,
		Status:     execution.Status(e.Status),
		ExecutedAt: e.ExecutedAt,
		ExecutedBy: e.ExecutedBy,
		Duration:   e.Duration,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// TestExecutionDtoE converts domain model to schema representation.
func TestExecutionDtoE(e *execution.Execution) *TestExecution {
	if e == nil {
		return nil
	}
	return &TestExecution{
		ID:         e.ID,
		TestPlanID: e.TestPlanID,
		TestCaseID: e.TestCaseID,
		Status:     string(e.Status),
		ExecutedAt: e.ExecutedAt,
		ExecutedBy: e.ExecutedBy,
		Duration:   e.Duration,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
