package dbschema

import (
	"time"

	"testhub/internal/domain/execution"
	"testhub/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&TestResult{})
}

// TestResult is one step-level outcome. Step numbers are not unique
// within an execution; rendering sorts by them.
type TestResult struct {
	ID              uint   `gorm:"primaryKey"`
	ExecutionID     uint   `gorm:"not null;index"`
	StepNumber      int    `gorm:"not null"`
	StepDescription string `gorm:"type:text;not null"`
	Status          string `gorm:"type:varchar(16);not null"`
	ScreenshotURL   string `gorm:"type:varchar(512)"`
	Notes           string `gorm:"type:text"`
	CreatedAt       time.Time
}

// EtoD converts schema model to domain representation.
func (r *TestResult) EtoD() *execution.StepResult {
	if r == nil {
		return nil
	}
	return &execution.StepResult{
		ID:              r.ID,
		ExecutionID:     r.ExecutionID,
		StepNumber:      r.StepNumber,
		StepDescription: r.StepDescription,
		Status:          execution.Status(r.Status),
		ScreenshotURL:   r.ScreenshotURL,
		Notes:           r.Notes,
	}
}

// TestResultDtoE converts domain model to schema representation.
func TestResultDtoE(r *execution.StepResult) *TestResult {
	if r == nil {
		return nil
	}
	return &TestResult{
		ID:              r.ID,
		ExecutionID:     r.ExecutionID,
		StepNumber:      r.StepNumber,
		StepDescription: r.StepDescription,
		Status:          string(r.Status),
		ScreenshotURL:   r.ScreenshotURL,
		Notes:           r.Notes,
	}
}
