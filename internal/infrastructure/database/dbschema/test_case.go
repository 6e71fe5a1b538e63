package dbschema

import (
	"time"

	"testhub/internal/domain/testcase"
	"testhub/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&TestCase{})
}

// TestCase is the persisted form of a test case definition. Deleting a
// case cascades to its executions.
type TestCase struct {
	ID             uint   `gorm:"primaryKey"`
	Title          string `gorm:"type:varchar(255);not null;index"`
	Description    string `gorm:"type:text"`
	Prerequisites  string `gorm:"type:text"`
	Steps          string `gorm:"type:text;not null"`
	ExpectedResult string `gorm:"type:text;not null"`
	TestType       string `gorm:"type:varchar(16);not null;default:manual;index"`
	Priority       string `gorm:"type:varchar(16);not null;default:medium;index"`
	CreatedBy      string `gorm:"type:varchar(128)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Executions []TestExecution `gorm:"foreignKey:TestCaseID;constraint:OnDelete:CASCADE"`
}

// EtoD converts schema model to domain representation.
func (c *TestCase) EtoD() *testcase.TestCase {
	if c == nil {
		return nil
	}
	return &testcase.TestCase{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Prerequisites:  c.Prerequisites,
		Steps:          c.Steps,
		ExpectedResult: c.ExpectedResult,
		TestType:       testcase.CaseType(c.TestType),
		Priority:       testcase.Priority(c.Priority),
		CreatedBy:      c.CreatedBy,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// TestCaseDtoE converts domain model to schema representation.
func TestCaseDtoE(c *testcase.TestCase) *TestCase {
	if c == nil {
		return nil
	}
	return &TestCase{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Prerequisites:  c.Prerequisites,
		Steps:          c.Steps,
		ExpectedResult: c.ExpectedResult,
		TestType:       string(c.TestType),
		Priority:       string(c.Priority),
		CreatedBy:      c.CreatedBy,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
