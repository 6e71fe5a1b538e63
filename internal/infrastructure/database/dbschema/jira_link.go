package dbschema

import (
	"time"

	"testhub/internal/domain/jiralink"
	"testhub/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&JiraLink{})
}

// JiraLink associates an issue with a case and/or execution. Links are
// not cascade-deleted; removing a parent clears the reference instead.
type JiraLink struct {
	ID              uint   `gorm:"primaryKey"`
	JiraProjectKey  string `gorm:"type:varchar(64);not null"`
	JiraIssueKey    string `gorm:"type:varchar(64);not null;index"`
	TestCaseID      *uint  `gorm:"index"`
	TestExecutionID *uint  `gorm:"index"`
	CreatedAt       time.Time

	TestCase      *TestCase      `gorm:"foreignKey:TestCaseID;constraint:OnDelete:SET NULL"`
	TestExecution *TestExecution `gorm:"foreignKey:TestExecutionID;constraint:OnDelete:SET NULL"`
}

// EtoD converts schema model to domain representation.
func (l *JiraLink) EtoD() *jiralink.JiraLink {
	if l == nil {
		return nil
	}
	return &jiralink.JiraLink{
		ID:              l.ID,
		JiraProjectKey:  l.JiraProjectKey,
		JiraIssueKey:    l.JiraIssueKey,
		TestCaseID:      l.TestCaseID,
		TestExecutionID: l.TestExecutionID,
		CreatedAt:       l.CreatedAt,
	}
}

// JiraLinkDtoE converts domain model to schema representation.
func JiraLinkDtoE(l *jiralink.JiraLink) *JiraLink {
	if l == nil {
		return nil
	}
	return &JiraLink{
		ID:              l.ID,
		JiraProjectKey:  l.JiraProjectKey,
		JiraIssueKey:    l.JiraIssueKey,
		TestCaseID:      l.TestCaseID,
		TestExecutionID: l.TestExecutionID,
		CreatedAt:       l.CreatedAt,
	}
}
