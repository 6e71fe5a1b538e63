package jiralinkrepo

import (
	"context"

	"gorm.io/gorm"

	"testhub/internal/domain/jiralink"
	"testhub/internal/infrastructure/database/dbschema"
	"testhub/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewJiraLinkGormRepository(db *gorm.DB) jiralink.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, link *jiralink.JiraLink) (*jiralink.JiraLink, error) {
	model := dbschema.JiraLinkDtoE(link)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create jira link")
	}
	return model.EtoD(), nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*jiralink.JiraLink, error) {
	var model dbschema.JiraLink
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to fetch jira link")
	}
	return model.EtoD(), nil
}

func (r *Repository) FindMany(ctx context.Context, filter jiralink.Filter) ([]jiralink.JiraLink, error) {
	tx := r.db.WithContext(ctx).Model(&dbschema.JiraLink{})
	if filter.TestCaseID != nil {
		tx = tx.Where("test_case_id = ?", *filter.TestCaseID)
	}
	if filter.TestExecutionID != nil {
		tx = tx.Where("test_execution_id = ?", *filter.TestExecutionID)
	}
	if filter.JiraIssueKey != "" {
		tx = tx.Where("jira_issue_key = ?", filter.JiraIssueKey)
	}

	var models []dbschema.JiraLink
	if err := tx.Order("id ASC").Find(&models).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list jira links")
	}

	links := make([]jiralink.JiraLink, 0, len(models))
	for _, m := range models {
		links = append(links, *m.EtoD())
	}
	return links, nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&dbschema.JiraLink{}, id).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete jira link")
	}
	return nil
}
