package repository

import (
	"github.com/google/wire"

	"testhub/internal/infrastructure/database/repository/apikeyrepo"
	"testhub/internal/infrastructure/database/repository/executionrepo"
	"testhub/internal/infrastructure/database/repository/jiralinkrepo"
	"testhub/internal/infrastructure/database/repository/testcaserepo"
	"testhub/internal/infrastructure/database/repository/testplanrepo"
)

var RepositoryProvider = wire.NewSet(
	testplanrepo.NewTestPlanGormRepository,
	testcaserepo.NewTestCaseGormRepository,
	executionrepo.NewExecutionGormRepository,
	jiralinkrepo.NewJiraLinkGormRepository,
	apikeyrepo.NewAPIKeyGormRepository,
)
