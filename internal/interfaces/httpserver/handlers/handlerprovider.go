package handlers

import (
	"github.com/google/wire"

	"testhub/internal/interfaces/httpserver/handlers/apikeyhandler"
	"testhub/internal/interfaces/httpserver/handlers/casehandler"
	"testhub/internal/interfaces/httpserver/handlers/executionhandler"
	"testhub/internal/interfaces/httpserver/handlers/integrationhandler"
	"testhub/internal/interfaces/httpserver/handlers/jirahandler"
	"testhub/internal/interfaces/httpserver/handlers/planhandler"
	"testhub/internal/interfaces/httpserver/handlers/reporthandler"
)

var HandlerProvider = wire.NewSet(
	planhandler.NewHandler,
	casehandler.NewHandler,
	executionhandler.NewHandler,
	reporthandler.NewHandler,
	jirahandler.NewHandler,
	apikeyhandler.NewHandler,
	integrationhandler.NewHandler,
)
