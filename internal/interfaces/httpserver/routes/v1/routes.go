package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/apikey"
	"testhub/internal/interfaces/httpserver/handlers/apikeyhandler"
	"testhub/internal/interfaces/httpserver/handlers/casehandler"
	"testhub/internal/interfaces/httpserver/handlers/executionhandler"
	"testhub/internal/interfaces/httpserver/handlers/integrationhandler"
	"testhub/internal/interfaces/httpserver/handlers/jirahandler"
	"testhub/internal/interfaces/httpserver/handlers/planhandler"
	"testhub/internal/interfaces/httpserver/handlers/reporthandler"
	"testhub/internal/interfaces/httpserver/middlewares"
)

// Routes registers the versioned API surface.
type Routes struct {
	plans        *planhandler.Handler
	cases        *casehandler.Handler
	executions   *executionhandler.Handler
	reports      *reporthandler.Handler
	jira         *jirahandler.Handler
	keys         *apikeyhandler.Handler
	integrations *integrationhandler.Handler
	keyService   *apikey.Service
	logger       zerolog.Logger
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(
	plans *planhandler.Handler,
	cases *casehandler.Handler,
	executions *executionhandler.Handler,
	reports *reporthandler.Handler,
	jira *jirahandler.Handler,
	keys *apikeyhandler.Handler,
	integrations *integrationhandler.Handler,
	keyService *apikey.Service,
	logger zerolog.Logger,
) *Routes {
	return &Routes{
		plans:        plans,
		cases:        cases,
		executions:   executions,
		reports:      reports,
		jira:         jira,
		keys:         keys,
		integrations: integrations,
		keyService:   keyService,
		logger:       logger,
	}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")

	plans := group.Group("/test-plans")
	plans.POST("", r.plans.Create)
	plans.GET("", r.plans.List)
	plans.GET("/:id", r.plans.Get)
	plans.PUT("/:id", r.plans.Update)
	plans.DELETE("/:id", r.plans.Delete)

	cases := group.Group("/test-cases")
	cases.POST("", r.cases.Create)
	cases.GET("", r.cases.List)
	cases.GET("/:id", r.cases.Get)
	cases.PUT("/:id", r.cases.Update)
	cases.DELETE("/:id", r.cases.Delete)

	executions := group.Group("/test-executions")
	executions.POST("", r.executions.Create)
	executions.GET("", r.executions.List)
	executions.GET("/:id", r.executions.Get)
	executions.PUT("/:id", r.executions.Update)
	executions.DELETE("/:id", r.executions.Delete)
	executions.POST("/:id/results", r.executions.AddResult)
	executions.GET("/:id/results", r.executions.ListResults)

	reports := group.Group("/reports")
	reports.GET("/test-plans/:id/download", r.reports.Download)
	reports.POST("/test-plans/:id/generate", r.reports.Generate)
	reports.GET("/test-plans/:id/summary", r.reports.Summary)

	jira := group.Group("/jira")
	jira.POST("/link", r.jira.Link)
	jira.GET("/links", r.jira.ListLinks)
	jira.DELETE("/links/:id", r.jira.DeleteLink)
	jira.POST("/update-status/:execution_id", r.jira.UpdateStatus)

	keys := group.Group("/api-keys")
	keys.POST("", r.keys.Create)
	keys.GET("", r.keys.List)
	keys.DELETE("/:id", r.keys.Deactivate)

	integration := group.Group("/integration")
	integration.Use(middlewares.APIKeyAuth(r.keyService, r.logger))
	integration.POST("/test-results/batch", r.integrations.UploadBatch)
	integration.POST("/test-results", r.integrations.UploadSingle)
}
