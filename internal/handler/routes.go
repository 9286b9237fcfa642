package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"ideaforge-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/api/v1/ideas/generate",
				Handler: GenerateIdeasHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/v1/ideas/validate",
				Handler: ValidateIdeaHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/validations/:id/analytics",
				Handler: AnalyticsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/sessions/:id",
				Handler: GetSessionHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/api/v1/sessions/:id/pending-validation",
				Handler: QueueValidationHandler(serverCtx),
			},
			{
				Method:  http.MethodDelete,
				Path:    "/api/v1/sessions/:id",
				Handler: ResetSessionHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/history/ideas",
				Handler: IdeaHistoryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/history/ideas/:id",
				Handler: IdeaBatchHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/history/validations",
				Handler: ValidationHistoryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/healthz",
				Handler: HealthHandler(serverCtx),
			},
		},
	)
}
