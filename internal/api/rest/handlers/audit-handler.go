package handlers

import (
	"time"

	"github.com/SundayYogurt/task_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/services"
	"github.com/SundayYogurt/task_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	svc services.AuditService
}

func NewAuditHandler(svc services.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) SetupRoutes(app *fiber.App, authMW fiber.Handler) {
	api := app.Group("/api")

	// Read-only; entries are never mutated through the API.
	api.Get("/audit-logs", authMW, h.ListAuditLogs)
}

func (h *AuditHandler) ListAuditLogs(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)

	filter := dto.AuditLogFilter{
		Entity:   ctx.Query("entity"),
		Action:   ctx.Query("action"),
		ActorID:  uint(ctx.QueryInt("actor")),
		EntityID: uint(ctx.QueryInt("entity_id")),
		Limit:    ctx.QueryInt("limit"),
		Offset:   ctx.QueryInt("offset"),
	}
	if from, err := time.Parse(time.RFC3339, ctx.Query("date_from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, ctx.Query("date_to")); err == nil {
		filter.To = &to
	}

	entries, err := h.svc.ListAuditLogs(actor.Actor, filter)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, entries)
}
