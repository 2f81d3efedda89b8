package handlers

import (
	"time"

	"github.com/SundayYogurt/task_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/services"
	"github.com/SundayYogurt/task_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	svc services.TaskService
}

func NewTaskHandler(svc services.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func (h *TaskHandler) SetupRoutes(app *fiber.App, authMW fiber.Handler) {
	api := app.Group("/api")

	tasks := api.Group("/tasks", authMW)

	tasks.Get("/", h.ListTasks)
	tasks.Post("/", h.CreateTask)
	tasks.Get("/:taskID", h.GetTask)
	tasks.Put("/:taskID", h.UpdateTask)
	tasks.Delete("/:taskID", h.DeleteTask)

	tasks.Post("/:taskID/assign", h.AssignTask)
	tasks.Post("/:taskID/move", h.MoveTask)

	tasks.Get("/:taskID/comments", h.ListComments)
	tasks.Post("/:taskID/comments", h.AddComment)

	comments := api.Group("/comments", authMW)
	comments.Delete("/:commentID", h.DeleteComment)
}

func (h *TaskHandler) CreateTask(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)

	var requestBody dto.CreateTaskRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.BoardID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "board_id and title are required")
	}

	task, err := h.svc.CreateTask(actor, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, task)
}

func (h *TaskHandler) ListTasks(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)

	filter := dto.TaskFilter{
		Status:     ctx.Query("status"),
		Priority:   ctx.Query("priority"),
		AssigneeID: uint(ctx.QueryInt("assignee")),
		BoardID:    uint(ctx.QueryInt("board")),
		Limit:      ctx.QueryInt("limit"),
		Offset:     ctx.QueryInt("offset"),
	}
	if raw := ctx.Query("sla_breached"); raw != "" {
		v := raw == "true"
		filter.SLABreached = &v
	}
	if from, err := time.Parse(time.RFC3339, ctx.Query("due_date_from")); err == nil {
		filter.DueFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, ctx.Query("due_date_to")); err == nil {
		filter.DueTo = &to
	}

	tasks, err := h.svc.ListTasks(actor, filter)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	taskID, err := paramID(ctx, "taskID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid task id")
	}

	task, err := h.svc.GetTask(actor, taskID)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	taskID, err := paramID(ctx, "taskID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid task id")
	}

	var requestBody dto.UpdateTaskRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	task, err := h.svc.UpdateTask(actor, taskID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	taskID, err := paramID(ctx, "taskID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid task id")
	}

	if err := h.svc.DeleteTask(actor, taskID); err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "task deleted")
}

func (h *TaskHandler) AssignTask(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	taskID, err := paramID(ctx, "taskID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid task id")
	}

	var requestBody dto.AssignTaskRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.AssigneeID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "assignee_id is required")
	}

	task, err := h.svc.AssignTask(actor, taskID, requestBody.AssigneeID)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, task)
}

func (h *TaskHandler) MoveTask(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	taskID, err := paramID(ctx, "taskID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid task id")
	}

	var requestBody dto.MoveTaskRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Status == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	task, err := h.svc.MoveTask(actor, taskID, requestBody.Status)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, task)
}

func (h *TaskHandler) AddComment(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	taskID, err := paramID(ctx, "taskID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid task id")
	}

	var requestBody dto.CreateCommentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "content is required")
	}

	comment, err := h.svc.AddComment(actor, taskID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, comment)
}

func (h *TaskHandler) ListComments(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	taskID, err := paramID(ctx, "taskID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid task id")
	}

	comments, err := h.svc.ListComments(actor, taskID, ctx.QueryInt("limit"), ctx.QueryInt("offset"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, comments)
}

func (h *TaskHandler) DeleteComment(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	commentID, err := paramID(ctx, "commentID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid comment id")
	}

	if err := h.svc.DeleteComment(actor, commentID); err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "comment deleted")
}
