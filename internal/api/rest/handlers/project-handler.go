package handlers

import (
	"strconv"

	"github.com/SundayYogurt/task_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/services"
	"github.com/SundayYogurt/task_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	svc      services.ProjectService
	boardSvc services.BoardService
}

func NewProjectHandler(svc services.ProjectService, boardSvc services.BoardService) *ProjectHandler {
	return &ProjectHandler{svc: svc, boardSvc: boardSvc}
}

func (h *ProjectHandler) SetupRoutes(app *fiber.App, authMW fiber.Handler) {
	api := app.Group("/api")

	// =========================
	// PROJECTS
	// =========================
	projects := api.Group("/projects", authMW)

	projects.Get("/", h.ListProjects)
	projects.Post("/", h.CreateProject)
	projects.Get("/:projectID", h.GetProject)
	projects.Put("/:projectID", h.UpdateProject)
	projects.Delete("/:projectID", h.DeleteProject)

	// Membership
	projects.Get("/:projectID/members", h.ListMembers)
	projects.Post("/:projectID/members", h.AddMember)
	projects.Delete("/:projectID/members/:userID", h.RemoveMember)

	// =========================
	// BOARDS
	// =========================
	boards := api.Group("/boards", authMW)

	boards.Get("/", h.ListBoards)
	boards.Post("/", h.CreateBoard)
	boards.Get("/:boardID", h.GetBoard)
	boards.Put("/:boardID", h.UpdateBoard)
	boards.Delete("/:boardID", h.DeleteBoard)
}

func (h *ProjectHandler) CreateProject(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)

	var requestBody dto.CreateProjectRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	project, err := h.svc.CreateProject(actor, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, project)
}

func (h *ProjectHandler) ListProjects(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)

	var archived *bool
	if raw := ctx.Query("is_archived"); raw != "" {
		v := raw == "true"
		archived = &v
	}
	limit := ctx.QueryInt("limit")
	offset := ctx.QueryInt("offset")

	projects, err := h.svc.ListProjects(actor, archived, limit, offset)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, projects)
}

func (h *ProjectHandler) GetProject(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	projectID, err := paramID(ctx, "projectID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid project id")
	}

	project, err := h.svc.GetProject(actor, projectID)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	projectID, err := paramID(ctx, "projectID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid project id")
	}

	var requestBody dto.UpdateProjectRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	project, err := h.svc.UpdateProject(actor, projectID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	projectID, err := paramID(ctx, "projectID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid project id")
	}

	if err := h.svc.DeleteProject(actor, projectID); err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "project deleted")
}

func (h *ProjectHandler) ListMembers(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	projectID, err := paramID(ctx, "projectID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid project id")
	}

	members, err := h.svc.ListMembers(actor, projectID)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, members)
}

func (h *ProjectHandler) AddMember(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	projectID, err := paramID(ctx, "projectID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid project id")
	}

	var requestBody dto.AddMemberRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.UserID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "user_id is required")
	}

	member, err := h.svc.AddMember(actor, projectID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, member)
}

func (h *ProjectHandler) RemoveMember(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	projectID, err := paramID(ctx, "projectID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid project id")
	}
	userID, err := paramID(ctx, "userID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.RemoveMember(actor, projectID, userID); err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "member removed")
}

func (h *ProjectHandler) CreateBoard(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)

	var requestBody dto.CreateBoardRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.ProjectID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "project_id is required")
	}

	board, err := h.boardSvc.CreateBoard(actor, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, board)
}

func (h *ProjectHandler) ListBoards(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)

	projectID := uint(ctx.QueryInt("project"))
	if projectID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "project query param is required")
	}

	boards, err := h.boardSvc.ListBoards(actor, projectID)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, boards)
}

func (h *ProjectHandler) GetBoard(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	boardID, err := paramID(ctx, "boardID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid board id")
	}

	board, err := h.boardSvc.GetBoard(actor, boardID)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, board)
}

func (h *ProjectHandler) UpdateBoard(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	boardID, err := paramID(ctx, "boardID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid board id")
	}

	var requestBody dto.UpdateBoardRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	board, err := h.boardSvc.UpdateBoard(actor, boardID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, board)
}

func (h *ProjectHandler) DeleteBoard(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	boardID, err := paramID(ctx, "boardID")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid board id")
	}

	if err := h.boardSvc.DeleteBoard(actor, boardID); err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "board deleted")
}

func paramID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
