package handlers

import (
	"errors"
	"strconv"

	"github.com/SundayYogurt/task_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/helper"
	"github.com/SundayYogurt/task_service/internal/services"
	"github.com/SundayYogurt/task_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewUserHandler(svc services.UserService, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

func (h *UserHandler) SetupRoutes(app *fiber.App, authMW fiber.Handler) {
	api := app.Group("/api")
	user := api.Group("/user")

	// Auth (public)
	user.Post("/register", h.Register)
	user.Post("/login", h.Login)

	// Everything below requires a valid token
	user.Use(authMW)

	// Profile
	user.Get("/me", h.Me)
	user.Put("/profile", h.UpdateProfile)

	// Global role management (admin only)
	user.Patch("/:userID/role", middleware.AdminOnly(), h.SetRole)
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.UserSignup

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if requestBody.Email == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, user)
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.svc.Login(requestBody.Email, requestBody.Password)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.auth.GenerateToken(int(user.ID), user.Email)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"token": token,
	})
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	if actor.Actor == nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, actor.Actor)
}

func (h *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)
	if actor.Actor == nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.UpdateProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.UpdateProfile(actor.Actor.ID, requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) SetRole(ctx *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(ctx)

	userID, err := strconv.ParseUint(ctx.Params("userID"), 10, 64)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	var requestBody dto.SetRoleRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Role == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "role is required")
	}

	if err := h.svc.SetRole(actor.Actor, uint(userID), domain.Role(requestBody.Role)); err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "role updated")
}

// respondServiceError maps the service sentinels onto transport codes;
// anything unrecognized is a 400-class input problem in this API's
// error convention.
func respondServiceError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return utils.ResponseError(ctx, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, "not found")
	default:
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
}
