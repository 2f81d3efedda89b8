package middleware

import (
	"strings"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/helper"
	"github.com/SundayYogurt/task_service/internal/repository"
	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// AuthMiddleware verifies the bearer token, loads the account and attaches
// an ActorInfo (actor, client IP, user-agent) to the request. Everything
// downstream reads the actor context from here instead of re-deriving it.
func AuthMiddleware(auth helper.Auth, users repository.UserRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		user, err := users.FindUserById(uint(claims.UserID))
		if err != nil || !user.Active {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		ctx.Locals("userID", user.ID)
		ctx.Locals(actorKey, domain.ActorInfo{
			Actor:     user,
			IPAddress: ClientIP(ctx),
			UserAgent: ctx.Get(fiber.HeaderUserAgent),
		})
		return ctx.Next()
	}
}

// ClientIP prefers the first X-Forwarded-For entry and falls back to the
// direct connection address. Nil when neither is available.
func ClientIP(ctx *fiber.Ctx) *string {
	if fwd := ctx.Get(fiber.HeaderXForwardedFor); fwd != "" {
		ip := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
		if ip != "" {
			return &ip
		}
	}
	if ip := ctx.IP(); ip != "" {
		return &ip
	}
	return nil
}

// ActorFromCtx returns the actor context set by AuthMiddleware. The zero
// value (nil Actor) means the request was not authenticated.
func ActorFromCtx(ctx *fiber.Ctx) domain.ActorInfo {
	if actor, ok := ctx.Locals(actorKey).(domain.ActorInfo); ok {
		return actor
	}
	return domain.ActorInfo{}
}

func AdminOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		actor := ActorFromCtx(ctx)
		if actor.Actor == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}
		if !actor.Actor.Role.IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin only",
			})
		}
		return ctx.Next()
	}
}
