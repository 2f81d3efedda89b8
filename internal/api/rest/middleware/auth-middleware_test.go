package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runClientIP(t *testing.T, forwarded string) *string {
	t.Helper()

	app := fiber.New()
	var got *string
	app.Get("/", func(ctx *fiber.Ctx) error {
		got = ClientIP(ctx)
		return ctx.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	if forwarded != "" {
		req.Header.Set(fiber.HeaderXForwardedFor, forwarded)
	}
	_, err := app.Test(req)
	require.NoError(t, err)

	return got
}

func TestClientIPPrefersFirstForwardedEntry(t *testing.T) {
	ip := runClientIP(t, "203.0.113.4, 10.0.0.1, 10.0.0.2")
	require.NotNil(t, ip)
	assert.Equal(t, "203.0.113.4", *ip)
}

func TestClientIPTrimsForwardedEntry(t *testing.T) {
	ip := runClientIP(t, "  203.0.113.4  ,10.0.0.1")
	require.NotNil(t, ip)
	assert.Equal(t, "203.0.113.4", *ip)
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	ip := runClientIP(t, "")
	require.NotNil(t, ip)
	assert.NotEmpty(t, *ip)
}

func TestActorFromCtxZeroWhenUnset(t *testing.T) {
	app := fiber.New()
	var actor domain.ActorInfo
	app.Get("/", func(ctx *fiber.Ctx) error {
		actor = ActorFromCtx(ctx)
		return ctx.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Nil(t, actor.Actor)
}

func TestAdminOnlyBlocksNonAdmins(t *testing.T) {
	app := fiber.New()
	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals("actor", domain.ActorInfo{
			Actor: &domain.User{Email: "member@example.com", Role: domain.RoleMember},
		})
		return ctx.Next()
	})
	app.Get("/admin", AdminOnly(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminOnlyAllowsAdmins(t *testing.T) {
	app := fiber.New()
	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals("actor", domain.ActorInfo{
			Actor: &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin},
		})
		return ctx.Next()
	})
	app.Get("/admin", AdminOnly(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminOnlyUnauthorizedWithoutActor(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AdminOnly(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
