package middleware

import (
	"strings"

	"github.com/SundayYogurt/approval_service/internal/domain"
	"github.com/SundayYogurt/approval_service/internal/helper"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", user.UserID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func ApproverOnly(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, err := auth.GetCurrentUser(ctx)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		if domain.Role(user.Role) != domain.RoleApprover {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "approver only",
			})
		}

		return ctx.Next()
	}
}

func RequesterOnly(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, err := auth.GetCurrentUser(ctx)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		if domain.Role(user.Role) != domain.RoleRequester {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "requester only",
			})
		}

		return ctx.Next()
	}
}
