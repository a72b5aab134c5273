package middleware

import (
	"strings"

	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/SundayYogurt/projecthub/internal/helper/utils"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware accepts the access token from the access_token cookie or
// the Authorization header and stores the caller in locals.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
		}

		ctx.Locals("userID", user.UserID)
		ctx.Locals("profileID", user.ProfileID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}
