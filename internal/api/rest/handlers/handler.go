package handlers

import (
	"net/url"
	"strings"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/SundayYogurt/projecthub/internal/helper/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const msgInvalidBody = "Please provide valid inputs"

func currentUser(ctx *fiber.Ctx) (helper.AuthUser, bool) {
	user, ok := ctx.Locals("user").(helper.AuthUser)
	return user, ok && user.UserID != 0
}

func unauthorized(ctx *fiber.Ctx) error {
	return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
}

func pageRequest(ctx *fiber.Ctx, size int) dto.PageRequest {
	return dto.PageRequest{Page: ctx.QueryInt("page", 1)}.Normalize(size)
}

// requestURL is the absolute URL of the current request, used for the
// next and previous links of paginated responses.
func requestURL(ctx *fiber.Ctx) *url.URL {
	u, err := url.Parse(ctx.BaseURL() + ctx.OriginalURL())
	if err != nil {
		return nil
	}
	return u
}

// rolesQuery parses ?role=admin,member. An empty value means no filter.
func rolesQuery(ctx *fiber.Ctx) []domain.Role {
	raw := strings.TrimSpace(ctx.Query("role"))
	if raw == "" {
		return nil
	}
	var roles []domain.Role
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			roles = append(roles, domain.Role(part))
		}
	}
	return roles
}

func fail(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	return utils.ResponseServiceError(ctx, log, err)
}
