package handlers

import (
	"errors"

	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper/utils"
	"github.com/SundayYogurt/projecthub/internal/services"
	pkgutils "github.com/SundayYogurt/projecthub/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accounts services.AccountService
	profiles services.ProfileService
	cfg      config.Config
	log      *zap.Logger
}

func NewAccountHandler(accounts services.AccountService, profiles services.ProfileService, cfg config.Config, log *zap.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, profiles: profiles, cfg: cfg, log: log}
}

func (h *AccountHandler) SetupRoutes(api fiber.Router, auth fiber.Handler) {
	accounts := api.Group("/accounts")

	accounts.Post("/registration/", h.Register)
	accounts.Get("/activation/confirm/:token/", h.Activate)
	accounts.Post("/activation/resend/", h.ResendActivation)
	accounts.Post("/jwt/create/", h.Login)
	accounts.Post("/reset-password/", h.ForgotPassword)
	accounts.Post("/reset-password/confirm/", h.SetPassword)

	accounts.Put("/change-password/", auth, h.ChangePassword)
	accounts.Put("/change-email/", auth, h.ChangeEmail)
	accounts.Post("/confirm-email-change/", auth, h.ConfirmEmailChange)

	accounts.Get("/profile/", auth, h.Me)
	accounts.Patch("/profile/", auth, h.UpdateProfile)
	accounts.Post("/profile/avatar/", auth, h.UploadAvatar)
}

// Register godoc
// @Summary Register a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "registration"
// @Success 201 {object} dto.APISuccessRegister
// @Failure 400 {object} dto.APIValidationError
// @Failure 409 {object} dto.APIError
// @Failure 500 {object} dto.APIError
// @Router /api/v1/accounts/registration/ [post]
func (h *AccountHandler) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}

	resp, err := h.accounts.Register(ctx.UserContext(), req)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

// Activate godoc
// @Summary Activate an account with the mailed token
// @Tags accounts
// @Produce json
// @Param token path string true "activation token"
// @Success 200 {object} dto.APISuccessString
// @Failure 400 {object} dto.APIError
// @Router /api/v1/accounts/activation/confirm/{token}/ [get]
func (h *AccountHandler) Activate(ctx *fiber.Ctx) error {
	if err := h.accounts.Activate(ctx.UserContext(), ctx.Params("token")); err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Account activated")
}

func (h *AccountHandler) ResendActivation(ctx *fiber.Ctx) error {
	var req dto.ResendActivationRequest
	if err := ctx.BodyParser(&req); err != nil || req.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := h.accounts.ResendActivation(ctx.UserContext(), req.Email); err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Activation email sent")
}

// Login godoc
// @Summary Obtain an access token
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body dto.UserLogin true "credentials"
// @Success 200 {object} dto.APISuccessLogin
// @Failure 401 {object} dto.APIError
// @Router /api/v1/accounts/jwt/create/ [post]
func (h *AccountHandler) Login(ctx *fiber.Ctx) error {
	var req dto.UserLogin
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	resp, err := h.accounts.Login(ctx.UserContext(), req)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AccountHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid email id")
	}
	if err := h.accounts.ForgotPassword(ctx.UserContext(), req.Email); err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "If the address is registered, a reset link has been sent")
}

func (h *AccountHandler) SetPassword(ctx *fiber.Ctx) error {
	var req dto.SetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := h.accounts.ResetPassword(ctx.UserContext(), req); err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password reset successfully")
}

func (h *AccountHandler) ChangePassword(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := h.accounts.ChangePassword(ctx.UserContext(), user.UserID, req); err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password changed")
}

func (h *AccountHandler) ChangeEmail(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var req dto.ChangeEmailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := h.accounts.RequestEmailChange(ctx.UserContext(), user.UserID, req); err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Verification code sent to the new address")
}

func (h *AccountHandler) ConfirmEmailChange(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var req dto.ConfirmEmailChangeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := h.accounts.ConfirmEmailChange(ctx.UserContext(), user.UserID, req); err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Email changed")
}

// Me godoc
// @Summary Current profile
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APISuccessProfile
// @Router /api/v1/accounts/profile/ [get]
func (h *AccountHandler) Me(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	resp, err := h.profiles.GetMe(ctx.UserContext(), user.UserID)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AccountHandler) UpdateProfile(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	resp, err := h.profiles.UpdateMe(ctx.UserContext(), user.UserID, req)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags accounts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "jpeg, png or webp"
// @Success 200 {object} dto.APISuccessProfile
// @Failure 400 {object} dto.APIError
// @Router /api/v1/accounts/profile/avatar/ [post]
func (h *AccountHandler) UploadAvatar(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "avatar file is required")
	}
	if file.Size > h.cfg.AvatarMaxUploadSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "cannot open uploaded file")
	}
	defer f.Close()

	data, err := pkgutils.ReadAllLimit(f, h.cfg.AvatarMaxUploadSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.profiles.UploadAvatar(ctx.UserContext(), user.UserID, data)
	if err != nil {
		if errors.Is(err, services.ErrUploaderDisabled) {
			return utils.ResponseError(ctx, fiber.StatusServiceUnavailable, err.Error())
		}
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}
