package handlers

import (
	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper/utils"
	"github.com/SundayYogurt/projecthub/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projects    services.ProjectService
	invitations services.InvitationService
	cfg         config.Config
	log         *zap.Logger
}

func NewProjectHandler(projects services.ProjectService, invitations services.InvitationService, cfg config.Config, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, invitations: invitations, cfg: cfg, log: log}
}

// SetupRoutes registers the static paths before the :id ones.
func (h *ProjectHandler) SetupRoutes(api fiber.Router, auth fiber.Handler) {
	projects := api.Group("/projects")

	projects.Get("/", h.ListPublic)
	projects.Get("/my/", auth, h.ListMine)
	projects.Post("/", auth, h.Create)

	projects.Get("/invitations/mine/", auth, h.MyInvitations)
	projects.Get("/invitation/accept/:token/", h.AcceptInvitation)
	projects.Get("/invitation/reject/:token/", h.RejectInvitation)

	projects.Get("/:id/", auth, h.Get)
	projects.Patch("/:id/", auth, h.Update)
	projects.Delete("/:id/", auth, h.Delete)
	projects.Get("/:id/members/", auth, h.Members)
	projects.Post("/:id/invite/", auth, h.Invite)
	projects.Get("/:id/invitations/", auth, h.ProjectInvitations)
}

// ListPublic godoc
// @Summary List public projects
// @Tags projects
// @Produce json
// @Param page query int false "page number"
// @Success 200 {object} dto.APISuccessProjectPage
// @Router /api/v1/projects/ [get]
func (h *ProjectHandler) ListPublic(ctx *fiber.Ctx) error {
	page := pageRequest(ctx, h.cfg.PageSize)
	results, total, err := h.projects.ListPublic(ctx.UserContext(), page)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.NewPage(results, total, page, requestURL(ctx)))
}

// ListMine godoc
// @Summary Projects the caller owns, administers or is a member of
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number"
// @Success 200 {object} dto.APISuccessProjectPage
// @Router /api/v1/projects/my/ [get]
func (h *ProjectHandler) ListMine(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	page := pageRequest(ctx, h.cfg.PageSize)
	results, total, err := h.projects.ListVisible(ctx.UserContext(), user.ProfileID, page)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.NewPage(results, total, page, requestURL(ctx)))
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateProjectRequest true "project"
// @Success 201 {object} dto.APISuccessProject
// @Failure 400 {object} dto.APIValidationError
// @Router /api/v1/projects/ [post]
func (h *ProjectHandler) Create(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var req dto.CreateProjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	resp, err := h.projects.Create(ctx.UserContext(), user.ProfileID, req)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *ProjectHandler) Get(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	resp, err := h.projects.Get(ctx.UserContext(), user.ProfileID, ctx.Params("id"))
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *ProjectHandler) Update(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var req dto.UpdateProjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	resp, err := h.projects.Update(ctx.UserContext(), user.ProfileID, ctx.Params("id"), req)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *ProjectHandler) Delete(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	if err := h.projects.Delete(ctx.UserContext(), user.ProfileID, ctx.Params("id")); err != nil {
		return fail(ctx, h.log, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Members godoc
// @Summary List project members
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "project id"
// @Param role query string false "comma separated roles, e.g. admin,member"
// @Router /api/v1/projects/{id}/members/ [get]
func (h *ProjectHandler) Members(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	resp, err := h.projects.ListMembers(ctx.UserContext(), user.ProfileID, ctx.Params("id"), rolesQuery(ctx))
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

// Invite godoc
// @Summary Invite a registered user to the project
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "project id"
// @Param body body dto.InviteRequest true "invitee"
// @Success 201 {object} dto.APISuccessInvitation
// @Failure 400 {object} dto.APIValidationError
// @Failure 403 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Failure 409 {object} dto.APIError
// @Failure 500 {object} dto.APIError
// @Router /api/v1/projects/{id}/invite/ [post]
func (h *ProjectHandler) Invite(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var req dto.InviteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	resp, err := h.invitations.Create(ctx.UserContext(), user.ProfileID, ctx.Params("id"), req)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *ProjectHandler) ProjectInvitations(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	resp, err := h.invitations.ListForProject(ctx.UserContext(), user.ProfileID, ctx.Params("id"))
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *ProjectHandler) MyInvitations(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	resp, err := h.invitations.ListMine(ctx.UserContext(), user.ProfileID)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

// AcceptInvitation godoc
// @Summary Accept an invitation with the mailed token
// @Tags invitations
// @Produce json
// @Param token path string true "invitation token"
// @Success 200 {object} dto.APISuccessString
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Failure 409 {object} dto.APIError
// @Router /api/v1/projects/invitation/accept/{token}/ [get]
func (h *ProjectHandler) AcceptInvitation(ctx *fiber.Ctx) error {
	resp, err := h.invitations.Accept(ctx.UserContext(), ctx.Params("token"))
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

// RejectInvitation godoc
// @Summary Decline an invitation with the mailed token
// @Tags invitations
// @Produce json
// @Param token path string true "invitation token"
// @Success 200 {object} dto.APISuccessString
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /api/v1/projects/invitation/reject/{token}/ [get]
func (h *ProjectHandler) RejectInvitation(ctx *fiber.Ctx) error {
	if err := h.invitations.Reject(ctx.UserContext(), ctx.Params("token")); err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Invitation declined")
}
