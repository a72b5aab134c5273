package handlers

import (
	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper/utils"
	"github.com/SundayYogurt/projecthub/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks services.TaskService
	cfg   config.Config
	log   *zap.Logger
}

func NewTaskHandler(tasks services.TaskService, cfg config.Config, log *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, cfg: cfg, log: log}
}

func (h *TaskHandler) SetupRoutes(api fiber.Router, auth fiber.Handler) {
	tasks := api.Group("/projects/:id/tasks", auth)

	tasks.Get("/", h.List)
	tasks.Post("/", h.Create)
	tasks.Get("/:taskID/", h.Get)
	tasks.Patch("/:taskID/", h.Update)
	tasks.Delete("/:taskID/", h.Delete)
}

// List godoc
// @Summary List tasks of a project
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "project id"
// @Param page query int false "page number"
// @Router /api/v1/projects/{id}/tasks/ [get]
func (h *TaskHandler) List(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	page := pageRequest(ctx, h.cfg.PageSize)
	results, total, err := h.tasks.List(ctx.UserContext(), user.ProfileID, ctx.Params("id"), page)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.NewPage(results, total, page, requestURL(ctx)))
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "project id"
// @Param body body dto.CreateTaskRequest true "task"
// @Success 201 {object} dto.APISuccessTask
// @Failure 400 {object} dto.APIError
// @Router /api/v1/projects/{id}/tasks/ [post]
func (h *TaskHandler) Create(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var req dto.CreateTaskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	resp, err := h.tasks.Create(ctx.UserContext(), user.ProfileID, ctx.Params("id"), req)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *TaskHandler) Get(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	resp, err := h.tasks.Get(ctx.UserContext(), user.ProfileID, ctx.Params("id"), ctx.Params("taskID"))
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *TaskHandler) Update(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var req dto.UpdateTaskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
	}
	resp, err := h.tasks.Update(ctx.UserContext(), user.ProfileID, ctx.Params("id"), ctx.Params("taskID"), req)
	if err != nil {
		return fail(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *TaskHandler) Delete(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	if err := h.tasks.Delete(ctx.UserContext(), user.ProfileID, ctx.Params("id"), ctx.Params("taskID")); err != nil {
		return fail(ctx, h.log, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
