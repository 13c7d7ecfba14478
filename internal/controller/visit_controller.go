package controller

import (
	"place-journal-be/internal/dto"
	"place-journal-be/internal/pkg/apperr"
	"place-journal-be/internal/pkg/serverutils"
	"place-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVisitController interface {
	RegisterRoutes(r fiber.Router)
	Materialize(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type visitController struct {
	service       service.IVisitService
	jwtMiddleware fiber.Handler
}

func NewVisitController(service service.IVisitService, jwtMiddleware fiber.Handler) IVisitController {
	return &visitController{
		service:       service,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *visitController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/visit/v1")
	h.Use(c.jwtMiddleware)
	h.Post("", c.Materialize)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

// Materialize persists the outcome of a completed comparison session as a
// visit record.
func (c *visitController) Materialize(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.MaterializeVisitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.MaterializeFromSession(ctx.Context(), userId, req.SessionId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success save visit", res))
}

func (c *visitController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	visitId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.NewValidation("invalid visit id")
	}

	res, err := c.service.Show(ctx.Context(), userId, visitId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show visit", res))
}

func (c *visitController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.Context(), userId, ctx.Query("visit_type"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all visits", res))
}

func (c *visitController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	visitId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.NewValidation("invalid visit id")
	}

	if err := c.service.Delete(ctx.Context(), userId, visitId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete visit", fiber.Map{}))
}
