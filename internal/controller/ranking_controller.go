package controller

import (
	"place-journal-be/internal/dto"
	"place-journal-be/internal/entity"
	"place-journal-be/internal/pkg/apperr"
	"place-journal-be/internal/pkg/serverutils"
	"place-journal-be/internal/service"
	"place-journal-be/pkg/ranking"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRankingController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	SubmitComparison(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	GetRankings(ctx *fiber.Ctx) error
	Rebalance(ctx *fiber.Ctx) error
	GetGlobalPosition(ctx *fiber.Ctx) error
}

type rankingController struct {
	service       service.IRankingService
	jwtMiddleware fiber.Handler
}

func NewRankingController(service service.IRankingService, jwtMiddleware fiber.Handler) IRankingController {
	return &rankingController{
		service:       service,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *rankingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ranking/v1")
	h.Use(c.jwtMiddleware)
	h.Post("/sessions", c.StartSession)
	h.Get("/sessions/:id", c.ShowSession)
	h.Post("/sessions/:id/comparisons", c.SubmitComparison)
	h.Get("/rankings", c.GetRankings)
	h.Post("/rebalance", c.Rebalance)
	h.Get("/visits/:id/position", c.GetGlobalPosition)
}

func (c *rankingController) StartSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.StartComparisonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.InitializeSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success start comparison session", res))
}

func (c *rankingController) SubmitComparison(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.NewValidation("invalid session id")
	}

	var req dto.SubmitComparisonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SubmitComparison(ctx.Context(), userId, sessionId, *req.NewLocationBetter)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit comparison", res))
}

func (c *rankingController) ShowSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.NewValidation("invalid session id")
	}

	res, err := c.service.GetSession(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *rankingController) GetRankings(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	filter := service.RankingsFilter{
		VisitType:   ctx.Query("visit_type"),
		Category:    ctx.Query("category"),
		BoroughName: ctx.Query("borough"),
		CountryName: ctx.Query("country"),
	}

	res, err := c.service.GetUserRankings(ctx.Context(), userId, filter)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get rankings", res))
}

func (c *rankingController) Rebalance(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.RebalanceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	category, err := ranking.ParseCategory(req.Category)
	if err != nil {
		return apperr.NewValidation("invalid category %q", req.Category)
	}

	affected, err := c.service.RebalanceCategory(ctx.Context(), userId, entity.VisitType(req.VisitType), category)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rebalance category", dto.RebalanceResponse{
		AffectedCount: affected,
	}))
}

func (c *rankingController) GetGlobalPosition(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	visitId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.NewValidation("invalid visit id")
	}

	visitType := ctx.Query("visit_type")
	if visitType != string(entity.VisitTypeNeighborhood) && visitType != string(entity.VisitTypeCountry) {
		return apperr.NewValidation("visit_type query must be neighborhood or country")
	}

	res, err := c.service.GetGlobalRankingPosition(ctx.Context(), userId, visitId, entity.VisitType(visitType))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get ranking position", res))
}
