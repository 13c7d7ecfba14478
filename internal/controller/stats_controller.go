package controller

import (
	"place-journal-be/internal/entity"
	"place-journal-be/internal/pkg/apperr"
	"place-journal-be/internal/pkg/serverutils"
	"place-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	GetTopLocations(ctx *fiber.Ctx) error
	GetLocationStat(ctx *fiber.Ctx) error
}

type statsController struct {
	service       service.IStatsService
	jwtMiddleware fiber.Handler
}

func NewStatsController(service service.IStatsService, jwtMiddleware fiber.Handler) IStatsController {
	return &statsController{
		service:       service,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/stats/v1")
	h.Use(c.jwtMiddleware)
	h.Get(":visitType/top", c.GetTopLocations)
	h.Get(":visitType/:locationId", c.GetLocationStat)
}

func (c *statsController) GetTopLocations(ctx *fiber.Ctx) error {
	visitType, err := parseVisitType(ctx.Params("visitType"))
	if err != nil {
		return err
	}

	res, err := c.service.GetTopLocations(ctx.Context(), visitType, ctx.QueryInt("limit"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get top locations", res))
}

func (c *statsController) GetLocationStat(ctx *fiber.Ctx) error {
	visitType, err := parseVisitType(ctx.Params("visitType"))
	if err != nil {
		return err
	}
	locationId, err := uuid.Parse(ctx.Params("locationId"))
	if err != nil {
		return apperr.NewValidation("invalid location id")
	}

	res, err := c.service.GetLocationStat(ctx.Context(), visitType, locationId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get location stats", res))
}

func parseVisitType(raw string) (entity.VisitType, error) {
	switch entity.VisitType(raw) {
	case entity.VisitTypeNeighborhood, entity.VisitTypeCountry:
		return entity.VisitType(raw), nil
	default:
		return "", apperr.NewValidation("visit type must be neighborhood or country")
	}
}
