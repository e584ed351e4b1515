package controller

import (
	"ai-coursekb-be/internal/dto"
	"ai-coursekb-be/internal/pkg/serverutils"
	"ai-coursekb-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRetrievalController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type retrievalController struct {
	retrievalService service.IRetrievalService
}

func NewRetrievalController(retrievalService service.IRetrievalService) IRetrievalController {
	return &retrievalController{
		retrievalService: retrievalService,
	}
}

func (c *retrievalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/retrieval/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("query", c.Query)
}

func (c *retrievalController) Query(ctx *fiber.Ctx) error {
	instructorIdStr := ctx.Locals("user_id").(string)
	instructorId, _ := uuid.Parse(instructorIdStr)

	var req dto.RetrievalQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.retrievalService.Query(ctx.Context(), instructorId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success retrieval query", res))
}
