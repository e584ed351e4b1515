package controller

import (
	"ai-coursekb-be/internal/dto"
	"ai-coursekb-be/internal/pkg/serverutils"
	"ai-coursekb-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChunkController interface {
	RegisterRoutes(r fiber.Router)
	Sync(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type chunkController struct {
	chunkService service.IChunkService
}

func NewChunkController(chunkService service.IChunkService) IChunkController {
	return &chunkController{
		chunkService: chunkService,
	}
}

func (c *chunkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chunk/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put("session/:sessionId", c.Sync)
	h.Get("session/:sessionId", c.List)
}

// Sync replaces the chunk set of the given source files. A session that was
// already extracted goes stale when the content changed.
func (c *chunkController) Sync(ctx *fiber.Ctx) error {
	instructorIdStr := ctx.Locals("user_id").(string)
	instructorId, _ := uuid.Parse(instructorIdStr)

	sessionIdParam := ctx.Params("sessionId")
	sessionId, _ := uuid.Parse(sessionIdParam)

	var req dto.SyncChunksRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chunkService.Sync(ctx.Context(), instructorId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sync chunks", res))
}

func (c *chunkController) List(ctx *fiber.Ctx) error {
	instructorIdStr := ctx.Locals("user_id").(string)
	instructorId, _ := uuid.Parse(instructorIdStr)

	sessionIdParam := ctx.Params("sessionId")
	sessionId, _ := uuid.Parse(sessionIdParam)

	res, err := c.chunkService.List(ctx.Context(), instructorId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list chunks", res))
}
