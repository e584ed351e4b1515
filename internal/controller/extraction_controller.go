package controller

import (
	"ai-coursekb-be/internal/dto"
	"ai-coursekb-be/internal/pkg/serverutils"
	"ai-coursekb-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IExtractionController interface {
	RegisterRoutes(r fiber.Router)
	Extract(ctx *fiber.Ctx) error
	Reextract(ctx *fiber.Ctx) error
	Topics(ctx *fiber.Ctx) error
	JobStatus(ctx *fiber.Ctx) error
	CancelJob(ctx *fiber.Ctx) error
}

type extractionController struct {
	extractionService service.IExtractionService
}

func NewExtractionController(extractionService service.IExtractionService) IExtractionController {
	return &extractionController{
		extractionService: extractionService,
	}
}

func (c *extractionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/extraction/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session/:sessionId/extract", c.Extract)
	h.Post("session/:sessionId/reextract", c.Reextract)
	h.Get("session/:sessionId/topics", c.Topics)
	h.Get("job/:jobId", c.JobStatus)
	h.Post("job/:jobId/cancel", c.CancelJob)
}

// Extract accepts the request after proposing topics and runs the synthesis
// in the background; clients poll the returned job id.
func (c *extractionController) Extract(ctx *fiber.Ctx) error {
	instructorIdStr := ctx.Locals("user_id").(string)
	instructorId, _ := uuid.Parse(instructorIdStr)

	sessionIdParam := ctx.Params("sessionId")
	sessionId, _ := uuid.Parse(sessionIdParam)

	var req dto.StartExtractionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.extractionService.StartExtraction(ctx.Context(), instructorId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Success start extraction", res))
}

func (c *extractionController) Reextract(ctx *fiber.Ctx) error {
	instructorIdStr := ctx.Locals("user_id").(string)
	instructorId, _ := uuid.Parse(instructorIdStr)

	sessionIdParam := ctx.Params("sessionId")
	sessionId, _ := uuid.Parse(sessionIdParam)

	var req dto.ReextractRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.extractionService.Reextract(ctx.Context(), instructorId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Success start re-extraction", res))
}

func (c *extractionController) Topics(ctx *fiber.Ctx) error {
	instructorIdStr := ctx.Locals("user_id").(string)
	instructorId, _ := uuid.Parse(instructorIdStr)

	sessionIdParam := ctx.Params("sessionId")
	sessionId, _ := uuid.Parse(sessionIdParam)

	res, err := c.extractionService.GetTopics(ctx.Context(), instructorId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list topics", res))
}

func (c *extractionController) JobStatus(ctx *fiber.Ctx) error {
	jobIdParam := ctx.Params("jobId")
	jobId, _ := uuid.Parse(jobIdParam)

	res, err := c.extractionService.GetJob(ctx.Context(), jobId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show job", res))
}

func (c *extractionController) CancelJob(ctx *fiber.Ctx) error {
	jobIdParam := ctx.Params("jobId")
	jobId, _ := uuid.Parse(jobIdParam)

	res, err := c.extractionService.CancelJob(ctx.Context(), jobId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel job", res))
}
