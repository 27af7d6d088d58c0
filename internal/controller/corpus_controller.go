package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/serverutils"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/events"
)

type ICorpusController interface {
	RegisterRoutes(r fiber.Router, guards ...fiber.Handler)
	Reindex(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type corpusController struct {
	service service.IReindexService
}

func NewCorpusController(service service.IReindexService) ICorpusController {
	return &corpusController{service: service}
}

func (c *corpusController) RegisterRoutes(r fiber.Router, guards ...fiber.Handler) {
	h := r.Group("/admin/v1/corpus")
	for _, g := range guards {
		h.Use(g)
	}
	h.Post("reindex", c.Reindex)
	h.Get("stats", c.Stats)
}

func (c *corpusController) Reindex(ctx *fiber.Ctx) error {
	var req dto.ReindexRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	if req.Async {
		if err := c.service.RequestReindex(ctx.UserContext(), events.ReasonAdmin, nil); err != nil {
			return err
		}
		return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Reindex queued", dto.ReindexResponse{Queued: true}))
	}

	stats, err := c.service.Reindex(ctx.UserContext(), events.ReasonAdmin)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reindex corpus", toReindexResponse(stats)))
}

func (c *corpusController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get corpus stats", toReindexResponse(c.service.Stats())))
}

func toReindexResponse(s service.ReindexStats) dto.ReindexResponse {
	res := dto.ReindexResponse{Sections: s.Sections, Sources: s.Sources, Reason: s.Reason}
	if !s.ReindexedAt.IsZero() {
		at := s.ReindexedAt
		res.ReindexedAt = &at
	}
	return res
}
