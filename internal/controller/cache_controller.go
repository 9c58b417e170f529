package controller

import (
	"ai-datachat-be/internal/dto"
	"ai-datachat-be/internal/pkg/serverutils"
	"ai-datachat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICacheController interface {
	RegisterRoutes(r fiber.Router)
	Clear(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type cacheController struct {
	service service.ICacheService
}

func NewCacheController(service service.ICacheService) ICacheController {
	return &cacheController{service: service}
}

func (c *cacheController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cache/v1")
	h.Delete("", c.Clear)
	h.Get("/stats", c.Stats)
}

func (c *cacheController) Clear(ctx *fiber.Ctx) error {
	if err := c.service.Clear(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear cache", dto.ClearCacheResponse{Cleared: true}))
}

func (c *cacheController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get cache stats", res))
}
