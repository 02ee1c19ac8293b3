package http

import (
	"load-tracking-service/src/internal/delivery/http/middleware"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/usecase"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type LocationController struct {
	Log     log.Log
	UseCase *usecase.LocationUseCase
}

func NewLocationController(useCase *usecase.LocationUseCase, logger log.Log) *LocationController {
	return &LocationController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *LocationController) RecordLocation(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.RecordLocationRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("LocationController.RecordLocation", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	result := c.UseCase.RecordLocation(ctx.Context(), auth, request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Location Recorded", fiber.StatusOK, ctx)
}

func (c *LocationController) StartTracking(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.StartTrackingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("LocationController.StartTracking", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	result := c.UseCase.StartTracking(ctx.Context(), auth, request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Tracking Started", fiber.StatusOK, ctx)
}

func (c *LocationController) StopTracking(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	result := c.UseCase.StopTracking(ctx.Context(), auth)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Tracking Stopped", fiber.StatusOK, ctx)
}
