package http

import (
	"load-tracking-service/src/internal/delivery/http/middleware"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/usecase"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	Log     log.Log
	UseCase *usecase.OrderUseCase
}

func NewOrderController(useCase *usecase.OrderUseCase, logger log.Log) *OrderController {
	return &OrderController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.CreateOrderRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("OrderController.CreateOrder", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	result := c.UseCase.CreateOrder(ctx.Context(), auth, request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Order Created", fiber.StatusOK, ctx)
}

func (c *OrderController) ActivateLoad(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.ActivateLoadRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("OrderController.ActivateLoad", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	result := c.UseCase.ActivateLoad(ctx.Context(), auth, request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Load Activated", fiber.StatusOK, ctx)
}
