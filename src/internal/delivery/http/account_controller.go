package http

import (
	"load-tracking-service/src/internal/delivery/http/middleware"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/usecase"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type AccountController struct {
	Log     log.Log
	UseCase *usecase.AccountUseCase
}

func NewAccountController(useCase *usecase.AccountUseCase, logger log.Log) *AccountController {
	return &AccountController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *AccountController) CreateDriverAccount(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.CreateDriverAccountRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AccountController.CreateDriverAccount", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	result := c.UseCase.CreateDriverAccount(ctx.Context(), auth, request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Driver Account Created", fiber.StatusOK, ctx)
}

func (c *AccountController) ResetDriverPassword(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.ResetDriverPasswordRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AccountController.ResetDriverPassword", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	result := c.UseCase.ResetDriverPassword(ctx.Context(), auth, request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Driver Password Reset", fiber.StatusOK, ctx)
}
