package http

import (
	"load-tracking-service/src/internal/delivery/http/middleware"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/usecase"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type QRCodeController struct {
	Log     log.Log
	UseCase *usecase.QRCodeUseCase
}

func NewQRCodeController(useCase *usecase.QRCodeUseCase, logger log.Log) *QRCodeController {
	return &QRCodeController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *QRCodeController) CreateSignature(ctx *fiber.Ctx) error {
	request := new(model.CreateSignatureRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("QRCodeController.CreateSignature", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	result := c.UseCase.CreateSignature(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Signature Created", fiber.StatusOK, ctx)
}

func (c *QRCodeController) ValidateScan(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.ValidateQRCodeRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("QRCodeController.ValidateScan", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	result := c.UseCase.ValidateScan(ctx.Context(), auth, request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "QR Code Validated", fiber.StatusOK, ctx)
}
