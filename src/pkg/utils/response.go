package utils

import (
	"encoding/json"
	"fmt"

	httpError "load-tracking-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

// Result is the envelope every usecase returns.
type Result struct {
	Data  interface{}
	Error error
}

type successBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code"`
}

func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(successBody{
		Success: true,
		Message: message,
		Code:    code,
		Data:    data,
	})
}

func ResponseError(err error, ctx *fiber.Ctx) error {
	if commonErr, ok := err.(*httpError.CommonError); ok {
		return ctx.Status(commonErr.Code).JSON(errorBody{
			Success: false,
			Error:   commonErr.Message,
			Code:    commonErr.Code,
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(errorBody{
		Success: false,
		Error:   err.Error(),
		Code:    fiber.StatusInternalServerError,
	})
}

// ConvertString renders any value as a string for log metadata.
func ConvertString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case []byte:
		return string(value)
	case error:
		return value.Error()
	default:
		marshaled, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%+v", v)
		}
		return string(marshaled)
	}
}
