package middleware

import (
	"errors"
	"strings"

	httpError "load-tracking-service/src/pkg/http-error"
	"load-tracking-service/src/pkg/token"
	"load-tracking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const claimsLocalKey = "claims"

// VerifyBearer authenticates the request and resolves (user, tenant, role)
// once; handlers read the claim through GetUser.
func VerifyBearer(config *viper.Viper) fiber.Handler {
	secret := []byte(config.GetString("jwt.secret"))

	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claim := new(token.Claim)
		parsed, err := jwt.ParseWithClaims(tokenString, claim, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "invalid bearer token"
			return utils.ResponseError(errObj, ctx)
		}
		if claim.UserID == "" || claim.TenantID == "" {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "token is missing identity claims"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals(claimsLocalKey, claim)
		return ctx.Next()
	}
}

// GetUser returns the authenticated claim set by VerifyBearer.
func GetUser(ctx *fiber.Ctx) *token.Claim {
	claim, _ := ctx.Locals(claimsLocalKey).(*token.Claim)
	return claim
}
