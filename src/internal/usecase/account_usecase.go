package usecase

import (
	"context"
	"fmt"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/model/converter"
	httpError "load-tracking-service/src/pkg/http-error"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/token"
	"load-tracking-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AccountUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Users    UserStore
	Auditor  Auditor
}

func NewAccountUseCase(logger log.Log, validate *validator.Validate, users UserStore, auditor Auditor) *AccountUseCase {
	return &AccountUseCase{
		Log:      logger,
		Validate: validate,
		Users:    users,
		Auditor:  auditor,
	}
}

func (c *AccountUseCase) CreateDriverAccount(ctx context.Context, claim *token.Claim, request *model.CreateDriverAccountRequest) utils.Result {
	var result utils.Result

	if !claim.IsAdminOrDispatcher() {
		errObj := httpError.NewForbidden()
		errObj.Message = "only admins and dispatchers can create driver accounts"
		result.Error = errObj
		return result
	}

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	existing, err := c.Users.FindByEmail(ctx, claim.TenantID, request.Email)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to check existing accounts"
		result.Error = errObj
		c.Log.Error("account-usecase", fmt.Sprintf("find by email: %v", err), "CreateDriverAccount", "")
		return result
	}
	if existing != nil {
		errObj := httpError.NewConflict()
		errObj.Message = "an account with this email already exists"
		result.Error = errObj
		return result
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to hash password"
		result.Error = errObj
		c.Log.Error("account-usecase", fmt.Sprintf("bcrypt: %v", err), "CreateDriverAccount", "")
		return result
	}

	user := &entity.User{
		UserID:       uuid.NewString(),
		TenantID:     claim.TenantID,
		Role:         token.RoleDriver,
		FullName:     request.FullName,
		Email:        request.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if request.MobileNumber != "" {
		user.MobileNumber = &request.MobileNumber
	}

	if err := c.Users.Insert(ctx, user); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to create driver account"
		result.Error = errObj
		c.Log.Error("account-usecase", fmt.Sprintf("insert user: %v", err), "CreateDriverAccount", "")
		return result
	}

	c.Auditor.Record(ctx, claim.TenantID, claim.UserID, entity.AuditDriverAccountCreated, &user.UserID, nil)

	result.Data = converter.UserToResponse(user)
	return result
}

func (c *AccountUseCase) ResetDriverPassword(ctx context.Context, claim *token.Claim, request *model.ResetDriverPasswordRequest) utils.Result {
	var result utils.Result

	if !claim.IsAdminOrDispatcher() {
		errObj := httpError.NewForbidden()
		errObj.Message = "only admins and dispatchers can reset driver passwords"
		result.Error = errObj
		return result
	}

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	user, err := c.Users.FindByID(ctx, request.DriverID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load driver account"
		result.Error = errObj
		c.Log.Error("account-usecase", fmt.Sprintf("find user: %v", err), "ResetDriverPassword", request.DriverID)
		return result
	}
	if user == nil || !claim.SameTenant(user.TenantID) || user.Role != token.RoleDriver {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("driver %s not found", request.DriverID)
		result.Error = errObj
		return result
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to hash password"
		result.Error = errObj
		c.Log.Error("account-usecase", fmt.Sprintf("bcrypt: %v", err), "ResetDriverPassword", "")
		return result
	}

	if err := c.Users.UpdatePassword(ctx, user.UserID, string(hash)); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to update password"
		result.Error = errObj
		c.Log.Error("account-usecase", fmt.Sprintf("update password: %v", err), "ResetDriverPassword", user.UserID)
		return result
	}

	c.Auditor.Record(ctx, claim.TenantID, claim.UserID, entity.AuditDriverPasswordReset, &user.UserID, nil)

	result.Data = converter.UserToResponse(user)
	return result
}
