package usecase

import (
	"context"
	"testing"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/token"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccountUseCaseForTest(users *fakeUserStore) (*AccountUseCase, *fakeAuditor) {
	auditor := &fakeAuditor{}
	return NewAccountUseCase(log.Log{}, validator.New(), users, auditor), auditor
}

func TestCreateDriverAccount(t *testing.T) {
	users := newFakeUserStore()
	uc, auditor := newAccountUseCaseForTest(users)

	result := uc.CreateDriverAccount(context.Background(), dispatcherClaim("dispatcher-1"), &model.CreateDriverAccountRequest{
		Email:    "driver@example.com",
		FullName: "Thabo Mokoena",
		Password: "s3cret-pass",
	})
	require.NoError(t, result.Error)

	response := result.Data.(*model.UserResponse)
	assert.Equal(t, token.RoleDriver, response.Role)
	assert.Equal(t, "driver@example.com", response.Email)

	created := users.users[response.ID]
	require.NotNil(t, created)
	assert.Equal(t, testTenant, created.TenantID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")))
	assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
	assert.Equal(t, []string{entity.AuditDriverAccountCreated}, auditor.actions)
}

func TestCreateDriverAccountForbiddenForDrivers(t *testing.T) {
	uc, _ := newAccountUseCaseForTest(newFakeUserStore())

	result := uc.CreateDriverAccount(context.Background(), driverClaim("driver-1"), &model.CreateDriverAccountRequest{
		Email:    "driver@example.com",
		FullName: "Thabo Mokoena",
		Password: "s3cret-pass",
	})
	assert.Equal(t, 403, errCode(t, result.Error))
}

func TestCreateDriverAccountDuplicateEmail(t *testing.T) {
	users := newFakeUserStore(&entity.User{
		UserID:   "user-1",
		TenantID: testTenant,
		Role:     token.RoleDriver,
		Email:    "driver@example.com",
	})
	uc, _ := newAccountUseCaseForTest(users)

	result := uc.CreateDriverAccount(context.Background(), dispatcherClaim("dispatcher-1"), &model.CreateDriverAccountRequest{
		Email:    "driver@example.com",
		FullName: "Another Driver",
		Password: "s3cret-pass",
	})
	assert.Equal(t, 409, errCode(t, result.Error))
}

func TestCreateDriverAccountWeakPassword(t *testing.T) {
	uc, _ := newAccountUseCaseForTest(newFakeUserStore())

	result := uc.CreateDriverAccount(context.Background(), dispatcherClaim("dispatcher-1"), &model.CreateDriverAccountRequest{
		Email:    "driver@example.com",
		FullName: "Thabo Mokoena",
		Password: "short",
	})
	assert.Equal(t, 400, errCode(t, result.Error))
}

func TestResetDriverPassword(t *testing.T) {
	driver := &entity.User{
		UserID:       "driver-1",
		TenantID:     testTenant,
		Role:         token.RoleDriver,
		Email:        "driver@example.com",
		PasswordHash: "old-hash",
		CreatedAt:    time.Now().UTC(),
	}
	users := newFakeUserStore(driver)
	uc, auditor := newAccountUseCaseForTest(users)

	result := uc.ResetDriverPassword(context.Background(), dispatcherClaim("dispatcher-1"), &model.ResetDriverPasswordRequest{
		DriverID:    "driver-1",
		NewPassword: "fresh-password",
	})
	require.NoError(t, result.Error)

	newHash := users.passwordResets["driver-1"]
	require.NotEmpty(t, newHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("fresh-password")))
	assert.Equal(t, []string{entity.AuditDriverPasswordReset}, auditor.actions)
}

func TestResetDriverPasswordCrossTenant(t *testing.T) {
	users := newFakeUserStore(&entity.User{
		UserID:   "driver-1",
		TenantID: "tenant-other",
		Role:     token.RoleDriver,
		Email:    "driver@example.com",
	})
	uc, _ := newAccountUseCaseForTest(users)

	result := uc.ResetDriverPassword(context.Background(), dispatcherClaim("dispatcher-1"), &model.ResetDriverPasswordRequest{
		DriverID:    "driver-1",
		NewPassword: "fresh-password",
	})
	assert.Equal(t, 404, errCode(t, result.Error))
	assert.Empty(t, users.passwordResets)
}

func TestResetDriverPasswordOnNonDriver(t *testing.T) {
	users := newFakeUserStore(&entity.User{
		UserID:   "admin-1",
		TenantID: testTenant,
		Role:     token.RoleAdmin,
		Email:    "admin@example.com",
	})
	uc, _ := newAccountUseCaseForTest(users)

	result := uc.ResetDriverPassword(context.Background(), dispatcherClaim("dispatcher-1"), &model.ResetDriverPasswordRequest{
		DriverID:    "admin-1",
		NewPassword: "fresh-password",
	})
	assert.Equal(t, 404, errCode(t, result.Error))
}
