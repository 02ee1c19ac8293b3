package token

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
	RoleDriver     = "driver"
)

type Claim struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

func (c *Claim) IsDriver() bool {
	return c.Role == RoleDriver
}

func (c *Claim) IsAdminOrDispatcher() bool {
	return c.Role == RoleAdmin || c.Role == RoleDispatcher
}

// SameTenant gates every cross-resource access in the service.
func (c *Claim) SameTenant(tenantID string) bool {
	return c.TenantID == tenantID
}
