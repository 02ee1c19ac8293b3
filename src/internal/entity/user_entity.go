package entity

import "time"

type User struct {
	UserID             string     `db:"user_id"`
	TenantID           string     `db:"tenant_id"`
	Role               string     `db:"role"` // admin | dispatcher | driver
	FullName           string     `db:"full_name"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	MobileNumber       *string    `db:"mobile_number"`
	LastLocation       *string    `db:"last_location"` // WKT geography
	LastLocationUpdate *time.Time `db:"last_location_update"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          *time.Time `db:"updated_at"`
}

type Tenant struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
