package domain

import "time"

// Admin is an admin-panel account keyed by username. Inactive admins may not
// authenticate even with the correct password.
type Admin struct {
	AdminID      string     `json:"id" dynamodbav:"admin_id"`
	Username     string     `json:"username" dynamodbav:"username"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Name         string     `json:"name" dynamodbav:"name"`
	Email        string     `json:"email,omitempty" dynamodbav:"email,omitempty"`
	IsActive     bool       `json:"isActive" dynamodbav:"is_active"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" dynamodbav:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
}
