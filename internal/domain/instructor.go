package domain

import "time"

// Instructor is a course-authoring account keyed by email.
type Instructor struct {
	InstructorID string     `json:"id" dynamodbav:"instructor_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Name         string     `json:"name" dynamodbav:"name"`
	IsActive     bool       `json:"isActive" dynamodbav:"is_active"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" dynamodbav:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type InstructorLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
