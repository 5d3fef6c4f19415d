package domain

import (
	"slices"
	"time"
)

// User is an end-user account keyed by E.164 phone number.
// EnrolledCourses is persisted as a DynamoDB string set so enrollment appends
// are add-if-absent at the store level.
type User struct {
	UserID          string     `json:"id" dynamodbav:"user_id"`
	Phone           string     `json:"phone" dynamodbav:"phone"`
	Name            string     `json:"name" dynamodbav:"name"`
	Email           string     `json:"email,omitempty" dynamodbav:"email,omitempty"`
	EnrolledCourses []string   `json:"enrolledCourses,omitempty" dynamodbav:"enrolled_courses,stringset,omitempty"`
	LastLogin       *time.Time `json:"lastLogin,omitempty" dynamodbav:"last_login,omitempty"`
	CreatedAt       time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// IsEnrolled reports whether the user already holds the course.
func (u *User) IsEnrolled(courseID string) bool {
	return slices.Contains(u.EnrolledCourses, courseID)
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}
