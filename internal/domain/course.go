package domain

import "time"

// Course is a catalog entry. Price is the display string shown on the course
// page; the checkout amount is supplied at order time and converted to minor
// units by the payment coordinator.
type Course struct {
	CourseID         string    `json:"id" dynamodbav:"course_id"`
	InstructorID     string    `json:"instructorId,omitempty" dynamodbav:"instructor_id,omitempty"`
	Title            string    `json:"title" dynamodbav:"title"`
	Slug             string    `json:"slug" dynamodbav:"slug"`
	ShortDescription string    `json:"shortDescription" dynamodbav:"short_description"`
	FeaturedImage    string    `json:"featuredImage" dynamodbav:"featured_image"`
	Price            string    `json:"price" dynamodbav:"price"`
	Learnings        []string  `json:"learnings,omitempty" dynamodbav:"learnings,omitempty"`
	Curriculum       []Chapter `json:"curriculum,omitempty" dynamodbav:"curriculum,omitempty"`
	IsPublished      bool      `json:"isPublished" dynamodbav:"is_published"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Chapter groups lessons within a course curriculum.
type Chapter struct {
	Title   string   `json:"title" dynamodbav:"title"`
	IsPro   bool     `json:"isPro" dynamodbav:"is_pro"`
	Lessons []string `json:"lessons,omitempty" dynamodbav:"lessons,omitempty"`
}

type CreateCourseRequest struct {
	Title            string    `json:"title" validate:"required"`
	Slug             string    `json:"slug" validate:"required,lowercase"`
	ShortDescription string    `json:"shortDescription"`
	FeaturedImage    string    `json:"featuredImage"`
	Price            string    `json:"price"`
	Learnings        []string  `json:"learnings"`
	Curriculum       []Chapter `json:"curriculum"`
	IsPublished      bool      `json:"isPublished"`
}

type UpdateCourseRequest struct {
	Title            *string    `json:"title"`
	ShortDescription *string    `json:"shortDescription"`
	FeaturedImage    *string    `json:"featuredImage"`
	Price            *string    `json:"price"`
	Learnings        *[]string  `json:"learnings"`
	Curriculum       *[]Chapter `json:"curriculum"`
	IsPublished      *bool      `json:"isPublished"`
}
