package user

import (
	"context"

	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/pkg/validate"
)

// Store is the user store the service needs.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// CourseStore resolves enrolled course ids into catalog entries.
type CourseStore interface {
	Get(ctx context.Context, courseID string) (*domain.Course, error)
}

// PaymentStore lists a user's purchase history, newest first.
type PaymentStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Payment, error)
}

// Dashboard is the logged-in landing payload: the profile plus the resolved
// enrolled courses.
type Dashboard struct {
	User          *domain.User    `json:"user"`
	Courses       []domain.Course `json:"courses"`
	EnrolledCount int             `json:"enrolledCount"`
}

// PaymentRecord is a purchase history row with the course fields resolved for
// display. Course fields stay empty when the course was since removed.
type PaymentRecord struct {
	domain.Payment
	CourseTitle string `json:"courseTitle,omitempty"`
	CourseSlug  string `json:"courseSlug,omitempty"`
}

type Service interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
	Payments(ctx context.Context, userID string) ([]PaymentRecord, error)
}

type service struct {
	users    Store
	courses  CourseStore
	payments PaymentStore
}

func NewService(users Store, courses CourseStore, payments PaymentStore) Service {
	return &service{users: users, courses: courses, payments: payments}
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.E(domain.CodeInvalidInput, err.Error())
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if len(updates) == 0 {
		return nil, domain.E(domain.CodeInvalidInput, "no fields to update")
	}
	if err := s.users.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.users.Get(ctx, userID)
}

// Dashboard resolves the enrolled set against the catalog. A dangling id
// (course removed after purchase) is skipped rather than failing the page.
func (s *service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses := make([]domain.Course, 0, len(u.EnrolledCourses))
	for _, cid := range u.EnrolledCourses {
		c, err := s.courses.Get(ctx, cid)
		if err != nil {
			if domain.IsCode(err, domain.CodeRequestNotFound) {
				continue
			}
			return nil, err
		}
		courses = append(courses, *c)
	}
	return &Dashboard{User: u, Courses: courses, EnrolledCount: len(courses)}, nil
}

func (s *service) Payments(ctx context.Context, userID string) ([]PaymentRecord, error) {
	records, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentRecord, 0, len(records))
	for _, p := range records {
		row := PaymentRecord{Payment: p}
		if c, err := s.courses.Get(ctx, p.CourseID); err == nil {
			row.CourseTitle = c.Title
			row.CourseSlug = c.Slug
		} else if !domain.IsCode(err, domain.CodeRequestNotFound) {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
