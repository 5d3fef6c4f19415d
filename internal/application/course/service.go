package course

import (
	"context"
	"slices"
	"time"

	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/pkg/id"
	"github.com/alterera/academy-api/internal/pkg/validate"
)

// Store is the catalog store the service needs.
type Store interface {
	Put(ctx context.Context, c *domain.Course) error
	Get(ctx context.Context, courseID string) (*domain.Course, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Course, error)
	ListPublished(ctx context.Context) ([]domain.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]domain.Course, error)
	Update(ctx context.Context, courseID string, updates map[string]interface{}) error
	Delete(ctx context.Context, courseID string) error
}

type Service interface {
	// Public catalog.
	ListPublished(ctx context.Context) ([]domain.Course, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.Course, error)

	// Authoring. The session decides ownership: admins touch any course,
	// instructors only their own.
	Create(ctx context.Context, sess domain.Session, req domain.CreateCourseRequest) (*domain.Course, error)
	Update(ctx context.Context, sess domain.Session, courseID string, req domain.UpdateCourseRequest) (*domain.Course, error)
	Delete(ctx context.Context, sess domain.Session, courseID string) error
	ListMine(ctx context.Context, sess domain.Session) ([]domain.Course, error)
}

type service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store, now func() time.Time) Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{store: store, now: now}
}

func (s *service) ListPublished(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.store.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(courses, func(a, b domain.Course) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return courses, nil
}

func (s *service) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	c, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !c.IsPublished {
		return nil, domain.E(domain.CodeRequestNotFound, "course not found")
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, sess domain.Session, req domain.CreateCourseRequest) (*domain.Course, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.E(domain.CodeInvalidInput, err.Error())
	}
	if _, err := s.store.GetBySlug(ctx, req.Slug); err == nil {
		return nil, domain.E(domain.CodeInvalidInput, "a course with this slug already exists")
	} else if !domain.IsCode(err, domain.CodeRequestNotFound) {
		return nil, err
	}

	now := s.now()
	c := &domain.Course{
		CourseID:         id.New(),
		InstructorID:     sess.InstructorID,
		Title:            req.Title,
		Slug:             req.Slug,
		ShortDescription: req.ShortDescription,
		FeaturedImage:    req.FeaturedImage,
		Price:            req.Price,
		Learnings:        req.Learnings,
		Curriculum:       req.Curriculum,
		IsPublished:      req.IsPublished,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, sess domain.Session, courseID string, req domain.UpdateCourseRequest) (*domain.Course, error) {
	c, err := s.authorize(ctx, sess, courseID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
		c.Title = *req.Title
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
		c.ShortDescription = *req.ShortDescription
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = *req.FeaturedImage
		c.FeaturedImage = *req.FeaturedImage
	}
	if req.Price != nil {
		updates["price"] = *req.Price
		c.Price = *req.Price
	}
	if req.Learnings != nil {
		updates["learnings"] = *req.Learnings
		c.Learnings = *req.Learnings
	}
	if req.Curriculum != nil {
		updates["curriculum"] = *req.Curriculum
		c.Curriculum = *req.Curriculum
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
		c.IsPublished = *req.IsPublished
	}
	if len(updates) == 0 {
		return nil, domain.E(domain.CodeInvalidInput, "no fields to update")
	}
	if err := s.store.Update(ctx, courseID, updates); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now()
	return c, nil
}

func (s *service) Delete(ctx context.Context, sess domain.Session, courseID string) error {
	if _, err := s.authorize(ctx, sess, courseID); err != nil {
		return err
	}
	return s.store.Delete(ctx, courseID)
}

func (s *service) ListMine(ctx context.Context, sess domain.Session) ([]domain.Course, error) {
	if !sess.IsInstructor() {
		return nil, domain.E(domain.CodeForbidden, "instructor account required")
	}
	return s.store.ListByInstructor(ctx, sess.InstructorID)
}

// authorize loads the course and checks the session may modify it.
func (s *service) authorize(ctx context.Context, sess domain.Session, courseID string) (*domain.Course, error) {
	c, err := s.store.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if sess.IsAdmin() {
		return c, nil
	}
	if sess.IsInstructor() && c.InstructorID == sess.InstructorID {
		return c, nil
	}
	return nil, domain.E(domain.CodeForbidden, "you do not own this course")
}
