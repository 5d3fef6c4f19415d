package course

import (
	"context"
	"testing"
	"time"

	"github.com/alterera/academy-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory catalog.
type fakeStore struct {
	byID    map[string]*domain.Course
	deleted []string
}

func newFakeStore(courses ...*domain.Course) *fakeStore {
	f := &fakeStore{byID: map[string]*domain.Course{}}
	for _, c := range courses {
		f.byID[c.CourseID] = c
	}
	return f
}

func (f *fakeStore) Put(_ context.Context, c *domain.Course) error {
	cp := *c
	f.byID[c.CourseID] = &cp
	return nil
}

func (f *fakeStore) Get(_ context.Context, courseID string) (*domain.Course, error) {
	c, ok := f.byID[courseID]
	if !ok {
		return nil, domain.E(domain.CodeRequestNotFound, "course not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) GetBySlug(_ context.Context, slug string) (*domain.Course, error) {
	for _, c := range f.byID {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.E(domain.CodeRequestNotFound, "course not found")
}

func (f *fakeStore) ListPublished(_ context.Context) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range f.byID {
		if c.IsPublished {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByInstructor(_ context.Context, instructorID string) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range f.byID {
		if c.InstructorID == instructorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, courseID string, updates map[string]interface{}) error {
	if _, ok := f.byID[courseID]; !ok {
		return domain.E(domain.CodeRequestNotFound, "course not found")
	}
	if v, ok := updates["title"]; ok {
		f.byID[courseID].Title = v.(string)
	}
	if v, ok := updates["is_published"]; ok {
		f.byID[courseID].IsPublished = v.(bool)
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, courseID string) error {
	delete(f.byID, courseID)
	f.deleted = append(f.deleted, courseID)
	return nil
}

var (
	adminSess      = domain.Session{Role: domain.RoleAdmin, AdminID: "a1"}
	instructorSess = domain.Session{Role: domain.RoleInstructor, InstructorID: "i1"}
	otherSess      = domain.Session{Role: domain.RoleInstructor, InstructorID: "i2"}
	fixedNow       = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
)

func published() *domain.Course {
	return &domain.Course{
		CourseID: "c1", InstructorID: "i1", Title: "Go from Scratch",
		Slug: "go-from-scratch", IsPublished: true,
	}
}

func errCode(t *testing.T, err error) domain.ErrorCode {
	t.Helper()
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestGetPublishedBySlug_HidesDrafts(t *testing.T) {
	store := newFakeStore(&domain.Course{CourseID: "c2", Slug: "draft", IsPublished: false})
	svc := NewService(store, fixedNow)

	_, err := svc.GetPublishedBySlug(context.Background(), "draft")
	assert.Equal(t, domain.CodeRequestNotFound, errCode(t, err))
}

func TestCreate_RejectsDuplicateSlug(t *testing.T) {
	svc := NewService(newFakeStore(published()), fixedNow)
	_, err := svc.Create(context.Background(), instructorSess, domain.CreateCourseRequest{
		Title: "Another", Slug: "go-from-scratch",
	})
	assert.Equal(t, domain.CodeInvalidInput, errCode(t, err))
}

func TestCreate_StampsInstructorFromSession(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fixedNow)
	c, err := svc.Create(context.Background(), instructorSess, domain.CreateCourseRequest{
		Title: "Go from Scratch", Slug: "go-from-scratch", Price: "499",
	})
	require.NoError(t, err)
	assert.Equal(t, "i1", c.InstructorID)
	assert.NotEmpty(t, c.CourseID)
	assert.Contains(t, store.byID, c.CourseID)
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	store := newFakeStore(published())
	svc := NewService(store, fixedNow)
	title := "Renamed"

	// A different instructor cannot touch it.
	_, err := svc.Update(context.Background(), otherSess, "c1", domain.UpdateCourseRequest{Title: &title})
	assert.Equal(t, domain.CodeForbidden, errCode(t, err))

	// The owner can.
	c, err := svc.Update(context.Background(), instructorSess, "c1", domain.UpdateCourseRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", c.Title)

	// So can an admin.
	title2 := "Renamed Again"
	_, err = svc.Update(context.Background(), adminSess, "c1", domain.UpdateCourseRequest{Title: &title2})
	assert.NoError(t, err)
}

func TestUpdate_NoFieldsRejected(t *testing.T) {
	svc := NewService(newFakeStore(published()), fixedNow)
	_, err := svc.Update(context.Background(), adminSess, "c1", domain.UpdateCourseRequest{})
	assert.Equal(t, domain.CodeInvalidInput, errCode(t, err))
}

func TestDelete_OwnershipEnforced(t *testing.T) {
	store := newFakeStore(published())
	svc := NewService(store, fixedNow)

	err := svc.Delete(context.Background(), otherSess, "c1")
	assert.Equal(t, domain.CodeForbidden, errCode(t, err))
	assert.Empty(t, store.deleted)

	require.NoError(t, svc.Delete(context.Background(), adminSess, "c1"))
	assert.Equal(t, []string{"c1"}, store.deleted)
}

func TestListMine_RequiresInstructor(t *testing.T) {
	svc := NewService(newFakeStore(published()), fixedNow)

	_, err := svc.ListMine(context.Background(), adminSess)
	assert.Equal(t, domain.CodeForbidden, errCode(t, err))

	list, err := svc.ListMine(context.Background(), instructorSess)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
