package user

import (
	"context"
	"testing"

	"github.com/alterera/academy-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	byID    map[string]*domain.User
	updates []map[string]interface{}
}

func (f *fakeUsers) Get(_ context.Context, userID string) (*domain.User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, domain.E(domain.CodeRequestNotFound, "user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Update(_ context.Context, userID string, updates map[string]interface{}) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.E(domain.CodeRequestNotFound, "user not found")
	}
	f.updates = append(f.updates, updates)
	if v, ok := updates["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	return nil
}

type fakeCourses struct {
	byID map[string]*domain.Course
}

func (f *fakeCourses) Get(_ context.Context, courseID string) (*domain.Course, error) {
	c, ok := f.byID[courseID]
	if !ok {
		return nil, domain.E(domain.CodeRequestNotFound, "course not found")
	}
	cp := *c
	return &cp, nil
}

type fakePayments struct {
	records []domain.Payment
}

func (f *fakePayments) ListByUser(_ context.Context, userID string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.records {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestDashboardResolvesEnrolledCourses(t *testing.T) {
	users := &fakeUsers{byID: map[string]*domain.User{
		"u1": {UserID: "u1", Name: "Asha", EnrolledCourses: []string{"c1", "c2"}},
	}}
	courses := &fakeCourses{byID: map[string]*domain.Course{
		"c1": {CourseID: "c1", Title: "Go Basics", IsPublished: true},
		"c2": {CourseID: "c2", Title: "Advanced Go", IsPublished: true},
	}}
	svc := NewService(users, courses, &fakePayments{})

	d, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", d.User.Name)
	assert.Len(t, d.Courses, 2)
	assert.Equal(t, 2, d.EnrolledCount)
}

func TestDashboardSkipsDanglingEnrollment(t *testing.T) {
	users := &fakeUsers{byID: map[string]*domain.User{
		"u1": {UserID: "u1", EnrolledCourses: []string{"c1", "gone", "c2"}},
	}}
	courses := &fakeCourses{byID: map[string]*domain.Course{
		"c1": {CourseID: "c1", Title: "Go Basics"},
		"c2": {CourseID: "c2", Title: "Advanced Go"},
	}}
	svc := NewService(users, courses, &fakePayments{})

	d, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, d.Courses, 2)
	for _, c := range d.Courses {
		assert.NotEqual(t, "gone", c.CourseID)
	}
}

func TestDashboardEmptyEnrollment(t *testing.T) {
	users := &fakeUsers{byID: map[string]*domain.User{
		"u1": {UserID: "u1", Name: "Asha"},
	}}
	svc := NewService(users, &fakeCourses{byID: map[string]*domain.Course{}}, &fakePayments{})

	d, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, d.Courses)
}

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	users := &fakeUsers{byID: map[string]*domain.User{
		"u1": {UserID: "u1", Name: "Asha", Email: "old@example.com"},
	}}
	svc := NewService(users, &fakeCourses{}, &fakePayments{})

	u, err := svc.UpdateProfile(context.Background(), "u1", domain.UpdateProfileRequest{
		Name: strPtr("Asha Rao"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", u.Name)
	assert.Equal(t, "old@example.com", u.Email)

	require.Len(t, users.updates, 1)
	assert.NotContains(t, users.updates[0], "email")
}

func TestUpdateProfileRejectsEmptyRequest(t *testing.T) {
	users := &fakeUsers{byID: map[string]*domain.User{"u1": {UserID: "u1"}}}
	svc := NewService(users, &fakeCourses{}, &fakePayments{})

	_, err := svc.UpdateProfile(context.Background(), "u1", domain.UpdateProfileRequest{})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
	assert.Empty(t, users.updates)
}

func TestUpdateProfileRejectsInvalidEmail(t *testing.T) {
	users := &fakeUsers{byID: map[string]*domain.User{"u1": {UserID: "u1"}}}
	svc := NewService(users, &fakeCourses{}, &fakePayments{})

	_, err := svc.UpdateProfile(context.Background(), "u1", domain.UpdateProfileRequest{
		Email: strPtr("not-an-email"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
}

func TestPaymentsResolvesCourseFields(t *testing.T) {
	payments := &fakePayments{records: []domain.Payment{
		{PaymentID: "pay_1", UserID: "u1", CourseID: "c1"},
		{PaymentID: "pay_2", UserID: "u2", CourseID: "c1"},
		{PaymentID: "pay_3", UserID: "u1", CourseID: "gone"},
	}}
	courses := &fakeCourses{byID: map[string]*domain.Course{
		"c1": {CourseID: "c1", Title: "Go Basics", Slug: "go-basics"},
	}}
	svc := NewService(&fakeUsers{byID: map[string]*domain.User{}}, courses, payments)

	out, err := svc.Payments(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "pay_1", out[0].PaymentID)
	assert.Equal(t, "Go Basics", out[0].CourseTitle)
	assert.Equal(t, "go-basics", out[0].CourseSlug)

	// A removed course leaves the row intact with empty course fields.
	assert.Equal(t, "pay_3", out[1].PaymentID)
	assert.Empty(t, out[1].CourseTitle)
}
