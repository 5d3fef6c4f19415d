package login

import (
	"context"
	"log/slog"
	"time"

	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/pkg/id"
	"github.com/alterera/academy-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// AdminStore is the admin account store the service needs.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Update(ctx context.Context, adminID string, updates map[string]interface{}) error
}

// InstructorStore is the instructor account store the service needs.
type InstructorStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Instructor, error)
	Update(ctx context.Context, instructorID string, updates map[string]interface{}) error
}

type Service interface {
	AdminLogin(ctx context.Context, req domain.AdminLoginRequest) (*domain.Admin, domain.Session, error)
	InstructorLogin(ctx context.Context, req domain.InstructorLoginRequest) (*domain.Instructor, domain.Session, error)
}

type service struct {
	admins      AdminStore
	instructors InstructorStore
	now         func() time.Time
}

func NewService(admins AdminStore, instructors InstructorStore, now func() time.Time) Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{admins: admins, instructors: instructors, now: now}
}

// Missing accounts and wrong passwords share one human message; only the
// wire code distinguishes them.
const badCredentialsMsg = "invalid username or password"

func (s *service) AdminLogin(ctx context.Context, req domain.AdminLoginRequest) (*domain.Admin, domain.Session, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.Session{}, domain.E(domain.CodeInvalidInput, err.Error())
	}
	a, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if domain.IsCode(err, domain.CodeAdminNotFound) {
			return nil, domain.Session{}, domain.E(domain.CodeAdminNotFound, badCredentialsMsg)
		}
		return nil, domain.Session{}, err
	}
	if !a.IsActive {
		return nil, domain.Session{}, domain.E(domain.CodeAdminInactive, "this account has been deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.Session{}, domain.E(domain.CodeAdminInvalidCredentials, badCredentialsMsg)
	}

	now := s.now()
	if err := s.admins.Update(ctx, a.AdminID, map[string]interface{}{
		"last_login": now.Format(time.RFC3339),
	}); err != nil {
		slog.Warn("failed to update admin last login", "admin_id", a.AdminID, "err", err)
	}
	a.LastLogin = &now

	return a, domain.Session{
		Role:      domain.RoleAdmin,
		SessionID: id.New(),
		Name:      a.Name,
		AdminID:   a.AdminID,
		Username:  a.Username,
	}, nil
}

func (s *service) InstructorLogin(ctx context.Context, req domain.InstructorLoginRequest) (*domain.Instructor, domain.Session, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.Session{}, domain.E(domain.CodeInvalidInput, err.Error())
	}
	in, err := s.instructors.GetByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsCode(err, domain.CodeInstructorNotFound) {
			return nil, domain.Session{}, domain.E(domain.CodeInstructorNotFound, badCredentialsMsg)
		}
		return nil, domain.Session{}, err
	}
	if !in.IsActive {
		return nil, domain.Session{}, domain.E(domain.CodeInstructorInactive, "this account has been deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(in.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.Session{}, domain.E(domain.CodeInstructorInvalidCredentials, badCredentialsMsg)
	}

	now := s.now()
	if err := s.instructors.Update(ctx, in.InstructorID, map[string]interface{}{
		"last_login": now.Format(time.RFC3339),
	}); err != nil {
		slog.Warn("failed to update instructor last login", "instructor_id", in.InstructorID, "err", err)
	}
	in.LastLogin = &now

	return in, domain.Session{
		Role:         domain.RoleInstructor,
		SessionID:    id.New(),
		Name:         in.Name,
		InstructorID: in.InstructorID,
		Email:        in.Email,
	}, nil
}
