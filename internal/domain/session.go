package domain

// SessionRole tags the session payload variant. The zero value is anonymous,
// so a missing or tampered cookie decodes to a logged-out session.
type SessionRole string

const (
	RoleAnonymous  SessionRole = ""
	RoleUser       SessionRole = "user"
	RoleAdmin      SessionRole = "admin"
	RoleInstructor SessionRole = "instructor"
)

// Session is the cookie payload. Which id/display fields are meaningful is
// determined by Role alone; callers go through the Is* accessors rather than
// probing optional fields.
type Session struct {
	Role      SessionRole `json:"role,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`
	Name      string      `json:"name,omitempty"`

	// RoleUser
	UserID string `json:"userId,omitempty"`
	Phone  string `json:"phone,omitempty"`

	// RoleAdmin
	AdminID  string `json:"adminId,omitempty"`
	Username string `json:"username,omitempty"`

	// RoleInstructor
	InstructorID string `json:"instructorId,omitempty"`
	Email        string `json:"email,omitempty"`
}

// AnonymousSession is the logged-out payload returned for absent, malformed or
// tampered cookies.
func AnonymousSession() Session { return Session{} }

func (s Session) IsUser() bool       { return s.Role == RoleUser && s.UserID != "" }
func (s Session) IsAdmin() bool      { return s.Role == RoleAdmin && s.AdminID != "" }
func (s Session) IsInstructor() bool { return s.Role == RoleInstructor && s.InstructorID != "" }
func (s Session) IsLoggedIn() bool   { return s.IsUser() || s.IsAdmin() || s.IsInstructor() }
