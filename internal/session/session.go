// Package session handles operator login for the CLI. A login is an
// equality check against the stored employee record; the resulting session
// lives on the board with a TTL, so it survives across CLI invocations and
// expires on its own.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dyluth/pulse/pkg/board"
)

// defaultTTL covers a long shift with margin.
const defaultTTL = 12 * time.Hour

var (
	// ErrInvalidLogin is returned for a wrong name or password. The two
	// cases are deliberately indistinguishable.
	ErrInvalidLogin = errors.New("invalid name or password")
	// ErrNotLoggedIn is returned when a token has no live session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrAccessDenied is returned when an employee lacks a required role.
	ErrAccessDenied = errors.New("access denied")
)

// Service issues and resolves CLI sessions.
type Service struct {
	client *board.Client
	ttl    time.Duration
}

// NewService creates a session service. A zero ttl falls back to twelve
// hours.
func NewService(client *board.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{client: client, ttl: ttl}
}

// Login checks the password against the stored employee record and issues
// a fresh session token.
func (s *Service) Login(ctx context.Context, name, password string) (*board.Session, error) {
	employee, err := s.client.GetEmployee(ctx, name)
	if err != nil {
		if board.IsNotFound(err) {
			return nil, ErrInvalidLogin
		}
		return nil, fmt.Errorf("failed to load employee record: %w", err)
	}
	if employee.Password != password {
		return nil, ErrInvalidLogin
	}

	session := &board.Session{
		Token:        uuid.New().String(),
		EmployeeName: employee.Name,
		CreatedAtMs:  time.Now().UnixMilli(),
	}
	if err := s.client.CreateSession(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Current resolves a token to its employee. Expired or unknown tokens
// return ErrNotLoggedIn.
func (s *Service) Current(ctx context.Context, token string) (*board.Employee, error) {
	session, err := s.client.GetSession(ctx, token)
	if err != nil {
		if board.IsNotFound(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	employee, err := s.client.GetEmployee(ctx, session.EmployeeName)
	if err != nil {
		if board.IsNotFound(err) {
			// The employee was removed while the session was live.
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to load employee record: %w", err)
	}
	return employee, nil
}

// Logout deletes the session. Logging out an unknown token is a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.client.DeleteSession(ctx, token)
}

// RequireAccess resolves the token and checks the employee holds the role
// (or the all role). It returns the employee so callers can keep working
// with it.
func (s *Service) RequireAccess(ctx context.Context, token string, role board.AccessRole) (*board.Employee, error) {
	employee, err := s.Current(ctx, token)
	if err != nil {
		return nil, err
	}
	if !employee.HasAccess(role) {
		return nil, fmt.Errorf("%s requires %s access: %w", employee.Name, role, ErrAccessDenied)
	}
	return employee, nil
}
