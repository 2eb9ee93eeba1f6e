package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the catalog, hosting and auth layers.
var (
	// ErrProjectNotFound covers both a missing id and an id owned by
	// someone else; callers must not be able to tell the two apart.
	ErrProjectNotFound = errors.New("project not found")

	// ErrTenantNotFound means no project exists for a requested
	// subdomain. Distinct from a missing file inside an existing site.
	ErrTenantNotFound = errors.New("site not found")

	// ErrNoContent means the project exists but has nothing servable
	// yet; the boundary renders a placeholder instead of an error.
	ErrNoContent = errors.New("no servable content")

	// ErrNameTaken is returned when (owner, name) already exists.
	ErrNameTaken = errors.New("project name already in use")

	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid username or password")
	ErrSessionExpired = errors.New("session not found")
)

// ValidationError reports rejected user input. It is surfaced to the
// caller verbatim and never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// StorageError reports a filesystem failure (permissions, disk full, or a
// catalog/storage desync). Fatal for the triggering call.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return "storage: " + e.Op
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}
