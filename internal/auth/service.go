// Package auth provides account registration, login and session lookup.
// The hosting core only ever sees the resulting user id and username;
// credentials never leave this package.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/dvloasia/pagehost/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxUsernameLength = 50

	sessionTTL = 30 * 24 * time.Hour

	uniqueViolation = "23505"
)

// Usernames feed subdomain derivation, so they are restricted to
// characters that normalize cleanly.
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Service is the Postgres-backed account service.
type Service struct {
	pool *pgxpool.Pool
}

// NewService creates a Service on top of an existing connection pool.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.Validationf("username, email and password are required")
	}
	if len(username) > maxUsernameLength || !usernameRegex.MatchString(username) {
		return nil, domain.Validationf("username may only contain letters, digits, hyphens and underscores")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Validationf("invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, domain.Validationf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{ID: domain.GenerateUserID(), Username: username, Email: email}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		u.ID, u.Username, u.Email, string(hash),
	).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return nil, domain.ErrUsernameTaken
			case "users_email_key":
				return nil, domain.ErrEmailTaken
			}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

// Login verifies the credentials, stamps last_login_at, and mints an
// opaque session token. A wrong username and a wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	var (
		u    domain.User
		hash string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, created_at, last_login_at
		FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.Email, &hash, &u.CreatedAt, &u.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", domain.ErrBadCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, "", domain.ErrBadCredentials
	}

	if _, err := s.pool.Exec(ctx,
		`UPDATE users SET last_login_at = now() WHERE id = $1`, u.ID); err != nil {
		return nil, "", fmt.Errorf("stamp last login: %w", err)
	}

	token := uuid.NewString()
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, now() + $3)`, token, u.ID, sessionTTL); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return &u, token, nil
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// UserByToken resolves a session token to its user. Expired sessions
// are treated the same as unknown tokens.
func (s *Service) UserByToken(ctx context.Context, token string) (*domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(ctx, `
		SELECT u.id, u.username, u.email, u.created_at, u.last_login_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > now()`, token,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	return &u, nil
}
