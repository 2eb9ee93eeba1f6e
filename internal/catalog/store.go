package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/dvloasia/pagehost/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxNameLength = 100

	// Bound on subdomain probe attempts. Exhaustion is effectively
	// unreachable and treated as a storage failure.
	maxSubdomainAttempts = 50

	uniqueViolation = "23505"
)

var nameRegex = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// Store is the durable catalog of projects, backed by Postgres.
// Uniqueness of (owner_id, name) and of subdomain is enforced by the
// database, not by pre-checks.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store on top of an existing connection pool. The
// pool's lifecycle is owned by the caller.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func validateName(name string) error {
	if name == "" {
		return domain.Validationf("project name is required")
	}
	if len(name) > maxNameLength {
		return domain.Validationf("project name must be at most %d characters", maxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return domain.Validationf("project name may only contain letters, digits, spaces, hyphens and underscores")
	}
	return nil
}

// CreateProject persists a new project with a freshly derived, globally
// unique subdomain. Collisions on the subdomain index are absorbed by
// retrying with a monotonic integer suffix; a duplicate (owner, name)
// surfaces as ErrNameTaken. Either the row exists with a valid unique
// subdomain or nothing is persisted.
func (s *Store) CreateProject(ctx context.Context, ownerID, name, description string) (*domain.Project, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	var username string
	err := s.pool.QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, ownerID).Scan(&username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup owner: %w", err)
	}

	base := baseSubdomain(username, name)
	for attempt := 0; attempt < maxSubdomainAttempts; attempt++ {
		p := domain.Project{
			ID:          domain.GenerateProjectID(),
			OwnerID:     ownerID,
			Name:        name,
			Subdomain:   subdomainCandidate(base, attempt),
			Description: description,
			Public:      true,
		}

		err := s.pool.QueryRow(ctx, `
			INSERT INTO projects (id, owner_id, name, subdomain, description, public)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at, updated_at`,
			p.ID, p.OwnerID, p.Name, p.Subdomain, p.Description, p.Public,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
		if err == nil {
			return &p, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "projects_owner_id_name_key":
				return nil, domain.ErrNameTaken
			case "projects_subdomain_key":
				// Another project won this candidate; probe the next one.
				continue
			}
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}

	return nil, &domain.StorageError{Op: "subdomain probe space exhausted for " + base}
}

const projectColumns = `id, owner_id, name, subdomain, description, public, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Subdomain, &p.Description, &p.Public, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProject looks up a project by id, regardless of owner.
func (s *Store) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return scanProject(s.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

// GetProjectForOwner looks up a project by id scoped to an owner. A
// project owned by someone else is indistinguishable from a missing one.
func (s *Store) GetProjectForOwner(ctx context.Context, id, ownerID string) (*domain.Project, error) {
	return scanProject(s.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

// GetProjectBySubdomain is the public serve-path lookup, indexed on the
// unique subdomain column.
func (s *Store) GetProjectBySubdomain(ctx context.Context, subdomain string) (*domain.Project, error) {
	return scanProject(s.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE subdomain = $1`, subdomain))
}

// ListProjects returns the owner's projects, newest first.
func (s *Store) ListProjects(ctx context.Context, ownerID string) ([]domain.Project, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 8)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Subdomain, &p.Description, &p.Public, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteProject removes the catalog row for an owner's project. The
// caller is responsible for removing the storage directory first.
func (s *Store) DeleteProject(ctx context.Context, id, ownerID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
