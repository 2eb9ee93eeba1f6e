// Package site composes the project catalog and the hosting engine into
// the boundary the request layer consumes. It keeps the two halves of a
// project — the catalog row and the storage directory — created and
// destroyed together.
package site

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dvloasia/pagehost/internal/domain"
	"github.com/dvloasia/pagehost/internal/hosting"
)

// Catalog is the slice of the project catalog the service depends on.
type Catalog interface {
	CreateProject(ctx context.Context, ownerID, name, description string) (*domain.Project, error)
	GetProjectForOwner(ctx context.Context, id, ownerID string) (*domain.Project, error)
	GetProjectBySubdomain(ctx context.Context, subdomain string) (*domain.Project, error)
	ListProjects(ctx context.Context, ownerID string) ([]domain.Project, error)
	DeleteProject(ctx context.Context, id, ownerID string) error
}

// ServedFile is a resolved, servable file inside a tenant directory.
type ServedFile struct {
	Path        string
	ContentType string
	Project     *domain.Project
}

// Service implements the external project/hosting interface.
type Service struct {
	catalog Catalog
	engine  *hosting.Engine
}

// NewService wires a catalog and a hosting engine together.
func NewService(catalog Catalog, engine *hosting.Engine) *Service {
	return &Service{catalog: catalog, engine: engine}
}

// CreateProject persists the catalog row and creates its storage
// directory. If storage creation fails the row is compensated away, so
// no catalog row exists without a directory.
func (s *Service) CreateProject(ctx context.Context, ownerID, name, description string) (*domain.Project, error) {
	p, err := s.catalog.CreateProject(ctx, ownerID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.engine.CreateStorage(p.Subdomain); err != nil {
		if derr := s.catalog.DeleteProject(ctx, p.ID, ownerID); derr != nil {
			slog.Error("orphaned catalog row after storage failure",
				"project_id", p.ID, "subdomain", p.Subdomain, "error", derr)
		}
		return nil, err
	}
	return p, nil
}

// GetProject returns an owner's project.
func (s *Service) GetProject(ctx context.Context, id, ownerID string) (*domain.Project, error) {
	return s.catalog.GetProjectForOwner(ctx, id, ownerID)
}

// ListProjects returns the owner's projects, newest first.
func (s *Service) ListProjects(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return s.catalog.ListProjects(ctx, ownerID)
}

// DeleteProject removes the storage directory first, then the catalog
// row. A storage failure aborts the call and leaves the row intact so
// the failure stays visible and retryable.
func (s *Service) DeleteProject(ctx context.Context, id, ownerID string) error {
	p, err := s.catalog.GetProjectForOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.engine.DeleteStorage(p.Subdomain); err != nil {
		return err
	}
	return s.catalog.DeleteProject(ctx, id, ownerID)
}

// UploadFiles places an upload batch into the owner's project directory.
func (s *Service) UploadFiles(ctx context.Context, id, ownerID string, files []domain.IncomingFile) (*domain.UploadResult, error) {
	p, err := s.catalog.GetProjectForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return s.engine.UploadFiles(p.Subdomain, files)
}

// ListFiles enumerates the stored files of an owner's project.
func (s *Service) ListFiles(ctx context.Context, id, ownerID string) ([]domain.StoredFile, error) {
	p, err := s.catalog.GetProjectForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return s.engine.ListFiles(p.Subdomain)
}

// Serve resolves a public request against a tenant directory. An
// unknown subdomain yields ErrTenantNotFound; a project with no
// servable file yields ErrNoContent with the project attached via the
// second return so the boundary can render its placeholder.
//
// The stored visibility flag is intentionally not enforced here: every
// subdomain is fetchable regardless of the flag.
func (s *Service) Serve(ctx context.Context, subdomain, requested string) (*ServedFile, *domain.Project, error) {
	p, err := s.catalog.GetProjectBySubdomain(ctx, subdomain)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return nil, nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	path, contentType, err := s.engine.Resolve(p.Subdomain, requested)
	if err != nil {
		return nil, p, err
	}
	return &ServedFile{Path: path, ContentType: contentType, Project: p}, p, nil
}
