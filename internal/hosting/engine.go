// Package hosting owns the on-disk tree backing hosted sites: one root
// directory with one flat subdirectory per project, named by subdomain.
// It is the only component allowed to create, write into, or remove a
// project directory.
package hosting

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dvloasia/pagehost/internal/domain"
)

const indexFile = "index.html"

// Engine maps subdomains to project directories and performs upload
// validation, safe-serve resolution, and directory lifecycle.
type Engine struct {
	root string
}

// NewEngine creates the hosting engine, ensuring the root storage
// directory exists.
func NewEngine(root string) (*Engine, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &domain.StorageError{Op: "create sites root", Err: err}
	}
	return &Engine{root: root}, nil
}

// Root returns the root storage directory.
func (e *Engine) Root() string { return e.root }

func (e *Engine) projectDir(subdomain string) string {
	return filepath.Join(e.root, subdomain)
}

// safeFilename rejects any name carrying a path separator or a
// traversal segment. Checked on the raw, undecoded value before any
// join against the project directory.
func safeFilename(name string) bool {
	return name != "" &&
		!strings.Contains(name, "..") &&
		!strings.ContainsAny(name, "/\\")
}

// CreateStorage creates the empty directory for a new project.
func (e *Engine) CreateStorage(subdomain string) error {
	if err := os.Mkdir(e.projectDir(subdomain), 0o755); err != nil {
		return &domain.StorageError{Op: "create project directory", Err: err}
	}
	return nil
}

// DeleteStorage removes the project directory tree. Deleting an
// already-absent directory is a success, not an error.
func (e *Engine) DeleteStorage(subdomain string) error {
	if err := os.RemoveAll(e.projectDir(subdomain)); err != nil {
		return &domain.StorageError{Op: "remove project directory", Err: err}
	}
	return nil
}

// UploadFiles validates and places an upload batch into the project
// directory. Per-file failures are collected in the result; they never
// abort the batch. The directory must already exist: a missing
// directory means the catalog and storage have diverged, and the whole
// call fails rather than silently recreating it.
func (e *Engine) UploadFiles(subdomain string, files []domain.IncomingFile) (*domain.UploadResult, error) {
	dir := e.projectDir(subdomain)
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, &domain.StorageError{Op: "project directory missing for " + subdomain, Err: err}
	}

	res := &domain.UploadResult{}
	for _, f := range files {
		if f.TransferErr != nil {
			res.Rejected = append(res.Rejected, domain.RejectedFile{Name: f.Name, Reason: "transfer error"})
			continue
		}
		if !safeFilename(f.Name) {
			res.Rejected = append(res.Rejected, domain.RejectedFile{Name: f.Name, Reason: "unsafe filename"})
			continue
		}
		if !allowedType(f.Name) {
			res.Rejected = append(res.Rejected, domain.RejectedFile{Name: f.Name, Reason: "disallowed type"})
			continue
		}
		if err := placeFile(dir, filepath.Base(f.Name), f.Content); err != nil {
			res.Rejected = append(res.Rejected, domain.RejectedFile{Name: f.Name, Reason: "write failed"})
			continue
		}
		res.Accepted = append(res.Accepted, f.Name)
	}
	return res, nil
}

// placeFile writes content to a temp file in the target directory and
// renames it into place, so a reader never observes a half-written file
// under the final name. Last write wins on name collisions.
func placeFile(dir, name string, content io.Reader) error {
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("rename upload: %w", err)
	}
	return nil
}

// ListFiles enumerates the immediate children of a project directory.
// Subdirectories and symlinks are not a supported upload target and are
// skipped. An absent directory yields an empty listing.
func (e *Engine) ListFiles(subdomain string) ([]domain.StoredFile, error) {
	entries, err := os.ReadDir(e.projectDir(subdomain))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "list project directory", Err: err}
	}

	out := make([]domain.StoredFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, domain.StoredFile{
			Name:       entry.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	return out, nil
}

// Resolve maps a requested path to a servable file strictly inside the
// project directory. Traversal attempts and missing files fall back to
// index.html; when not even index.html exists it returns ErrNoContent
// so the boundary can render a placeholder. The returned path is served
// byte-for-byte with the Content-Type from the extension table.
func (e *Engine) Resolve(subdomain, requested string) (path, contentType string, err error) {
	dir := e.projectDir(subdomain)

	name := requested
	if name == "" || !safeFilename(name) {
		name = indexFile
	}

	target := filepath.Join(dir, filepath.Base(name))
	if !regularFile(target) {
		target = filepath.Join(dir, indexFile)
		if !regularFile(target) {
			return "", "", domain.ErrNoContent
		}
	}
	return target, MimeFor(target), nil
}

// regularFile reports whether path is a plain file. Lstat keeps
// symlinked children out of the serve path.
func regularFile(path string) bool {
	fi, err := os.Lstat(path)
	return err == nil && fi.Mode().IsRegular()
}
