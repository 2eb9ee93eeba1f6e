package domain

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"time"
)

// Project is one hosted static site. Its subdomain names both the public
// address and the storage directory holding the uploaded files, and is
// immutable once assigned.
type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Subdomain   string    `json:"subdomain"`
	Description string    `json:"description,omitempty"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GenerateProjectID creates a unique project ID with "prj_" prefix.
func GenerateProjectID() string {
	b := make([]byte, 14)
	rand.Read(b)
	return "prj_" + hex.EncodeToString(b)[:27]
}

// StoredFile describes one uploaded file inside a project directory.
// It is derived from the filesystem on demand, never persisted.
type StoredFile struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// IncomingFile is one file in an upload batch. TransferErr carries a
// per-file transport failure; when set the content is never read.
type IncomingFile struct {
	Name        string
	Content     io.Reader
	TransferErr error
}

// RejectedFile records why a file in an upload batch was refused.
type RejectedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadResult is the per-file outcome of an upload batch. One bad file
// does not abort the rest of the batch.
type UploadResult struct {
	Accepted []string       `json:"accepted"`
	Rejected []RejectedFile `json:"rejected"`
}
