package client

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Project represents a hosted site.
type Project struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Subdomain   string `json:"subdomain"`
	Description string `json:"description,omitempty"`
	Public      bool   `json:"public"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProjectListResponse is the response from listing projects.
type ProjectListResponse struct {
	Projects []Project `json:"projects"`
	Count    int       `json:"count"`
}

// StoredFile is one file inside a project.
type StoredFile struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

// FileListResponse is the response from listing a project's files.
type FileListResponse struct {
	Files []StoredFile `json:"files"`
	Count int          `json:"count"`
}

// RejectedFile records why an uploaded file was refused.
type RejectedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadResult is the per-file outcome of an upload.
type UploadResult struct {
	Accepted []string       `json:"accepted"`
	Rejected []RejectedFile `json:"rejected"`
}

// ProjectCreate creates a new project.
func (c *Client) ProjectCreate(name, description string) (*Project, error) {
	var project Project
	err := c.do(http.MethodPost, "/api/v1/projects", map[string]string{
		"name":        name,
		"description": description,
	}, &project, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ProjectList lists the caller's projects, newest first.
func (c *Client) ProjectList() (*ProjectListResponse, error) {
	var resp ProjectListResponse
	if err := c.do(http.MethodGet, "/api/v1/projects", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectGet retrieves one project by id.
func (c *Client) ProjectGet(id string) (*Project, error) {
	var project Project
	if err := c.do(http.MethodGet, "/api/v1/projects/"+id, nil, &project, http.StatusOK); err != nil {
		return nil, err
	}
	return &project, nil
}

// ProjectDelete removes a project and its hosted files.
func (c *Client) ProjectDelete(id string) error {
	return c.do(http.MethodDelete, "/api/v1/projects/"+id, nil, nil, http.StatusOK)
}

// ProjectFiles lists the stored files of a project.
func (c *Client) ProjectFiles(id string) (*FileListResponse, error) {
	var resp FileListResponse
	if err := c.do(http.MethodGet, "/api/v1/projects/"+id+"/files", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload sends local files to a project as one multipart batch. The
// server reports acceptance per file.
func (c *Client) Upload(projectID string, paths []string) (*UploadResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		for _, path := range paths {
			f, err := os.Open(path)
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			part, err := mw.CreateFormFile("files", filepath.Base(path))
			if err == nil {
				_, err = io.Copy(part, f)
			}
			f.Close()
			if err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequest(http.MethodPost, c.server+"/api/v1/projects/"+projectID+"/files", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	var result UploadResult
	if err := c.decode(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}
