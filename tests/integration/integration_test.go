//go:build integration

// Package integration provides integration tests that run against a
// live server with Postgres behind it.
//
// Run with: go test -tags=integration ./tests/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

var baseURL string

func TestMain(m *testing.M) {
	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to be ready
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(30 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				os.Exit(m.Run())
			}
		}
		time.Sleep(500 * time.Millisecond)
	}

	println("Server not ready at", baseURL)
	os.Exit(1)
}

func TestHealth(t *testing.T) {
	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)

	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
}

func TestReady(t *testing.T) {
	resp, err := http.Get(baseURL + "/ready")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)

	if body["database"] != "connected" {
		t.Errorf("expected database connected, got %s", body["database"])
	}
}

func TestProjects_Unauthorized(t *testing.T) {
	resp, err := http.Get(baseURL + "/api/v1/projects")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

// TestSiteLifecycle registers a fresh account and drives a project
// through the whole flow: create, upload, serve, list, delete.
func TestSiteLifecycle(t *testing.T) {
	username := fmt.Sprintf("it-user-%d", time.Now().UnixNano())
	token := registerAndLogin(t, username)

	// Create project
	status, body := postJSON(t, "/api/v1/projects", token, map[string]string{
		"name": "My Site",
	})
	if status != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d (%s)", status, body)
	}
	var project struct {
		ID        string `json:"id"`
		Subdomain string `json:"subdomain"`
	}
	json.Unmarshal(body, &project)
	if project.Subdomain != strings.ToLower(username)+"-my-site" {
		t.Errorf("unexpected subdomain %q", project.Subdomain)
	}

	// Duplicate name is a conflict
	status, _ = postJSON(t, "/api/v1/projects", token, map[string]string{
		"name": "My Site",
	})
	if status != http.StatusConflict {
		t.Errorf("duplicate project: expected 409, got %d", status)
	}

	// Empty site serves the placeholder
	resp := get(t, "/sites/"+project.Subdomain, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("placeholder: expected 200, got %d", resp.StatusCode)
	}
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(page), "My Site") {
		t.Error("placeholder should mention the project name")
	}

	// Upload index.html plus a disallowed file
	status, body = upload(t, project.ID, token, map[string]string{
		"index.html": "<h1>hello world</h1>",
		"run.sh":     "#!/bin/sh",
	})
	if status != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d (%s)", status, body)
	}
	var result struct {
		Accepted []string `json:"accepted"`
		Rejected []struct {
			Name   string `json:"name"`
			Reason string `json:"reason"`
		} `json:"rejected"`
	}
	json.Unmarshal(body, &result)
	if len(result.Accepted) != 1 || result.Accepted[0] != "index.html" {
		t.Errorf("expected index.html accepted, got %v", result.Accepted)
	}
	if len(result.Rejected) != 1 || result.Rejected[0].Reason != "disallowed type" {
		t.Errorf("expected run.sh rejected as disallowed type, got %v", result.Rejected)
	}

	// Serve the uploaded index
	resp = get(t, "/sites/"+project.Subdomain, "")
	page, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(page) != "<h1>hello world</h1>" {
		t.Errorf("unexpected site body %q", page)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html" {
		t.Errorf("expected text/html, got %q", ct)
	}

	// List files
	resp = get(t, "/api/v1/projects/"+project.ID+"/files", token)
	var files struct {
		Count int `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&files)
	resp.Body.Close()
	if files.Count != 1 {
		t.Errorf("expected 1 stored file, got %d", files.Count)
	}

	// Delete project
	req, _ := http.NewRequest(http.MethodDelete, baseURL+"/api/v1/projects/"+project.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	dresp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	dresp.Body.Close()
	if dresp.StatusCode != http.StatusOK {
		t.Errorf("delete: expected 200, got %d", dresp.StatusCode)
	}

	// Site is gone
	resp = get(t, "/sites/"+project.Subdomain, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted site: expected 404, got %d", resp.StatusCode)
	}
}

// TestSubdomainCollisionAcrossOwners creates projects for two different
// users whose (username, name) pairs normalize to the same subdomain
// base. Both creations must succeed, the later one taking the next
// suffixed candidate.
func TestSubdomainCollisionAcrossOwners(t *testing.T) {
	stamp := time.Now().UnixNano()
	hyphenated := fmt.Sprintf("clash%d-x", stamp) // "clash<n>-x" + "y"  -> clash<n>-x-y
	plain := fmt.Sprintf("clash%d", stamp)        // "clash<n>" + "x y"  -> clash<n>-x-y

	tokenA := registerAndLogin(t, hyphenated)
	tokenB := registerAndLogin(t, plain)

	status, body := postJSON(t, "/api/v1/projects", tokenA, map[string]string{"name": "y"})
	if status != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d (%s)", status, body)
	}
	var first struct {
		Subdomain string `json:"subdomain"`
	}
	json.Unmarshal(body, &first)
	if first.Subdomain != fmt.Sprintf("clash%d-x-y", stamp) {
		t.Errorf("unexpected first subdomain %q", first.Subdomain)
	}

	status, body = postJSON(t, "/api/v1/projects", tokenB, map[string]string{"name": "x y"})
	if status != http.StatusCreated {
		t.Fatalf("second create: expected 201, got %d (%s)", status, body)
	}
	var second struct {
		Subdomain string `json:"subdomain"`
	}
	json.Unmarshal(body, &second)
	if second.Subdomain != first.Subdomain+"-1" {
		t.Errorf("expected suffixed subdomain %q, got %q", first.Subdomain+"-1", second.Subdomain)
	}

	// Both sites resolve independently
	for _, sub := range []string{first.Subdomain, second.Subdomain} {
		resp := get(t, "/sites/"+sub, "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("site %s: expected 200, got %d", sub, resp.StatusCode)
		}
	}
}

func registerAndLogin(t *testing.T, username string) string {
	t.Helper()
	status, body := postJSON(t, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter22",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", username, status, body)
	}

	status, body = postJSON(t, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "hunter22",
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", username, status)
	}
	var login struct {
		Token string `json:"token"`
	}
	json.Unmarshal(body, &login)
	if login.Token == "" {
		t.Fatalf("login %s returned no token", username)
	}
	return login.Token
}

func postJSON(t *testing.T, path, token string, payload any) (int, []byte) {
	t.Helper()
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return resp
}

func upload(t *testing.T, projectID, token string, files map[string]string) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, _ := mw.CreateFormFile("files", name)
		part.Write([]byte(content))
	}
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/v1/projects/"+projectID+"/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}
