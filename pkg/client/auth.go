package client

import "net/http"

// User is an account on the server.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// LoginResponse carries the session token returned by login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Register creates a new account.
func (c *Client) Register(username, email, password string) (*User, error) {
	var user User
	err := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &user, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the client's session token.
func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/api/v1/auth/logout", nil, nil, http.StatusOK)
}

// Me returns the authenticated user.
func (c *Client) Me() (*User, error) {
	var user User
	if err := c.do(http.MethodGet, "/api/v1/auth/me", nil, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}
