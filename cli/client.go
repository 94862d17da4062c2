package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stargrid/models"
)

// Client is the HTTP client for talking to the Stargrid server
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new HTTP client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest executes an HTTP request, attaching the session token when logged in
func (c *Client) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	url := c.baseURL + path
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}

	return resp, nil
}

// handleResponse handles an HTTP response
func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %v", err)
		}
	}

	return nil
}

// HealthCheck pings the health endpoint
func (c *Client) HealthCheck() error {
	resp, err := c.doRequest("GET", "/api/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("server unhealthy: HTTP %d", resp.StatusCode)
	}

	return nil
}

// Auth API

// Login exchanges credentials for a session token kept on the client
func (c *Client) Login(username, password string) error {
	resp, err := c.doRequest("POST", "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return err
	}

	c.token = result.Token
	return nil
}

// Logout deletes the current session
func (c *Client) Logout() error {
	resp, err := c.doRequest("POST", "/api/logout", nil)
	if err != nil {
		return err
	}
	if err := c.handleResponse(resp, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// LoggedIn reports whether the client holds a session token
func (c *Client) LoggedIn() bool {
	return c.token != ""
}

// Content API

// ListContent lists all content records
func (c *Client) ListContent() ([]models.ContentRead, error) {
	resp, err := c.doRequest("GET", "/api/content", nil)
	if err != nil {
		return nil, err
	}

	var records []models.ContentRead
	if err := c.handleResponse(resp, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// GetContent fetches one day's content
func (c *Client) GetContent(day int) (*models.ContentRead, error) {
	resp, err := c.doRequest("GET", fmt.Sprintf("/api/content/%d", day), nil)
	if err != nil {
		return nil, err
	}

	var record models.ContentRead
	if err := c.handleResponse(resp, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// UpsertContent creates or replaces one day's content
func (c *Client) UpsertContent(day int, req models.ContentUpdate) (*models.ContentRead, error) {
	resp, err := c.doRequest("PUT", fmt.Sprintf("/api/content/%d", day), req)
	if err != nil {
		return nil, err
	}

	var record models.ContentRead
	if err := c.handleResponse(resp, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// DeleteContent removes one day's content
func (c *Client) DeleteContent(day int) error {
	resp, err := c.doRequest("DELETE", fmt.Sprintf("/api/content/%d", day), nil)
	if err != nil {
		return err
	}
	return c.handleResponse(resp, nil)
}

// Settings API

// GetSettings fetches the settings row
func (c *Client) GetSettings() (*models.Settings, error) {
	resp, err := c.doRequest("GET", "/api/settings", nil)
	if err != nil {
		return nil, err
	}

	var settings models.Settings
	if err := c.handleResponse(resp, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// UpdateSettings merges a partial settings payload
func (c *Client) UpdateSettings(req models.SettingsUpdate) (*models.Settings, error) {
	resp, err := c.doRequest("PUT", "/api/settings", req)
	if err != nil {
		return nil, err
	}

	var settings models.Settings
	if err := c.handleResponse(resp, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}
