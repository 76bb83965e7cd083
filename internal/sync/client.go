// Package sync uploads export artifacts to cloud storage. The pipeline does
// not depend on it; an external caller composes the two.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://cloud-api.yandex.net/v1/disk"

// DiskClient is a minimal Yandex Disk REST client covering connection
// checks, folder creation, and file upload.
type DiskClient struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewDiskClient creates a client with the given OAuth token. An empty
// baseURL selects the production API.
func NewDiskClient(token, baseURL string) *DiskClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &DiskClient{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// DiskInfo describes the remote disk.
type DiskInfo struct {
	TotalSpace int64 `json:"total_space"`
	UsedSpace  int64 `json:"used_space"`
	User       struct {
		Login       string `json:"login"`
		DisplayName string `json:"display_name"`
	} `json:"user"`
}

type apiError struct {
	Description string `json:"description"`
	ErrorCode   string `json:"error"`
}

type uploadTarget struct {
	Href string `json:"href"`
}

func (c *DiskClient) do(ctx context.Context, method, endpoint string, out any) error {
	if c.token == "" {
		return fmt.Errorf("access token not set")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Description != "" {
			return fmt.Errorf("api error %d: %s", resp.StatusCode, apiErr.Description)
		}
		return fmt.Errorf("api error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// CheckConnection verifies the token and returns disk information.
func (c *DiskClient) CheckConnection(ctx context.Context) (*DiskInfo, error) {
	var info DiskInfo
	if err := c.do(ctx, http.MethodGet, "/", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateFolder creates a remote folder. An already-existing folder is not an
// error.
func (c *DiskClient) CreateFolder(ctx context.Context, path string) error {
	err := c.do(ctx, http.MethodPut, "/resources?path="+url.QueryEscape(path), nil)
	if err != nil && strings.Contains(err.Error(), "409") {
		return nil
	}
	return err
}

// UploadFile uploads content to the given remote path, overwriting any
// existing file. The API hands out a one-shot upload URL first.
func (c *DiskClient) UploadFile(ctx context.Context, path, contentType string, content []byte) error {
	var target uploadTarget
	endpoint := "/resources/upload?path=" + url.QueryEscape(path) + "&overwrite=true"
	if err := c.do(ctx, http.MethodGet, endpoint, &target); err != nil {
		return fmt.Errorf("get upload URL: %w", err)
	}
	if target.Href == "" {
		return fmt.Errorf("get upload URL: empty href")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target.Href, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	return nil
}
