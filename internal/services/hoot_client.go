package services

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

	"hootline/internal/auth"
	"hootline/internal/models"
)

// HootClient talks to the remote hoot REST API.
type HootClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHootClient creates a client for the API rooted at baseURL.
func NewHootClient(baseURL string, timeout time.Duration) *HootClient {
	return &HootClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// apiError is the error body the hoot API sends back.
type apiError struct {
	Err   string `json:"err"`
	Error string `json:"error"`
}

func (c *HootClient) Index(ctx context.Context) ([]models.Hoot, error) {
	var hoots []models.Hoot
	if err := c.do(ctx, http.MethodGet, "/hoots", nil, &hoots); err != nil {
		return nil, fmt.Errorf("list hoots: %w", err)
	}
	return hoots, nil
}

func (c *HootClient) Show(ctx context.Context, hootID string) (*models.Hoot, error) {
	var hoot models.Hoot
	if err := c.do(ctx, http.MethodGet, "/hoots/"+url.PathEscape(hootID), nil, &hoot); err != nil {
		return nil, fmt.Errorf("show hoot %s: %w", hootID, err)
	}
	return &hoot, nil
}

func (c *HootClient) CreateComment(ctx context.Context, hootID string, form models.CommentForm) (*models.Comment, error) {
	var comment models.Comment
	path := "/hoots/" + url.PathEscape(hootID) + "/comments"
	if err := c.do(ctx, http.MethodPost, path, form, &comment); err != nil {
		return nil, fmt.Errorf("create comment on %s: %w", hootID, err)
	}
	return &comment, nil
}

func (c *HootClient) DeleteComment(ctx context.Context, hootID, commentID string) error {
	path := "/hoots/" + url.PathEscape(hootID) + "/comments/" + url.PathEscape(commentID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete comment %s: %w", commentID, err)
	}
	return nil
}

func (c *HootClient) DeleteHoot(ctx context.Context, hootID string) error {
	if err := c.do(ctx, http.MethodDelete, "/hoots/"+url.PathEscape(hootID), nil, nil); err != nil {
		return fmt.Errorf("delete hoot %s: %w", hootID, err)
	}
	return nil
}

// do sends one request and decodes a 2xx JSON body into out (if non-nil).
func (c *HootClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := auth.TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))
	var body apiError
	if json.Unmarshal(raw, &body) == nil {
		if body.Err != "" {
			msg = body.Err
		} else if body.Error != "" {
			msg = body.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	}
	return fmt.Errorf("hoot api returned %d: %s", resp.StatusCode, msg)
}
