package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPermissions получает разрешения пользователя
func (c *Client) GetPermissions(ctx context.Context, userID int64) (*Permissions, error) {
	url := fmt.Sprintf("%s/internal/users/%d/permissions", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var permissions Permissions
	if err := json.NewDecoder(resp.Body).Decode(&permissions); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &permissions, nil
}

// HasPermission проверяет, что у пользователя есть разрешение.
// Неизвестный пользователь просто не имеет прав, остальные ошибки пробрасываются.
func (c *Client) HasPermission(ctx context.Context, userID int64, permission string) (bool, error) {
	permissions, err := c.GetPermissions(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		c.log.Warn("HasPermission: user_id=%d not found in UserService", userID)
		return false, nil
	}
	if err != nil {
		c.log.Error("HasPermission: failed to fetch permissions for user_id=%d: %v", userID, err)
		return false, err
	}

	return permissions.Has(permission), nil
}
