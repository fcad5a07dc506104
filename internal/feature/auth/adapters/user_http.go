package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/domain/entity"
	"courtside_auth/internal/feature/auth/usecase"
)

// userHTTP はリモートの/usersエンドポイントを使うUserDirectory実装です。
type userHTTP struct {
	client  *http.Client
	baseURL string
}

var _ usecase.UserDirectory = (*userHTTP)(nil)

// NewUserHTTP はbaseURL（例: "http://localhost:8080"）を呼び出すuserHTTPを生成します。
func NewUserHTTP(client *http.Client, baseURL string) *userHTTP {
	return &userHTTP{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// GetUsers はGET {base}/usersを取得します。
func (r *userHTTP) GetUsers(ctx context.Context) ([]entity.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/users", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var users []entity.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// CreateUser はPOST {base}/usersにユーザーを送信します。409 Conflictはdomain.ErrEmailAlreadyExistsになります。
func (r *userHTTP) CreateUser(ctx context.Context, u *entity.User) error {
	body, err := json.Marshal(u)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/users", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrEmailAlreadyExists
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return statusError(resp)
	}
	return nil
}

func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("user directory returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}
