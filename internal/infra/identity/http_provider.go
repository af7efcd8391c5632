package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"softcontrol-backoffice/internal/config"
	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/ports/adapter"
)

var _ adapter.IdentityProvider = (*HTTPProvider)(nil)

// HTTPProvider talks to a GoTrue-compatible auth service over its admin
// API. Passwords never transit this codebase outside of SignIn and
// CreateUser; hashing and session storage live on the provider.
type HTTPProvider struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

func NewHTTPProvider(cfg *config.IdentityConfig) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

type providerUser struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	UserMetadata map[string]string `json:"user_metadata"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	User        providerUser `json:"user"`
}

type errorResponse struct {
	Message string `json:"msg"`
	Error   string `json:"error_description"`
}

func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (*adapter.Session, error) {
	payload := map[string]string{"email": email, "password": password}
	body, status, err := p.do(ctx, http.MethodPost, "/token?grant_type=password", payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return nil, domain.ErrNotFound
	}
	if status != http.StatusOK {
		return nil, providerError(status, body)
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &adapter.Session{
		SubjectID: resp.User.ID,
		Email:     resp.User.Email,
		Metadata:  resp.User.UserMetadata,
	}, nil
}

func (p *HTTPProvider) SignOut(ctx context.Context, subjectID string) error {
	path := "/admin/users/" + url.PathEscape(subjectID) + "/logout"
	body, status, err := p.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return providerError(status, body)
	}
	return nil
}

func (p *HTTPProvider) GetUser(ctx context.Context, subjectID string) (*adapter.IdentityUser, error) {
	path := "/admin/users/" + url.PathEscape(subjectID)
	body, status, err := p.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if status != http.StatusOK {
		return nil, providerError(status, body)
	}

	var u providerUser
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return toIdentityUser(u), nil
}

func (p *HTTPProvider) FindUserByEmail(ctx context.Context, email string) (*adapter.IdentityUser, error) {
	path := "/admin/users?email=" + url.QueryEscape(email)
	body, status, err := p.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, providerError(status, body)
	}

	var resp struct {
		Users []providerUser `json:"users"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	for _, u := range resp.Users {
		if strings.EqualFold(u.Email, email) {
			return toIdentityUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (p *HTTPProvider) CreateUser(ctx context.Context, params adapter.CreateUserParams) (string, error) {
	payload := map[string]interface{}{
		"email":         params.Email,
		"password":      params.Password,
		"email_confirm": true,
	}
	if params.Metadata != nil {
		payload["user_metadata"] = params.Metadata
	}
	body, status, err := p.do(ctx, http.MethodPost, "/admin/users", payload)
	if err != nil {
		return "", err
	}
	if status == http.StatusUnprocessableEntity || status == http.StatusConflict {
		return "", domain.ErrAlreadyExists
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", providerError(status, body)
	}

	var u providerUser
	if err := json.Unmarshal(body, &u); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return u.ID, nil
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, payload interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request data: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.serviceKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func providerError(status int, body []byte) error {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		msg := e.Message
		if msg == "" {
			msg = e.Error
		}
		if msg != "" {
			return fmt.Errorf("identity provider error: status %d, message: %s", status, msg)
		}
	}
	return fmt.Errorf("identity provider error: status %d", status)
}

func toIdentityUser(u providerUser) *adapter.IdentityUser {
	return &adapter.IdentityUser{ID: u.ID, Email: u.Email, Metadata: u.UserMetadata}
}
