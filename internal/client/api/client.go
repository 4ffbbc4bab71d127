package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// DefaultTimeout таймаут HTTP запросов по умолчанию
const DefaultTimeout = 30 * time.Second

var (
	// ErrUnauthorized возвращается, если запрос отклонен после повторной попытки с новым токеном
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoEndpoint возвращается, если адрес authority не настроен
	ErrNoEndpoint = errors.New("authority address is not configured")
)

// StatusError ответ сервера с кодом вне 2xx
type StatusError struct {
	Message    string
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// Is позволяет проверять 401 через errors.Is(err, ErrUnauthorized)
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// EndpointResolver возвращает текущий базовый адрес authority
type EndpointResolver interface {
	BaseURL() string
}

// StaticEndpoint фиксированный адрес authority
type StaticEndpoint string

// BaseURL implements EndpointResolver
func (e StaticEndpoint) BaseURL() string {
	return string(e)
}

//go:generate moq -out tokens_mock.go . TokenProvider

// TokenProvider выдает access token и обновляет его после 401
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context, staleToken string) (string, error)
}

// Client представляет HTTP клиент для взаимодействия с authority
type Client struct {
	httpClient *http.Client
	endpoint   EndpointResolver
	tokens     TokenProvider
}

// NewClient создает новый API клиент
func NewClient(endpoint EndpointResolver, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetTokenProvider подключает источник токенов для авторизованных запросов.
// Provider сам использует Refresh этого клиента, поэтому задается после создания.
func (c *Client) SetTokenProvider(tokens TokenProvider) {
	c.tokens = tokens
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, c.endpoint.BaseURL(), "/api/v1/auth/login", req, "", &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, c.endpoint.BaseURL(), "/api/v1/auth/refresh", nil, refreshToken, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout отзывает refresh tokens пользователя
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	err := c.doRequest(ctx, http.MethodPost, c.endpoint.BaseURL(), "/api/v1/auth/logout", nil, accessToken, nil)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Health проверяет доступность authority по явному адресу
func (c *Client) Health(ctx context.Context, baseURL string) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, baseURL, "/api/v1/health", nil, "", &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// FetchCollections получает полные снимки коллекций
func (c *Client) FetchCollections(ctx context.Context, names []string) (*api.FullSyncResponse, error) {
	path := "/api/v1/collections?names=" + url.QueryEscape(strings.Join(names, ","))

	var resp api.FullSyncResponse
	if err := c.doAuthorized(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch collections failed: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("fetch collections failed: %s", resp.Error)
	}
	return &resp, nil
}

// GetRecord получает одну запись коллекции
func (c *Client) GetRecord(ctx context.Context, collection, id string) (models.Record, error) {
	path := fmt.Sprintf("/api/v1/collections/%s/%s", url.PathEscape(collection), url.PathEscape(id))

	var rec models.Record
	if err := c.doAuthorized(ctx, http.MethodGet, path, nil, &rec); err != nil {
		return nil, fmt.Errorf("get record failed: %w", err)
	}
	return rec, nil
}

// Stats получает сводку по коллекциям
func (c *Client) Stats(ctx context.Context) (*api.StatsResponse, error) {
	var resp api.StatsResponse
	if err := c.doAuthorized(ctx, http.MethodGet, "/api/v1/stats", nil, &resp); err != nil {
		return nil, fmt.Errorf("stats request failed: %w", err)
	}
	return &resp, nil
}

// doAuthorized выполняет запрос с access token.
// После 401 запрос повторяется ровно один раз с токеном из refresh gate.
func (c *Client) doAuthorized(ctx context.Context, method, path string, body, result any) error {
	if c.tokens == nil {
		return fmt.Errorf("%w: token provider is not configured", ErrUnauthorized)
	}

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	err = c.doRequest(ctx, method, c.endpoint.BaseURL(), path, body, token, result)
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}

	fresh, refreshErr := c.tokens.Refresh(ctx, token)
	if refreshErr != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, refreshErr)
	}

	return c.doRequest(ctx, method, c.endpoint.BaseURL(), path, body, fresh, result)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, baseURL, path string, body any, token string, result any) error {
	if baseURL == "" {
		return ErrNoEndpoint
	}
	fullURL := strings.TrimSuffix(baseURL, "/") + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			statusErr.Message = errResp.Message
			if statusErr.Message == "" {
				statusErr.Message = errResp.Error
			}
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
