// Package backend is the HTTP client for the Ledgerline API. All requests go
// through one door so bearer auth, envelope interpretation, and the failure
// taxonomy stay consistent across endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ledgerline/ledgerline-mobile/internal/platform/httpx"
	"github.com/ledgerline/ledgerline-mobile/internal/rbac"
	"github.com/ledgerline/ledgerline-mobile/internal/session"
)

// Client wraps interactions with the Ledgerline backend.
type Client struct {
	baseURL    string
	creds      session.CredentialProvider
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a new client. A zero timeout keeps the transport's
// default behavior.
func NewClient(baseURL string, creds session.CredentialProvider, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		creds:      creds,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// PageMeta is the pagination metadata an endpoint chose to return. Absent
// fields are nil; no field is guaranteed to be present on any endpoint.
type PageMeta struct {
	NextPageURL *string
	CurrentPage *int
	LastPage    *int
	PerPage     *int
}

// Page is one fetched page of records in server order.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

// ListPage fetches one page of a resource collection.
func ListPage[T any](ctx context.Context, c *Client, path string, page int) (Page[T], error) {
	env, err := c.do(ctx, http.MethodGet, path+"?page="+strconv.Itoa(page), nil)
	if err != nil {
		return Page[T]{}, err
	}
	var items []T
	if err := env.DecodeData(&items); err != nil {
		return Page[T]{}, err
	}
	return Page[T]{
		Items: items,
		Meta: PageMeta{
			NextPageURL: env.NextPageURL,
			CurrentPage: env.CurrentPage,
			LastPage:    env.LastPage,
			PerPage:     env.PerPage,
		},
	}, nil
}

// Mutate performs a create/update/delete/approve call. The idempotency key
// lets the backend drop accidental resubmissions of the same mutation.
func (c *Client) Mutate(ctx context.Context, path string, payload any, idempotencyKey string) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("backend: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	_, err := c.do(ctx, http.MethodPost, path, body, header{"Idempotency-Key", idempotencyKey})
	return err
}

// Grants fetches the permission grant list for a user.
func (c *Client) Grants(ctx context.Context, userID int64) ([]rbac.Grant, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/permissions/"+strconv.FormatInt(userID, 10), nil)
	if err != nil {
		return nil, err
	}
	var grants []rbac.Grant
	if len(env.Permissions) > 0 {
		if err := json.Unmarshal(env.Permissions, &grants); err != nil {
			return nil, fmt.Errorf("%w: decode permissions: %v", httpx.ErrTransport, err)
		}
	}
	return grants, nil
}

type header struct {
	key   string
	value string
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, headers ...header) (*httpx.Envelope, error) {
	token, err := c.creds.Token(ctx)
	if err != nil || token == "" {
		return nil, httpx.ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log("backend call failed", method, path, err)
		return nil, fmt.Errorf("%w: %v", httpx.ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var env httpx.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log("backend response unreadable", method, path, err)
		return nil, fmt.Errorf("%w: decode envelope: %v", httpx.ErrTransport, err)
	}
	if !env.OK() {
		err := env.Err()
		c.log("backend rejected request", method, path, err)
		return nil, err
	}
	return &env, nil
}

func (c *Client) log(msg, method, path string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(msg,
		slog.String("method", method),
		slog.String("path", path),
		slog.Any("error", err))
}
