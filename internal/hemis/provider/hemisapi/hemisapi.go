// Package hemisapi implements the identity provider against the real
// HEMIS student-records REST API.
package hemisapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Kirito514/unilib/internal/hemis"
	"github.com/Kirito514/unilib/internal/hemis/provider"
	"github.com/Kirito514/unilib/internal/logger"
	"github.com/Kirito514/unilib/internal/token"
)

const providerName = "hemis"

const defaultTimeout = 10 * time.Second

// Client speaks the HEMIS wire protocol: a two-step credential
// exchange (auth/login then account/me), token refresh, and a bulk
// roster listing. It performs no retries; retry policy belongs to the
// caller.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

// New constructs a client. baseURL must end with a trailing slash;
// apiKey is the server-side bearer credential used for roster
// listings (student-initiated calls carry their own tokens).
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

func (c *Client) Name() string {
	return providerName
}

// Login exchanges credentials for a bearer token, then the token for
// the student record. Step 2 only runs after step 1 succeeds; a token
// whose record fetch fails is discarded.
func (c *Client) Login(ctx context.Context, studentID, password string) (*provider.LoginResult, error) {
	body, err := json.Marshal(map[string]string{
		"login":    studentID,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	status, payload, err := c.do(ctx, http.MethodPost, "auth/login", "", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, hemis.ErrInvalidCredentials
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("login returned status %d: %w", status, hemis.ErrRemoteUnavailable)
	}

	tok, err := decodeToken(payload, c.now())
	if err != nil {
		return nil, err
	}

	record, err := c.FetchProfile(ctx, tok.Value)
	if err != nil {
		return nil, err
	}

	logger.Info("hemis login complete", map[string]any{
		"student_id": record.StudentIDNumber,
		"expires_at": tok.ExpiresAt().Unix(),
	})

	return &provider.LoginResult{Token: tok, Record: record}, nil
}

// FetchProfile retrieves the student record for an existing token.
// Idempotent; a 401 means the remote no longer accepts the token.
func (c *Client) FetchProfile(ctx context.Context, tok string) (hemis.Record, error) {
	status, payload, err := c.do(ctx, http.MethodGet, "account/me", tok, nil)
	if err != nil {
		return hemis.Record{}, err
	}
	if status == http.StatusUnauthorized {
		return hemis.Record{}, hemis.ErrTokenExpired
	}
	if status < 200 || status > 299 {
		return hemis.Record{}, fmt.Errorf("account/me returned status %d: %w", status, hemis.ErrRemoteUnavailable)
	}

	var record hemis.Record
	if err := json.Unmarshal(unwrap(payload), &record); err != nil {
		return hemis.Record{}, fmt.Errorf("account/me: %w", hemis.ErrMalformedResponse)
	}
	if record.StudentIDNumber == "" {
		return hemis.Record{}, fmt.Errorf("account/me missing student_id_number: %w", hemis.ErrMalformedResponse)
	}
	return record, nil
}

// RefreshToken exchanges a token for a fresh one. The caller keeps
// its current token on failure.
func (c *Client) RefreshToken(ctx context.Context, tok string) (token.Token, error) {
	status, payload, err := c.do(ctx, http.MethodPost, "auth/refresh-token", tok, nil)
	if err != nil {
		return token.Token{}, err
	}
	if status == http.StatusUnauthorized {
		return token.Token{}, hemis.ErrTokenExpired
	}
	if status < 200 || status > 299 {
		return token.Token{}, fmt.Errorf("refresh returned status %d: %w", status, hemis.ErrRemoteUnavailable)
	}
	return decodeToken(payload, c.now())
}

// VerifyStudent scans the bulk roster for an exact identifier match.
// HEMIS has no single-record lookup by student_id_number, so this is
// an O(n) listing; callers treat it as a rarely exercised fallback.
func (c *Client) VerifyStudent(ctx context.Context, studentID string) (hemis.Record, error) {
	status, payload, err := c.do(ctx, http.MethodGet, "data/student-list", c.apiKey, nil)
	if err != nil {
		return hemis.Record{}, err
	}
	if status < 200 || status > 299 {
		return hemis.Record{}, fmt.Errorf("student-list returned status %d: %w", status, hemis.ErrRemoteUnavailable)
	}

	items, err := decodeRoster(payload)
	if err != nil {
		return hemis.Record{}, err
	}

	for _, record := range items {
		if record.StudentIDNumber == studentID {
			return record, nil
		}
	}

	logger.Info("student absent from roster", map[string]any{
		"student_id":  studentID,
		"roster_size": len(items),
	})
	return hemis.Record{}, hemis.ErrNotFound
}

// do issues one bounded request and returns the status and body.
// Transport failures, including the client timeout, surface as
// ErrRemoteUnavailable.
func (c *Client) do(ctx context.Context, method, endpoint, bearer string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %v: %w", method, endpoint, err, hemis.ErrRemoteUnavailable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %v: %w", method, endpoint, err, hemis.ErrRemoteUnavailable)
	}
	return resp.StatusCode, payload, nil
}

type tokenPayload struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

func decodeToken(payload []byte, issuedAt time.Time) (token.Token, error) {
	var tp tokenPayload
	if err := json.Unmarshal(unwrap(payload), &tp); err != nil || tp.Token == "" {
		return token.Token{}, fmt.Errorf("missing token: %w", hemis.ErrMalformedResponse)
	}
	return token.New(tp.Token, issuedAt, time.Duration(tp.ExpiresIn)*time.Second), nil
}

// decodeRoster accepts both roster envelopes HEMIS is known to emit:
// {items: [...], pagination: {...}} and a bare array.
func decodeRoster(payload []byte) ([]hemis.Record, error) {
	data := unwrap(payload)

	var paged struct {
		Items []hemis.Record `json:"items"`
	}
	if err := json.Unmarshal(data, &paged); err == nil && paged.Items != nil {
		return paged.Items, nil
	}

	var items []hemis.Record
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("student-list: %w", hemis.ErrMalformedResponse)
	}
	return items, nil
}

// unwrap peels the {data: ...} envelope when present; several HEMIS
// endpoints answer both wrapped and bare.
func unwrap(payload []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data
	}
	return payload
}
