// Package client implements the Reactivities client layer: a typed agent
// over the /api surface and the observable stores built on top of it.
package client

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

	"github.com/reactivities/reactivities-go/types"
)

const defaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20 // 1MB

// RequestError is a non-2xx response from the API, carrying the status code
// and the parsed error body when one was present.
type RequestError struct {
	StatusCode int
	Body       types.ApiError
	Raw        string
}

func (e *RequestError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("request failed: status=%d message=%s", e.StatusCode, e.Body.Message)
	}
	return fmt.Sprintf("request failed: status=%d", e.StatusCode)
}

// TokenSource supplies the bearer token for outgoing requests. An empty
// return means no Authorization header is attached.
type TokenSource func() string

// Agent is the HTTP collaborator the stores call. Resource groups mirror
// the API surface.
type Agent struct {
	baseURL string
	http    *http.Client
	token   TokenSource

	Activities *ActivitiesService
	Account    *AccountService
	Comments   *CommentsService
}

func NewAgent(baseURL string, httpClient *http.Client, token TokenSource) *Agent {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if token == nil {
		token = func() string { return "" }
	}

	a := &Agent{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		token:   token,
	}
	a.Activities = &ActivitiesService{agent: a}
	a.Account = &AccountService{agent: a}
	a.Comments = &CommentsService{agent: a}
	return a
}

func (a *Agent) BaseURL() string {
	return a.baseURL
}

func (a *Agent) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("agent: marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("agent: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := a.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{
			StatusCode: resp.StatusCode,
			Raw:        strings.TrimSpace(string(raw)),
		}
		// Best effort: the body may not be the structured error shape
		_ = json.Unmarshal(raw, &reqErr.Body)
		return nil, reqErr
	}

	return raw, nil
}

// request issues a JSON request and decodes the response into T. Void
// endpoints use struct{} and ignore the body.
func request[T any](ctx context.Context, a *Agent, method, path string, in any) (T, error) {
	var out T

	raw, err := a.do(ctx, method, path, in)
	if err != nil {
		return out, err
	}

	if len(raw) == 0 {
		return out, nil
	}
	if _, ok := any(out).(struct{}); ok {
		return out, nil
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("agent: decode response: %w", err)
	}
	return out, nil
}

type ActivitiesService struct {
	agent *Agent
}

func (s *ActivitiesService) List(ctx context.Context) ([]types.Activity, error) {
	return request[[]types.Activity](ctx, s.agent, http.MethodGet, "/activities", nil)
}

func (s *ActivitiesService) Details(ctx context.Context, id string) (types.Activity, error) {
	return request[types.Activity](ctx, s.agent, http.MethodGet, "/activities/"+url.PathEscape(id), nil)
}

func (s *ActivitiesService) Create(ctx context.Context, activity types.Activity) error {
	_, err := request[struct{}](ctx, s.agent, http.MethodPost, "/activities", activity)
	return err
}

func (s *ActivitiesService) Update(ctx context.Context, activity types.Activity) error {
	_, err := request[struct{}](ctx, s.agent, http.MethodPut, "/activities/"+url.PathEscape(activity.ID), activity)
	return err
}

func (s *ActivitiesService) Delete(ctx context.Context, id string) error {
	_, err := request[struct{}](ctx, s.agent, http.MethodDelete, "/activities/"+url.PathEscape(id), nil)
	return err
}

// Attend hits the toggle endpoint: it joins the activity, or leaves it if
// the caller is already attending.
func (s *ActivitiesService) Attend(ctx context.Context, id string) error {
	_, err := request[struct{}](ctx, s.agent, http.MethodPost, "/activities/"+url.PathEscape(id)+"/attend", struct{}{})
	return err
}

type AccountService struct {
	agent *Agent
}

func (s *AccountService) Current(ctx context.Context) (types.User, error) {
	return request[types.User](ctx, s.agent, http.MethodGet, "/account", nil)
}

func (s *AccountService) Login(ctx context.Context, values types.UserFormValues) (types.User, error) {
	return request[types.User](ctx, s.agent, http.MethodPost, "/account/login", values)
}

func (s *AccountService) Register(ctx context.Context, values types.UserFormValues) (types.User, error) {
	return request[types.User](ctx, s.agent, http.MethodPost, "/account/register", values)
}

type CommentsService struct {
	agent *Agent
}

func (s *CommentsService) List(ctx context.Context, activityID string) ([]types.Comment, error) {
	return request[[]types.Comment](ctx, s.agent, http.MethodGet, "/activities/"+url.PathEscape(activityID)+"/comments", nil)
}

func (s *CommentsService) Create(ctx context.Context, activityID string, comment types.Comment) (types.Comment, error) {
	return request[types.Comment](ctx, s.agent, http.MethodPost, "/activities/"+url.PathEscape(activityID)+"/comments", comment)
}

func (s *CommentsService) Delete(ctx context.Context, commentID string) error {
	_, err := request[struct{}](ctx, s.agent, http.MethodDelete, "/comments/"+url.PathEscape(commentID), nil)
	return err
}
