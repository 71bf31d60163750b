// Package xapi implements the account operations (posting, engagement,
// reading, search and direct messages) on top of the signed request executor.
package xapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/zach-sndr/agentic-social/internal/logging"
	"github.com/zach-sndr/agentic-social/internal/model"
	"github.com/zach-sndr/agentic-social/internal/xclient"
)

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks . Executor

// Executor sends one signed request. *xclient.Client implements it.
type Executor interface {
	Do(ctx context.Context, r xclient.Request, out any) error
	UploadMedia(ctx context.Context, path, category string) (string, error)
}

const UsernameCacheTTL = time.Hour

type cachedID struct {
	id         string
	recordedAt time.Time
}

// Service owns the executor and the user id caches for one set of credentials.
type Service struct {
	exec Executor
	now  func() time.Time

	mu        sync.Mutex
	myID      string
	usernames map[string]cachedID
}

func New(exec Executor) *Service {
	return &Service{
		exec:      exec,
		now:       time.Now,
		usernames: make(map[string]cachedID),
	}
}

type userResponse struct {
	Data *model.User `json:"data"`
}

// MyUserID returns the authenticated user's id, fetched once per Service.
func (s *Service) MyUserID(ctx context.Context) (string, error) {
	s.mu.Lock()
	id := s.myID
	s.mu.Unlock()
	if id != "" {
		return id, nil
	}

	var resp userResponse
	if err := s.exec.Do(ctx, xclient.Request{Name: "users_me", Method: http.MethodGet, Path: "/2/users/me"}, &resp); err != nil {
		return "", err
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return "", noData("users_me")
	}
	s.mu.Lock()
	s.myID = resp.Data.ID
	s.mu.Unlock()
	return resp.Data.ID, nil
}

// Me returns the authenticated user's profile and primes the id cache.
func (s *Service) Me(ctx context.Context) (*model.User, error) {
	var resp userResponse
	q := url.Values{"user.fields": {"name,username,verified"}}
	if err := s.exec.Do(ctx, xclient.Request{Name: "users_me", Method: http.MethodGet, Path: "/2/users/me", Query: q}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return nil, noData("users_me")
	}
	s.mu.Lock()
	s.myID = resp.Data.ID
	s.mu.Unlock()
	return resp.Data, nil
}

// UserIDByUsername resolves a handle, with or without a leading @, to a user id.
// Results are cached for UsernameCacheTTL.
func (s *Service) UserIDByUsername(ctx context.Context, username string) (string, error) {
	username = strings.TrimLeft(username, "@")

	s.mu.Lock()
	c, ok := s.usernames[username]
	s.mu.Unlock()
	if ok && s.now().Sub(c.recordedAt) < UsernameCacheTTL {
		logging.Debug("xapi_username_cache_hit", map[string]any{"username": username})
		return c.id, nil
	}

	var resp userResponse
	err := s.exec.Do(ctx, xclient.Request{
		Name:   "users_by_username",
		Method: http.MethodGet,
		Path:   "/2/users/by/username/" + url.PathEscape(username),
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return "", &xclient.APIError{StatusCode: http.StatusOK, Title: "user not found: " + username}
	}

	s.mu.Lock()
	s.usernames[username] = cachedID{id: resp.Data.ID, recordedAt: s.now()}
	s.mu.Unlock()
	return resp.Data.ID, nil
}

// noData reports a 2xx response that lacked its data block.
func noData(op string) error {
	return &xclient.APIError{StatusCode: http.StatusOK, Title: op + " failed", Detail: "response has no data"}
}
