package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"devconnector/internal/github"
	"devconnector/internal/middleware"
	"devconnector/internal/models"

	"github.com/google/uuid"
)

// Client is the action layer: it performs the HTTP calls and dispatches the
// results into the store. It is the only component allowed to touch the
// token storage.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *Store
	storage    *TokenStorage
}

func NewClient(baseURL string, store *Store, storage *TokenStorage) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
		storage:    storage,
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// SetAlert dispatches a dismissible alert and returns its generated id.
func (c *Client) SetAlert(msg, kind string) string {
	id := uuid.NewString()
	c.store.Dispatch(Action{Type: ActionSetAlert, Payload: Alert{ID: id, Msg: msg, Kind: kind}})
	return id
}

// RemoveAlert dismisses an alert by id.
func (c *Client) RemoveAlert(id string) {
	c.store.Dispatch(Action{Type: ActionRemoveAlert, Payload: id})
}

// SetAlertTimeout dispatches an alert that dismisses itself after d.
func (c *Client) SetAlertTimeout(msg, kind string, d time.Duration) string {
	id := c.SetAlert(msg, kind)
	time.AfterFunc(d, func() { c.RemoveAlert(id) })
	return id
}

// Register creates an account. Success stores the issued token and chains a
// LoadUser so the auth slice carries the identity, not just the token.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}

	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/users", body, false, &out); err != nil {
		c.failAuth(ActionRegisterFail, err)
		return err
	}

	_ = c.storage.Save(out.Token)
	c.store.Dispatch(Action{Type: ActionRegisterSuccess, Payload: out.Token})
	return c.LoadUser(ctx)
}

// Login authenticates and, on success, chains a LoadUser dispatch.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth", body, false, &out); err != nil {
		c.failAuth(ActionLoginFail, err)
		return err
	}

	_ = c.storage.Save(out.Token)
	c.store.Dispatch(Action{Type: ActionLoginSuccess, Payload: out.Token})
	return c.LoadUser(ctx)
}

// LoadUser fetches the authenticated identity. Any failure invalidates the
// session and clears the persisted token.
func (c *Client) LoadUser(ctx context.Context) error {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, true, &user); err != nil {
		_ = c.storage.Clear()
		c.store.Dispatch(Action{Type: ActionAuthError})
		return err
	}
	c.store.Dispatch(Action{Type: ActionUserLoaded, Payload: &user})
	return nil
}

// Logout clears the session and profile state.
func (c *Client) Logout() {
	_ = c.storage.Clear()
	c.store.Dispatch(Action{Type: ActionClearProfile})
	c.store.Dispatch(Action{Type: ActionLogout})
}

// GetCurrentProfile loads the caller's profile.
func (c *Client) GetCurrentProfile(ctx context.Context) error {
	var profile models.ProfileWithUser
	if err := c.do(ctx, http.MethodGet, "/api/profile/me", nil, true, &profile); err != nil {
		c.store.Dispatch(Action{Type: ActionProfileError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(Action{Type: ActionGetProfile, Payload: &profile})
	return nil
}

// GetProfiles loads the public profile directory.
func (c *Client) GetProfiles(ctx context.Context) error {
	var profiles []models.ProfileWithUser
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, false, &profiles); err != nil {
		c.store.Dispatch(Action{Type: ActionProfileError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(Action{Type: ActionGetProfiles, Payload: profiles})
	return nil
}

// GetGithubRepos loads a user's GitHub repositories.
func (c *Client) GetGithubRepos(ctx context.Context, username string) error {
	var repos []github.Repo
	if err := c.do(ctx, http.MethodGet, "/api/profile/github/"+username, nil, false, &repos); err != nil {
		c.store.Dispatch(Action{Type: ActionProfileError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(Action{Type: ActionGetRepos, Payload: repos})
	return nil
}

// DeleteAccount removes the caller's account and resets the store.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/profile", nil, true, nil); err != nil {
		c.store.Dispatch(Action{Type: ActionProfileError, Payload: err.Error()})
		return err
	}
	_ = c.storage.Clear()
	c.store.Dispatch(Action{Type: ActionAccountDeleted})
	return nil
}

// APIError is a non-2xx response, carrying the messages the server rendered.
type APIError struct {
	Status int
	Msgs   []string
}

func (e *APIError) Error() string {
	if len(e.Msgs) > 0 {
		return e.Msgs[0]
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body any, auth bool, out any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		tok, err := c.storage.Load()
		if err != nil {
			return err
		}
		if tok != "" {
			req.Header.Set(middleware.TokenHeader, tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Msgs: parseErrorMsgs(raw)}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) failAuth(typ ActionType, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, msg := range apiErr.Msgs {
			c.SetAlert(msg, "danger")
		}
	}
	c.store.Dispatch(Action{Type: typ})
}

// parseErrorMsgs extracts messages from either error wire shape: the
// validation list or the single {msg} body.
func parseErrorMsgs(raw []byte) []string {
	var list models.ErrList
	if err := json.Unmarshal(raw, &list); err == nil && len(list.Errors) > 0 {
		msgs := make([]string, 0, len(list.Errors))
		for _, e := range list.Errors {
			msgs = append(msgs, e.Msg)
		}
		return msgs
	}

	var single models.ErrMsg
	if err := json.Unmarshal(raw, &single); err == nil && single.Msg != "" {
		return []string{single.Msg}
	}
	return nil
}
