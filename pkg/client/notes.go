package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// Note mirrors the server's note representation.
type Note struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Slug     string `json:"slug"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

// Pagination mirrors the server's list metadata.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"has_next_page"`
}

// User is the authenticated account as returned by /auth/me.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// NoteForm is the create/update request body.
type NoteForm struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Login exchanges email/password credentials for a bearer token and stores
// it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return User{}, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// Logout revokes the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me fetches the authenticated account.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Dashboard lists the caller's notes, newest first.
func (c *Client) Dashboard(ctx context.Context, page, size int) ([]Note, Pagination, error) {
	path := fmt.Sprintf("/dashboard?page=%d&size=%d", page, size)
	var resp struct {
		Data       []Note     `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, Pagination{}, err
	}
	return resp.Data, resp.Pagination, nil
}

// CreateNote creates a note and returns it with its server-assigned slug.
func (c *Client) CreateNote(ctx context.Context, form NoteForm) (Note, error) {
	var note Note
	if err := c.doJSON(ctx, http.MethodPost, "/notes", form, &note); err != nil {
		return Note{}, err
	}
	return note, nil
}

// GetNote fetches a note by slug.
func (c *Client) GetNote(ctx context.Context, slug string) (Note, error) {
	var note Note
	if err := c.doJSON(ctx, http.MethodGet, "/notes/"+url.PathEscape(slug), nil, &note); err != nil {
		return Note{}, err
	}
	return note, nil
}

// UpdateNote replaces a note's title and content. The slug never changes.
func (c *Client) UpdateNote(ctx context.Context, slug string, form NoteForm) (Note, error) {
	var note Note
	if err := c.doJSON(ctx, http.MethodPut, "/notes/"+url.PathEscape(slug), form, &note); err != nil {
		return Note{}, err
	}
	return note, nil
}

// DeleteNote removes a note by slug.
func (c *Client) DeleteNote(ctx context.Context, slug string) error {
	return c.doJSON(ctx, http.MethodDelete, "/notes/"+url.PathEscape(slug), nil, nil)
}

// Export downloads the standalone HTML document for the given title and
// content and returns the document with its suggested filename.
func (c *Client) Export(ctx context.Context, title, content string) ([]byte, string, error) {
	q := url.Values{"title": {title}, "content": {content}}
	req, err := c.newRequest(ctx, http.MethodGet, "/notes/export-raw?"+q.Encode(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, "", decodeAPIError(resp)
	}
	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return doc, filename, nil
}
