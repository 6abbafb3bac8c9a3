package github

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	Login string `json:"login"`
}

type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Issue is the REST issue shape. Pull requests come through the same
// endpoint with a pull_request stub attached.
type Issue struct {
	ID          int64            `json:"id"`
	Number      int              `json:"number"`
	Title       string           `json:"title"`
	Body        string           `json:"body"`
	State       string           `json:"state"`
	User        User             `json:"user"`
	Labels      []Label          `json:"labels"`
	Assignees   []User           `json:"assignees"`
	Comments    int              `json:"comments"`
	HTMLURL     string           `json:"html_url"`
	PullRequest *json.RawMessage `json:"pull_request,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (i Issue) IsPull() bool {
	return i.PullRequest != nil
}

// Repository carries the fields the UI needs: the viewer's effective
// permissions gate push- and comment-dependent commands.
type Repository struct {
	FullName    string `json:"full_name"`
	Permissions struct {
		Admin bool `json:"admin"`
		Push  bool `json:"push"`
		Pull  bool `json:"pull"`
	} `json:"permissions"`
}

// IssueRequest is a partial update; nil fields are left untouched. Slice
// fields are pointers so an explicit empty list clears the attribute.
type IssueRequest struct {
	Title     *string   `json:"title,omitempty"`
	Body      *string   `json:"body,omitempty"`
	State     *string   `json:"state,omitempty"`
	Labels    *[]string `json:"labels,omitempty"`
	Assignees *[]string `json:"assignees,omitempty"`
}

func (c *Client) GetRepo(ctx context.Context, owner, repo string) (Repository, error) {
	var out Repository
	err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), &out)
	return out, err
}

// ListIssues fetches issues and pull requests in all states, newest first.
func (c *Client) ListIssues(ctx context.Context, owner, repo string) ([]Issue, error) {
	var all []Issue
	for page := 1; page <= maxPages; page++ {
		var batch []Issue
		path := fmt.Sprintf("/repos/%s/%s/issues?state=all&per_page=%d&page=%d", owner, repo, perPage, page)
		if err := c.get(ctx, path, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			break
		}
	}
	return all, nil
}

func (c *Client) CreateIssue(ctx context.Context, owner, repo string, req IssueRequest) (Issue, error) {
	var out Issue
	err := c.do(ctx, "POST", fmt.Sprintf("/repos/%s/%s/issues", owner, repo), req, &out)
	return out, err
}

func (c *Client) UpdateIssue(ctx context.Context, owner, repo string, number int, req IssueRequest) (Issue, error) {
	var out Issue
	err := c.do(ctx, "PATCH", fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number), req, &out)
	return out, err
}

func (c *Client) ListLabels(ctx context.Context, owner, repo string) ([]Label, error) {
	var all []Label
	for page := 1; page <= maxPages; page++ {
		var batch []Label
		path := fmt.Sprintf("/repos/%s/%s/labels?per_page=%d&page=%d", owner, repo, perPage, page)
		if err := c.get(ctx, path, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			break
		}
	}
	return all, nil
}

func (c *Client) ListAssignableUsers(ctx context.Context, owner, repo string) ([]User, error) {
	var all []User
	for page := 1; page <= maxPages; page++ {
		var batch []User
		path := fmt.Sprintf("/repos/%s/%s/assignees?per_page=%d&page=%d", owner, repo, perPage, page)
		if err := c.get(ctx, path, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			break
		}
	}
	return all, nil
}
