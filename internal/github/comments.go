package github

import (
	"context"
	"fmt"
	"time"
)

type Comment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]Comment, error) {
	var all []Comment
	for page := 1; page <= maxPages; page++ {
		var batch []Comment
		path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments?per_page=%d&page=%d", owner, repo, number, perPage, page)
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

func (c *Client) AddIssueComment(ctx context.Context, owner, repo string, number int, body string) (Comment, error) {
	var out Comment
	req := struct {
		Body string `json:"body"`
	}{Body: body}
	err := c.do(ctx, "POST", fmt.Sprintf("/repos/%s/%s/issues/%d/comments", owner, repo, number), req, &out)
	return out, err
}

func (c *Client) EditIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) (Comment, error) {
	var out Comment
	req := struct {
		Body string `json:"body"`
	}{Body: body}
	err := c.do(ctx, "PATCH", fmt.Sprintf("/repos/%s/%s/issues/comments/%d", owner, repo, commentID), req, &out)
	return out, err
}

func (c *Client) DeleteIssueComment(ctx context.Context, owner, repo string, commentID int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/repos/%s/%s/issues/comments/%d", owner, repo, commentID), nil, nil)
}
