package github

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

func (c *Client) graphql(ctx context.Context, query string, vars map[string]any, out any) error {
	var resp struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := c.do(ctx, "POST", "/graphql", gqlRequest{Query: query, Variables: vars}, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("github graphql: %s", resp.Errors[0].Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	return nil
}

// ReviewComment is a flattened review-thread comment. Line is zero and
// Anchored false when the thread has lost its anchor in the current diff.
type ReviewComment struct {
	ID        int64
	ThreadID  string
	Resolved  bool
	Path      string
	Line      int
	Anchored  bool
	Side      string
	Body      string
	Author    string
	CreatedAt time.Time
}

const reviewThreadsQuery = `query($owner:String!,$name:String!,$number:Int!){
  repository(owner:$owner,name:$name){
    pullRequest(number:$number){
      reviewThreads(first:100){
        nodes{
          id
          isResolved
          comments(first:100){
            nodes{
              databaseId
              body
              path
              line
              side
              createdAt
              author{login}
            }
          }
        }
      }
    }
  }
}`

// ListReviewThreads flattens the pull's review threads. Only GraphQL exposes
// thread identity and resolution state.
func (c *Client) ListReviewThreads(ctx context.Context, owner, repo string, number int) ([]ReviewComment, error) {
	var data struct {
		Repository struct {
			PullRequest struct {
				ReviewThreads struct {
					Nodes []struct {
						ID         string `json:"id"`
						IsResolved bool   `json:"isResolved"`
						Comments   struct {
							Nodes []struct {
								DatabaseID int64     `json:"databaseId"`
								Body       string    `json:"body"`
								Path       string    `json:"path"`
								Line       *int      `json:"line"`
								Side       string    `json:"side"`
								CreatedAt  time.Time `json:"createdAt"`
								Author     struct {
									Login string `json:"login"`
								} `json:"author"`
							} `json:"nodes"`
						} `json:"comments"`
					} `json:"nodes"`
				} `json:"reviewThreads"`
			} `json:"pullRequest"`
		} `json:"repository"`
	}

	vars := map[string]any{"owner": owner, "name": repo, "number": number}
	if err := c.graphql(ctx, reviewThreadsQuery, vars, &data); err != nil {
		return nil, err
	}

	var out []ReviewComment
	for _, t := range data.Repository.PullRequest.ReviewThreads.Nodes {
		for _, n := range t.Comments.Nodes {
			rc := ReviewComment{
				ID:        n.DatabaseID,
				ThreadID:  t.ID,
				Resolved:  t.IsResolved,
				Path:      n.Path,
				Side:      n.Side,
				Body:      n.Body,
				Author:    n.Author.Login,
				CreatedAt: n.CreatedAt,
			}
			if n.Line != nil {
				rc.Line = *n.Line
				rc.Anchored = true
			}
			out = append(out, rc)
		}
	}
	return out, nil
}

func (c *Client) ResolveReviewThread(ctx context.Context, threadID string) error {
	const q = `mutation($id:ID!){resolveReviewThread(input:{threadId:$id}){thread{id}}}`
	return c.graphql(ctx, q, map[string]any{"id": threadID}, nil)
}

// LinkedIssues returns the issues a pull request closes.
func (c *Client) LinkedIssues(ctx context.Context, owner, repo string, pullNumber int) ([]int, error) {
	const q = `query($owner:String!,$name:String!,$number:Int!){repository(owner:$owner,name:$name){pullRequest(number:$number){closingIssuesReferences(first:20){nodes{number}}}}}`
	var data struct {
		Repository struct {
			PullRequest struct {
				ClosingIssuesReferences struct {
					Nodes []struct {
						Number int `json:"number"`
					} `json:"nodes"`
				} `json:"closingIssuesReferences"`
			} `json:"pullRequest"`
		} `json:"repository"`
	}
	vars := map[string]any{"owner": owner, "name": repo, "number": pullNumber}
	if err := c.graphql(ctx, q, vars, &data); err != nil {
		return nil, err
	}
	var out []int
	for _, n := range data.Repository.PullRequest.ClosingIssuesReferences.Nodes {
		out = append(out, n.Number)
	}
	return out, nil
}

// LinkedPulls returns pull requests that reference an issue.
func (c *Client) LinkedPulls(ctx context.Context, owner, repo string, issueNumber int) ([]int, error) {
	const q = `query($owner:String!,$name:String!,$number:Int!){repository(owner:$owner,name:$name){issue(number:$number){timelineItems(first:50,itemTypes:[CROSS_REFERENCED_EVENT]){nodes{... on CrossReferencedEvent{source{__typename ... on PullRequest{number}}}}}}}}`
	var data struct {
		Repository struct {
			Issue struct {
				TimelineItems struct {
					Nodes []struct {
						Source struct {
							Typename string `json:"__typename"`
							Number   int    `json:"number"`
						} `json:"source"`
					} `json:"nodes"`
				} `json:"timelineItems"`
			} `json:"issue"`
		} `json:"repository"`
	}
	vars := map[string]any{"owner": owner, "name": repo, "number": issueNumber}
	if err := c.graphql(ctx, q, vars, &data); err != nil {
		return nil, err
	}
	var out []int
	for _, n := range data.Repository.Issue.TimelineItems.Nodes {
		if n.Source.Typename == "PullRequest" && n.Source.Number > 0 {
			out = append(out, n.Source.Number)
		}
	}
	return out, nil
}

// SetFileViewed marks or unmarks a file in the pull's viewed state.
func (c *Client) SetFileViewed(ctx context.Context, owner, repo string, number int, path string, viewed bool) error {
	pull, err := c.GetPull(ctx, owner, repo, number)
	if err != nil {
		return err
	}
	q := `mutation($id:ID!,$path:String!){markFileAsViewed(input:{pullRequestId:$id,path:$path}){pullRequest{id}}}`
	if !viewed {
		q = `mutation($id:ID!,$path:String!){unmarkFileAsViewed(input:{pullRequestId:$id,path:$path}){pullRequest{id}}}`
	}
	return c.graphql(ctx, q, map[string]any{"id": pull.NodeID, "path": path}, nil)
}
