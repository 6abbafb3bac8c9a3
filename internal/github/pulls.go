package github

import (
	"context"
	"fmt"
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"
)

type Pull struct {
	Number  int    `json:"number"`
	NodeID  string `json:"node_id"`
	HTMLURL string `json:"html_url"`
	Head    struct {
		SHA string `json:"sha"`
		Ref string `json:"ref"`
	} `json:"head"`
}

type PullFile struct {
	Filename         string `json:"filename"`
	PreviousFilename string `json:"previous_filename"`
	Status           string `json:"status"`
	Additions        int    `json:"additions"`
	Deletions        int    `json:"deletions"`
	Patch            string `json:"patch"`
}

// ReviewCommentRequest creates an anchored review comment. StartLine and
// StartSide are set only for multi-line comments.
type ReviewCommentRequest struct {
	Body      string  `json:"body"`
	CommitID  string  `json:"commit_id"`
	Path      string  `json:"path"`
	Line      int     `json:"line"`
	Side      string  `json:"side"`
	StartLine *int    `json:"start_line,omitempty"`
	StartSide *string `json:"start_side,omitempty"`
}

func (c *Client) GetPull(ctx context.Context, owner, repo string, number int) (Pull, error) {
	var out Pull
	err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number), &out)
	return out, err
}

// ListPullFiles returns the changed files of a pull. The files endpoint
// omits the patch for very large files, so any gaps are filled from the
// whole-PR unified diff.
func (c *Client) ListPullFiles(ctx context.Context, owner, repo string, number int) ([]PullFile, error) {
	var all []PullFile
	for page := 1; page <= maxPages; page++ {
		var batch []PullFile
		path := fmt.Sprintf("/repos/%s/%s/pulls/%d/files?per_page=%d&page=%d", owner, repo, number, perPage, page)
		if err := c.get(ctx, path, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			break
		}
	}

	missing := false
	for _, f := range all {
		if f.Patch == "" && f.Status != "removed" && f.Additions+f.Deletions > 0 {
			missing = true
			break
		}
	}
	if missing {
		if text, err := c.fetchPullDiff(ctx, owner, repo, number); err == nil {
			fillPatchesFromDiff(all, text)
		}
	}
	return all, nil
}

func (c *Client) fetchPullDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	return c.raw(ctx, fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number), "application/vnd.github.diff")
}

// fillPatchesFromDiff reconstructs missing per-file patches from a unified
// multi-file diff.
func fillPatchesFromDiff(files []PullFile, text string) {
	fileDiffs, err := sgdiff.ParseMultiFileDiff([]byte(text))
	if err != nil {
		return
	}

	patches := make(map[string]string, len(fileDiffs))
	for _, fd := range fileDiffs {
		var b strings.Builder
		for _, h := range fd.Hunks {
			fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@", h.OrigStartLine, h.OrigLines, h.NewStartLine, h.NewLines)
			if h.Section != "" {
				b.WriteString(" " + h.Section)
			}
			b.WriteString("\n")
			b.Write(h.Body)
			if len(h.Body) > 0 && h.Body[len(h.Body)-1] != '\n' {
				b.WriteString("\n")
			}
		}
		patches[diffFilePath(fd)] = strings.TrimRight(b.String(), "\n")
	}

	for i := range files {
		if files[i].Patch != "" {
			continue
		}
		if p, ok := patches[files[i].Filename]; ok {
			files[i].Patch = p
		}
	}
}

func diffFilePath(fd *sgdiff.FileDiff) string {
	path := fd.NewName
	if path == "" || path == "/dev/null" {
		path = fd.OrigName
	}
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")
	return path
}

func (c *Client) AddReviewComment(ctx context.Context, owner, repo string, number int, req ReviewCommentRequest) error {
	if req.CommitID == "" {
		pull, err := c.GetPull(ctx, owner, repo, number)
		if err != nil {
			return err
		}
		req.CommitID = pull.Head.SHA
	}
	return c.do(ctx, "POST", fmt.Sprintf("/repos/%s/%s/pulls/%d/comments", owner, repo, number), req, nil)
}

func (c *Client) EditReviewComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	req := struct {
		Body string `json:"body"`
	}{Body: body}
	return c.do(ctx, "PATCH", fmt.Sprintf("/repos/%s/%s/pulls/comments/%d", owner, repo, commentID), req, nil)
}

func (c *Client) DeleteReviewComment(ctx context.Context, owner, repo string, commentID int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/repos/%s/%s/pulls/comments/%d", owner, repo, commentID), nil, nil)
}
