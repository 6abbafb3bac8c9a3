package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBase("test-token", srv.URL, srv.Client())
}

func TestListIssuesPaginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/hubbub/issues", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			issues := make([]Issue, perPage)
			for i := range issues {
				issues[i] = Issue{Number: i + 1, State: "open"}
			}
			json.NewEncoder(w).Encode(issues)
		case "2":
			raw := json.RawMessage(`{}`)
			json.NewEncoder(w).Encode([]Issue{{Number: 200, State: "open", PullRequest: &raw}})
		default:
			t.Errorf("unexpected page %q", page)
			json.NewEncoder(w).Encode([]Issue{})
		}
	})

	c := newTestClient(t, mux)
	issues, err := c.ListIssues(context.Background(), "acme", "hubbub")
	if err != nil {
		t.Fatalf("ListIssues() error = %v", err)
	}
	if len(issues) != perPage+1 {
		t.Fatalf("got %d issues, want %d", len(issues), perPage+1)
	}
	last := issues[len(issues)-1]
	if last.Number != 200 || !last.IsPull() {
		t.Fatalf("last issue = %+v, want pull #200", last)
	}
	if issues[0].IsPull() {
		t.Fatalf("issue #1 misdetected as pull")
	}
}

func TestAPIErrorIncludesMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/hubbub/issues", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	})

	c := newTestClient(t, mux)
	_, err := c.ListIssues(context.Background(), "acme", "hubbub")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "API rate limit exceeded") {
		t.Fatalf("error %q missing API message", err)
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("error %q missing status", err)
	}
}

func TestListPullFilesFillsMissingPatches(t *testing.T) {
	const diffText = `diff --git a/big.go b/big.go
index 111..222 100644
--- a/big.go
+++ b/big.go
@@ -1,2 +1,2 @@ func main
 package main
-var x = 1
+var x = 2
`
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/hubbub/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]PullFile{
			{Filename: "small.go", Status: "modified", Additions: 1, Deletions: 0, Patch: "@@ -1 +1,2 @@\n ok\n+more"},
			{Filename: "big.go", Status: "modified", Additions: 1, Deletions: 1},
		})
	})
	mux.HandleFunc("/repos/acme/hubbub/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.github.diff" {
			t.Errorf("Accept = %q", got)
		}
		io.WriteString(w, diffText)
	})

	c := newTestClient(t, mux)
	files, err := c.ListPullFiles(context.Background(), "acme", "hubbub", 7)
	if err != nil {
		t.Fatalf("ListPullFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files", len(files))
	}
	if files[1].Patch == "" {
		t.Fatalf("big.go patch not filled from diff")
	}
	if !strings.Contains(files[1].Patch, "@@ -1,2 +1,2 @@ func main") {
		t.Fatalf("patch header lost: %q", files[1].Patch)
	}
	if !strings.Contains(files[1].Patch, "+var x = 2") {
		t.Fatalf("patch body lost: %q", files[1].Patch)
	}
}

func TestListReviewThreadsFlattens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"repository":{"pullRequest":{"reviewThreads":{"nodes":[
			{"id":"T1","isResolved":false,"comments":{"nodes":[
				{"databaseId":5,"body":"first","path":"a.go","line":3,"side":"RIGHT","createdAt":"2026-01-02T03:04:05Z","author":{"login":"alice"}},
				{"databaseId":9,"body":"reply","path":"a.go","line":3,"side":"RIGHT","createdAt":"2026-01-02T04:00:00Z","author":{"login":"bob"}}
			]}},
			{"id":"T2","isResolved":true,"comments":{"nodes":[
				{"databaseId":11,"body":"stale","path":"b.go","line":null,"side":"LEFT","createdAt":"2026-01-01T00:00:00Z","author":{"login":"carol"}}
			]}}
		]}}}}}`)
	})

	c := newTestClient(t, mux)
	comments, err := c.ListReviewThreads(context.Background(), "acme", "hubbub", 7)
	if err != nil {
		t.Fatalf("ListReviewThreads() error = %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	if comments[0].ThreadID != "T1" || comments[0].ID != 5 || !comments[0].Anchored || comments[0].Line != 3 {
		t.Fatalf("comment[0] = %+v", comments[0])
	}
	if comments[2].Anchored || comments[2].Line != 0 || !comments[2].Resolved {
		t.Fatalf("unanchored comment = %+v", comments[2])
	}
}

func TestGraphQLErrorsSurface(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null,"errors":[{"message":"Could not resolve to a PullRequest"}]}`)
	})

	c := newTestClient(t, mux)
	if err := c.ResolveReviewThread(context.Background(), "T1"); err == nil {
		t.Fatalf("expected error")
	} else if !strings.Contains(err.Error(), "Could not resolve") {
		t.Fatalf("error %q missing graphql message", err)
	}
}

func TestLinkedPullsFiltersNonPullSources(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"repository":{"issue":{"timelineItems":{"nodes":[
			{"source":{"__typename":"PullRequest","number":42}},
			{"source":{"__typename":"Issue","number":3}},
			{"source":{"__typename":"PullRequest","number":84}}
		]}}}}}`)
	})

	c := newTestClient(t, mux)
	pulls, err := c.LinkedPulls(context.Background(), "acme", "hubbub", 7)
	if err != nil {
		t.Fatalf("LinkedPulls() error = %v", err)
	}
	if len(pulls) != 2 || pulls[0] != 42 || pulls[1] != 84 {
		t.Fatalf("pulls = %v, want [42 84]", pulls)
	}
}

func TestAddReviewCommentFetchesHeadSHA(t *testing.T) {
	var posted ReviewCommentRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/hubbub/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"number":7,"node_id":"PR_1","head":{"sha":"abc123"}}`)
	})
	mux.HandleFunc("/repos/acme/hubbub/pulls/7/comments", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
			t.Errorf("decode posted body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{}`)
	})

	c := newTestClient(t, mux)
	start := 1
	startSide := "RIGHT"
	req := ReviewCommentRequest{
		Body:      "tighten this",
		Path:      "a.go",
		Line:      2,
		Side:      "RIGHT",
		StartLine: &start,
		StartSide: &startSide,
	}
	if err := c.AddReviewComment(context.Background(), "acme", "hubbub", 7, req); err != nil {
		t.Fatalf("AddReviewComment() error = %v", err)
	}
	if posted.CommitID != "abc123" {
		t.Fatalf("commit id = %q, want abc123", posted.CommitID)
	}
	if posted.StartLine == nil || *posted.StartLine != 1 {
		t.Fatalf("start line = %v", posted.StartLine)
	}
}
