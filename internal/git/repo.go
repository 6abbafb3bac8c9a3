package git

import (
	"context"
	"strings"

	"hubbub/internal/util"
)

// DiscoverRepoRoot resolves the repository containing cwd, so launching
// inside a clone can preselect it in the picker.
func DiscoverRepoRoot(ctx context.Context, cwd string) (string, error) {
	out, err := util.Run(ctx, cwd, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
