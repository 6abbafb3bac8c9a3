package git

import (
	"context"
	"fmt"
	"strconv"

	"hubbub/internal/util"
)

// CheckoutService switches a local clone to a pull request head.
type CheckoutService interface {
	CheckoutPull(ctx context.Context, repoPath string, number int) error
}

type checkoutService struct{}

func NewCheckoutService() CheckoutService {
	return checkoutService{}
}

func (checkoutService) CheckoutPull(ctx context.Context, repoPath string, number int) error {
	// gh knows about forks and remembers the remote branch name.
	if _, err := util.Run(ctx, repoPath, "gh", "pr", "checkout", strconv.Itoa(number)); err == nil {
		return nil
	}

	branch := fmt.Sprintf("pr-%d", number)
	ref := fmt.Sprintf("refs/pull/%d/head:%s", number, branch)
	if _, err := util.Run(ctx, repoPath, "git", "fetch", "--force", "origin", ref); err != nil {
		return fmt.Errorf("fetch pull %d: %w", number, err)
	}
	if _, err := util.Run(ctx, repoPath, "git", "switch", branch); err != nil {
		return fmt.Errorf("switch to %s: %w", branch, err)
	}
	return nil
}
