package browser

import (
	"context"
	"runtime"

	"hubbub/internal/util"
)

// OpenURL launches the platform browser handler for url.
func OpenURL(ctx context.Context, url string) error {
	switch runtime.GOOS {
	case "darwin":
		_, err := util.Run(ctx, "", "open", url)
		return err
	case "windows":
		_, err := util.Run(ctx, "", "rundll32", "url.dll,FileProtocolHandler", url)
		return err
	default:
		_, err := util.Run(ctx, "", "xdg-open", url)
		return err
	}
}
