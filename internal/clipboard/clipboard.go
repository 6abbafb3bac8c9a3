package clipboard

import (
	"context"
	"os"
	"runtime"

	"hubbub/internal/util"
)

// CopyText puts text on the system clipboard via the platform tool.
func CopyText(ctx context.Context, text string) error {
	switch runtime.GOOS {
	case "darwin":
		_, err := util.RunWithStdin(ctx, "", text, "pbcopy")
		return err
	case "linux":
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			if _, err := util.RunWithStdin(ctx, "", text, "wl-copy"); err == nil {
				return nil
			}
		}
		_, err := util.RunWithStdin(ctx, "", text, "xclip", "-selection", "clipboard")
		return err
	case "windows":
		_, err := util.RunWithStdin(ctx, "", text, "clip")
		return err
	default:
		return nil
	}
}
