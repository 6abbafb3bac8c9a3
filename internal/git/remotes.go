package git

import "strings"

// ParseGitHubURL extracts owner and repo from the remote URL forms git
// produces: scp-like ssh, ssh://, https://, and git://.
func ParseGitHubURL(raw string) (owner, repo string, ok bool) {
	raw = strings.TrimSpace(raw)

	var path string
	if strings.HasPrefix(raw, "git@github.com:") {
		path = strings.TrimPrefix(raw, "git@github.com:")
	} else {
		for _, prefix := range []string{
			"ssh://git@github.com/",
			"https://github.com/",
			"http://github.com/",
			"git://github.com/",
		} {
			if strings.HasPrefix(raw, prefix) {
				path = strings.TrimPrefix(raw, prefix)
				break
			}
		}
	}
	if path == "" {
		return "", "", false
	}

	path = strings.TrimSuffix(path, "/")
	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
