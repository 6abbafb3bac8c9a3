package auth

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"hubbub/internal/util"
)

const (
	keyringService = "hubbub"
	keyringUser    = "github-token"
)

// Method says where the active token came from.
type Method int

const (
	MethodNone Method = iota
	MethodEnv
	MethodKeyring
	MethodGhCLI
	MethodPrompt
)

func (m Method) String() string {
	switch m {
	case MethodEnv:
		return "environment"
	case MethodKeyring:
		return "keyring"
	case MethodGhCLI:
		return "gh cli"
	case MethodPrompt:
		return "prompt"
	default:
		return "none"
	}
}

// Token resolves a GitHub token: environment first, then the system keyring,
// then whatever the gh CLI has stored.
func Token(ctx context.Context) (string, Method, error) {
	for _, env := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if t := strings.TrimSpace(os.Getenv(env)); t != "" {
			return t, MethodEnv, nil
		}
	}

	if t, err := keyring.Get(keyringService, keyringUser); err == nil {
		if t = strings.TrimSpace(t); t != "" {
			return t, MethodKeyring, nil
		}
	}

	if out, err := util.Run(ctx, "", "gh", "auth", "token"); err == nil {
		if t := strings.TrimSpace(out); t != "" {
			return t, MethodGhCLI, nil
		}
	}

	return "", MethodNone, errors.New("no GitHub token: set GITHUB_TOKEN, run `hubbub auth login`, or `gh auth login`")
}

// SaveToken stores a token in the system keyring.
func SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	return keyring.Set(keyringService, keyringUser, token)
}

// ClearToken removes the stored token. A missing entry is not an error.
func ClearToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
