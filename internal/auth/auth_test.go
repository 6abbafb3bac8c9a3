package auth

import (
	"context"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestTokenPrefersEnvironment(t *testing.T) {
	keyring.MockInit()
	if err := SaveToken("keyring-token"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	t.Setenv("GITHUB_TOKEN", "env-token")

	tok, method, err := Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok != "env-token" || method != MethodEnv {
		t.Fatalf("Token() = %q, %v; want env-token, MethodEnv", tok, method)
	}
}

func TestTokenFallsBackToKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	if err := SaveToken("keyring-token"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	tok, method, err := Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok != "keyring-token" || method != MethodKeyring {
		t.Fatalf("Token() = %q, %v; want keyring-token, MethodKeyring", tok, method)
	}
}

func TestSaveTokenRejectsEmpty(t *testing.T) {
	keyring.MockInit()
	if err := SaveToken("   "); err == nil {
		t.Fatalf("expected error for blank token")
	}
}

func TestClearTokenMissingEntry(t *testing.T) {
	keyring.MockInit()
	if err := ClearToken(); err != nil {
		t.Fatalf("ClearToken() error = %v", err)
	}
}

func TestMethodString(t *testing.T) {
	cases := map[Method]string{
		MethodNone:    "none",
		MethodEnv:     "environment",
		MethodKeyring: "keyring",
		MethodGhCLI:   "gh cli",
		MethodPrompt:  "prompt",
	}
	for m, want := range cases {
		if got := m.String(); got != want {
			t.Fatalf("Method(%d).String() = %q, want %q", m, got, want)
		}
	}
}
