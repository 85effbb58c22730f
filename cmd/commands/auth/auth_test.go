package auth

import (
	"bytes"
	"strings"
	"testing"

	authstore "ironrod/dash/internal/services/auth"
	"ironrod/dash/internal/session"
)

func useMockStore(t *testing.T) *authstore.MockStore {
	t.Helper()
	store := authstore.NewMockStore()
	session.OpenStore = func() authstore.Store { return store }
	t.Cleanup(func() { session.OpenStore = authstore.DefaultStore })
	return store
}

func execAuth(t *testing.T, stdin string, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.PersistentFlags().String(session.FlagGateway, authstore.DefaultGateway, "")
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	_ = cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestLogin_WithTokenFlag(t *testing.T) {
	store := useMockStore(t)

	stdout, stderr := execAuth(t, "", "login", "--token", "abc123")
	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "Saved token for gateway gateway") {
		t.Errorf("unexpected stdout: %s", stdout)
	}
	if tok, _ := store.GetToken(""); tok != "abc123" {
		t.Errorf("stored token = %q", tok)
	}
}

func TestLogin_FromStdin(t *testing.T) {
	store := useMockStore(t)

	execAuth(t, "piped-token\n", "login", "Staging")
	if tok, _ := store.GetToken("staging"); tok != "piped-token" {
		t.Errorf("stored token = %q", tok)
	}
}

func TestLogin_RejectsBadToken(t *testing.T) {
	store := useMockStore(t)

	_, stderr := execAuth(t, "", "login", "--token", "has space")
	if !strings.Contains(stderr, "whitespace") {
		t.Errorf("expected validation error, got: %s", stderr)
	}
	if _, err := store.GetToken(""); err == nil {
		t.Error("invalid token was stored")
	}
}

func TestStatusAndLogout(t *testing.T) {
	store := useMockStore(t)

	stdout, _ := execAuth(t, "", "status")
	if !strings.Contains(stdout, "gateway: not authenticated") {
		t.Errorf("unexpected status: %s", stdout)
	}

	if err := store.SetToken("", "tok"); err != nil {
		t.Fatal(err)
	}
	stdout, _ = execAuth(t, "", "status")
	if !strings.Contains(stdout, "gateway: authenticated") {
		t.Errorf("unexpected status: %s", stdout)
	}

	stdout, _ = execAuth(t, "", "logout", "--yes")
	if !strings.Contains(stdout, "Removed token for gateway gateway") {
		t.Errorf("unexpected logout output: %s", stdout)
	}

	stdout, _ = execAuth(t, "", "logout", "--yes")
	if !strings.Contains(stdout, "No token stored") {
		t.Errorf("unexpected second logout output: %s", stdout)
	}
}
