package auth

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestLookup(t *testing.T) {
	store := NewMockStore()

	token, err := Lookup(store, "")
	if err != nil || token != "" {
		t.Fatalf("expected empty token without error, got %q, %v", token, err)
	}

	if err := store.SetToken("Gateway", "secret"); err != nil {
		t.Fatal(err)
	}
	token, err = Lookup(store, "")
	if err != nil || token != "secret" {
		t.Fatalf("expected stored token, got %q, %v", token, err)
	}

	store.Err = errors.New("keychain locked")
	if _, err := Lookup(store, ""); err == nil {
		t.Fatal("expected keychain error to surface")
	}
}

func TestNormalizeGateway(t *testing.T) {
	tests := map[string]string{
		"":         DefaultGateway,
		"  ":       DefaultGateway,
		" Staging": "staging",
		"gateway":  "gateway",
	}
	for in, want := range tests {
		if got := NormalizeGateway(in); got != want {
			t.Errorf("NormalizeGateway(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore("")

	if _, err := store.GetToken(""); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
	if err := store.SetToken("", "abc"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	got, err := store.GetToken(DefaultGateway)
	if err != nil || got != "abc" {
		t.Fatalf("GetToken = %q, %v", got, err)
	}
	if err := store.DeleteToken(""); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	if err := store.DeleteToken(""); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound on second delete, got %v", err)
	}
}
