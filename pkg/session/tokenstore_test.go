package session

import (
	"path/filepath"
	"testing"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	fs := NewFileTokenStore(path)

	token, err := fs.Load()
	if err != nil || token != "" {
		t.Fatalf("expected empty load from a missing file, got %q, %v", token, err)
	}

	err = fs.Save("tok-1")
	if err != nil {
		t.Fatalf("unexpected save error %v", err)
	}

	token, err = fs.Load()
	if err != nil || token != "tok-1" {
		t.Fatalf("expected tok-1, got %q, %v", token, err)
	}

	err = fs.Clear()
	if err != nil {
		t.Fatalf("unexpected clear error %v", err)
	}

	token, _ = fs.Load()
	if token != "" {
		t.Fatalf("expected empty token after clear, got %q", token)
	}

	// clearing twice must stay quiet
	err = fs.Clear()
	if err != nil {
		t.Fatalf("unexpected error on second clear: %v", err)
	}
}
