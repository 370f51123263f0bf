package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/messmate/mess-client/internal/config"
	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tokens"))
	ctx := context.Background()

	pair := domain.TokenPair{Access: "access-token", Refresh: "refresh-token"}
	if err := store.Save(ctx, pair); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded != pair {
		t.Errorf("loaded %+v, want %+v", loaded, pair)
	}
}

func TestFileStore_MissingIsErrNoTokens(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tokens"))

	_, err := store.Load(context.Background())
	if !errors.Is(err, ports.ErrNoTokens) {
		t.Fatalf("expected ErrNoTokens, got %v", err)
	}
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tokens"))
	ctx := context.Background()

	if err := store.Save(ctx, domain.TokenPair{Access: "a", Refresh: "r"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear must succeed: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ports.ErrNoTokens) {
		t.Fatalf("expected ErrNoTokens after clear, got %v", err)
	}
}

func TestSelectTokenStore_DefaultsToFileStore(t *testing.T) {
	cfg := &config.Config{TokenFile: filepath.Join(t.TempDir(), "tokens")}

	store, client, err := SelectTokenStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if client != nil {
		t.Error("no redis client should be created without an address")
	}
	if _, ok := store.(*FileStore); !ok {
		t.Errorf("expected a FileStore, got %T", store)
	}
}

func TestFileStore_TokensNotPlaintextOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens")
	store := NewFileStore(path)

	if err := store.Save(context.Background(), domain.TokenPair{Access: "super-secret-access", Refresh: "r"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read token file: %v", err)
	}
	if bytes.Contains(raw, []byte("super-secret-access")) {
		t.Error("access token stored in plaintext")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("token file mode = %v, want 0600", info.Mode().Perm())
	}
}
