package storage

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
)

// FileStore persists the token pair as a single sealed blob on disk.
// Tokens never touch the disk in plaintext: the blob is encrypted with
// chacha20poly1305 under a per-installation key generated on first save.
type FileStore struct {
	path    string
	keyPath string
}

var _ ports.TokenStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:    path,
		keyPath: path + ".key",
	}
}

func (f *FileStore) Load(ctx context.Context) (domain.TokenPair, error) {
	var pair domain.TokenPair

	sealed, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return pair, ports.ErrNoTokens
		}
		return pair, fmt.Errorf("read token file: %w", err)
	}

	key, err := os.ReadFile(f.keyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return pair, ports.ErrNoTokens
		}
		return pair, fmt.Errorf("read token key: %w", err)
	}

	plain, err := open(key, sealed)
	if err != nil {
		return pair, fmt.Errorf("unseal token file: %w", err)
	}
	if err := json.Unmarshal(plain, &pair); err != nil {
		return pair, fmt.Errorf("decode token file: %w", err)
	}
	return pair, nil
}

func (f *FileStore) Save(ctx context.Context, pair domain.TokenPair) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	key, err := f.loadOrCreateKey()
	if err != nil {
		return err
	}

	plain, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	sealed, err := seal(key, plain)
	if err != nil {
		return fmt.Errorf("seal tokens: %w", err)
	}

	if err := os.WriteFile(f.path, sealed, 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear removes both the blob and its key. Idempotent: clearing an
// already-empty store succeeds.
func (f *FileStore) Clear(ctx context.Context) error {
	for _, p := range []string{f.path, f.keyPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}

func (f *FileStore) loadOrCreateKey() ([]byte, error) {
	key, err := os.ReadFile(f.keyPath)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, errors.New("token key has wrong length")
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read token key: %w", err)
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate token key: %w", err)
	}
	if err := os.WriteFile(f.keyPath, key, 0600); err != nil {
		return nil, fmt.Errorf("write token key: %w", err)
	}
	return key, nil
}

func seal(key, plain []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plain, nil), nil
}

func open(key, sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("sealed blob too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}
