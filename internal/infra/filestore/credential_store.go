package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	repo "orderdesk/internal/repository"

	"github.com/google/renameio/v2"
)

type Hasher interface {
	Hash(plain string) (string, error)
}

type Verifier interface {
	Verify(plain string, hashed string) bool
}

// CredentialFileStore は管理者シークレットのハッシュ文字列だけを書いたテキストファイル。
type CredentialFileStore struct {
	path     string
	hasher   Hasher
	verifier Verifier
	mu       sync.Mutex
}

var _ repo.CredentialRepository = (*CredentialFileStore)(nil)

// DI
func NewCredentialFileStore(path string, hasher Hasher, verifier Verifier) *CredentialFileStore {
	return &CredentialFileStore{
		path:     path,
		hasher:   hasher,
		verifier: verifier,
	}
}

func (s *CredentialFileStore) InitializeIfAbsent(ctx context.Context, defaultPlaintext string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	//既にあれば上書きしない
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat credential file %s: %w", s.path, err)
	}

	hashed, err := s.hasher.Hash(defaultPlaintext)
	if err != nil {
		return fmt.Errorf("hash default credential: %w", err)
	}
	if err := renameio.WriteFile(s.path, []byte(hashed), 0o600,
		renameio.WithTempDir(filepath.Dir(s.path)),
	); err != nil {
		return fmt.Errorf("save credential file: %w", err)
	}
	return nil
}

func (s *CredentialFileStore) Verify(ctx context.Context, candidate string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read credential file %s: %w", s.path, err)
	}

	stored := strings.TrimSpace(string(data))
	if stored == "" {
		return false, nil
	}
	return s.verifier.Verify(candidate, stored), nil
}
