package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeBcrypt = "bcrypt"
	SchemeSHA256 = "sha256"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// NewPasswordHasher は設定のスキーム名からハッシュ実装を選ぶ。
func NewPasswordHasher(scheme string, bcryptCost int) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeBcrypt:
		return NewBcryptPasswordHasher(bcryptCost), nil
	case SchemeSHA256:
		return NewSHA256PasswordHasher(), nil
	default:
		return nil, fmt.Errorf("unknown password hash scheme %q", scheme)
	}
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// SHA256PasswordHasher は旧形式（saltなし・1回だけのSHA-256をhexにしたもの）。
// 既存の admin_password.txt と互換を取るためだけに残している。弱いので新規には使わない。
type SHA256PasswordHasher struct{}

func NewSHA256PasswordHasher() *SHA256PasswordHasher {
	return &SHA256PasswordHasher{}
}

func (h *SHA256PasswordHasher) Hash(plain string) (string, error) {
	return sha256Hex(plain), nil
}

// SchemeVerifier は保存されたハッシュの形からスキームを判定して照合する。
// 設定を bcrypt に変えても旧形式のファイルはそのまま使える。
type SchemeVerifier struct{}

// DI
func NewPasswordVerifier() *SchemeVerifier {
	return &SchemeVerifier{}
}

func (v *SchemeVerifier) Verify(plain string, hashed string) bool {
	hashed = strings.TrimSpace(hashed)

	switch {
	case isBcryptHash(hashed):
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
	case isSHA256Hex(hashed):
		got := sha256Hex(plain)
		return subtle.ConstantTimeCompare([]byte(strings.ToLower(hashed)), []byte(got)) == 1
	default:
		return false
	}
}

func sha256Hex(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func isSHA256Hex(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
