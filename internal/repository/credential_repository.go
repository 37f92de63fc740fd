package repository

import "context"

// CredentialRepository は管理者シークレット（ハッシュ1つ）の約束。
type CredentialRepository interface {
	//ハッシュが無いときだけ defaultPlaintext のハッシュを保存する
	InitializeIfAbsent(ctx context.Context, defaultPlaintext string) error
	//不一致は false, nil（エラーではない）
	Verify(ctx context.Context, candidate string) (bool, error)
}
