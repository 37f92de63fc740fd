package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/repository"
)

// パスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 現在の時間
type Clock interface {
	Now() time.Time
}

type LoginInput struct {
	Password string
}

// handlerがJSONにして返す
type LoginOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AdminLoginUsecase は共有シークレット1つだけの管理者ログイン。
// 認証済みかどうかはサーバーに持たず、発行したトークンを毎回持ってきてもらう。
type AdminLoginUsecase struct {
	creds  repository.CredentialRepository
	issuer AccessTokenIssuer
	clock  Clock
}

// DI
func NewAdminLoginUsecase(
	creds repository.CredentialRepository,
	issuer AccessTokenIssuer,
	clock Clock,
) *AdminLoginUsecase {
	return &AdminLoginUsecase{
		creds:  creds,
		issuer: issuer,
		clock:  clock,
	}
}

// Bootstrap は初回起動時にデフォルトのシークレットを保存する（既にあれば何もしない）。
func (u *AdminLoginUsecase) Bootstrap(ctx context.Context, defaultPassword string) error {
	if err := u.creds.InitializeIfAbsent(ctx, defaultPassword); err != nil {
		return fmt.Errorf("initialize admin credential: %w", err)
	}
	return nil
}

// ログイン処理を実行する
func (u *AdminLoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	//シークレット照合（不一致はエラーではなくfalse）
	ok, err := u.creds.Verify(ctx, in.Password)
	if err != nil {
		return out, fmt.Errorf("verify admin credential: %w", err)
	}
	if !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(now)
	if err != nil {
		return out, fmt.Errorf("issue admin token: %w", err)
	}

	out.AccessToken = token
	out.TokenType = "Bearer"
	out.ExpiresIn = int(exp.Sub(now).Seconds())
	return out, nil
}
