package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/j99way99/my-inv-app/internal/domain/model"
	"github.com/j99way99/my-inv-app/internal/repository"
	"github.com/j99way99/my-inv-app/internal/usecase"
)

// 認証失敗はどれも同じエラーにする（usernameの存在を漏らさない）
var ErrInvalidCredentials = errors.New("invalid credentials")

// アクセストークンを発行する約束。実装はmainでJWTを握る。
type TokenIssuer interface {
	Issue(userID string, username string, now time.Time) (string, time.Time, error)
}

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    usecase.Clock
}

// DI
func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock usecase.Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	user, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}
	if !user.IsActive {
		return out, ErrInvalidCredentials
	}

	if err := u.verifier.Verify(user.PasswordHash, in.Password); err != nil {
		return out, ErrInvalidCredentials
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Username, u.clock.Now())
	if err != nil {
		return out, err
	}

	out.Token = token
	out.ExpiresAt = expiresAt
	out.User = *user
	return out, nil
}
