package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/j99way99/my-inv-app/internal/domain/model"
	"github.com/j99way99/my-inv-app/internal/repository"
	"github.com/j99way99/my-inv-app/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")

	// 競合
	ErrUserAlreadyExists = errors.New("username or email already exists")
)

// 会員登録の入力
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
	Name     string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.User
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	idGen    usecase.IDGenerator
	clock    usecase.Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	idGen usecase.IDGenerator,
	clock usecase.Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		idGen:    idGen,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	username := strings.TrimSpace(in.Username)
	if username == "" || strings.TrimSpace(in.Name) == "" {
		return out, ErrInvalidInput
	}
	if !isValidEmailFormat(in.Email) {
		return out, ErrInvalidEmailFormat
	}
	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	// username/emailの重複チェック
	if existing, err := u.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return out, ErrUserAlreadyExists
	} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, err
	}
	if existing, err := u.userRepo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return out, ErrUserAlreadyExists
	} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashed, // 平文は保存しない
		Name:         in.Name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		//重複チェックの隙間で同じusername/emailが入った
		if errors.Is(err, repository.ErrDuplicate) {
			return out, ErrUserAlreadyExists
		}
		return out, err
	}

	out.User = *user
	return out, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}
