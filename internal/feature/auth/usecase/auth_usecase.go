// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"task_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// パスワードハッシュを含む行全体を返します（ログイン検証に必要）。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update はユーザー行を保存します。
	// メールアドレスが他ユーザーと重複する場合、ErrEmailAlreadyExistsを返します。
	Update(ctx context.Context, user *entity.User) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// AuthUsecase は認証とプロフィール管理のビジネスロジックを実装します。
type AuthUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *AuthUsecase {
	return &AuthUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
	}
}

// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ。
// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、JWTトークンを発行します。
// メールアドレスが既に使用されている場合、ErrEmailAlreadyExistsを返します。
func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login はユーザーを認証し、成功時にユーザーとJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// ユーザー未検出とパスワード不一致はどちらもErrInvalidCredentialsになります。
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	passwordHash := dummyPasswordHash
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Me は認証済みユーザーの現在のプロフィールを取得します。
// トークン発行後にユーザーが削除された場合、ErrUserNotFoundを返します。
func (u *AuthUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile はユーザーの表示名とメールアドレスを部分更新します。
// nilのフィールドは変更されません。新しいメールアドレスが他ユーザーに
// 使用されている場合、ErrEmailAlreadyExistsを返します。
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uint, name, email *string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if email != nil {
		user.Email = *email
	}

	// メール重複はユニーク制約で検出し、アダプタがErrEmailAlreadyExistsへ変換する
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword は現在のパスワードを検証した上で新しいパスワードを保存します。
// 検証に失敗した場合、ErrCurrentPasswordIncorrectを返します。
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrCurrentPasswordIncorrect
		}
		return fmt.Errorf("failed to verify current password: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	user.Password = string(hashed)

	return u.users.Update(ctx, user)
}
