package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"finance_tracker/internal/feature/user/domain/entity"
	"finance_tracker/internal/shared/apperr"
)

// dummyHash はユーザーが存在しない場合にもbcrypt比較を実行するためのハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	// Save は新しいユーザーを永続化し、ストアが採番したIDを返します。
	Save(ctx context.Context, u *entity.User) (int64, error)
	Update(ctx context.Context, u *entity.User) error
	DeleteByID(ctx context.Context, id int64) error
}

// TokenGenerator はアクセストークン生成のインターフェースを定義します。
type TokenGenerator interface {
	GenerateToken(userID int64, email string) (string, error)
}

// RegisterInput はユーザー登録の入力です。
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
	Banned   bool
}

// UpdateInput はユーザー更新の入力です。nilのフィールドは変更しません。
type UpdateInput struct {
	ID       int64
	Name     *string
	Email    *string
	Password *string
	Role     *entity.Role
	Banned   *bool
}

// userUsecase はユーザー管理と認証のビジネスロジックを実装します。
type userUsecase struct {
	users  UserRepository
	tokens TokenGenerator
	cost   int
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, tokens TokenGenerator) *userUsecase {
	return &userUsecase{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Register は新規ユーザーを登録します。
// メールアドレスの事前チェックはベストエフォートで、一意制約違反もErrEmailAlreadyExistsになります。
func (u *userUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Name) == "" || in.Password == "" {
		return nil, apperr.InvalidArgument("name, email and password are required")
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	user := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Banned:   in.Banned,
	}
	id, err := u.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// Login はユーザーを認証し、成功時にユーザーとアクセストークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *userUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.Banned {
		return nil, "", ErrUserBanned
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Get はIDでユーザーを取得します。
func (u *userUsecase) Get(ctx context.Context, id int64) (*entity.User, error) {
	if err := apperr.RequirePositiveID("id", id); err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, id)
}

// GetAll は全ユーザーを返します。
func (u *userUsecase) GetAll(ctx context.Context) ([]entity.User, error) {
	return u.users.FindAll(ctx)
}

// Update は既存ユーザーを読み込み、指定されたフィールドだけを変更して保存します。
func (u *userUsecase) Update(ctx context.Context, in UpdateInput) error {
	if err := apperr.RequirePositiveID("id", in.ID); err != nil {
		return err
	}
	user, err := u.users.FindByID(ctx, in.ID)
	if err != nil {
		return err
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = normalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), u.cost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Banned != nil {
		user.Banned = *in.Banned
	}
	return u.users.Update(ctx, user)
}

// Delete はIDでユーザーを削除します。
func (u *userUsecase) Delete(ctx context.Context, id int64) error {
	if err := apperr.RequirePositiveID("id", id); err != nil {
		return err
	}
	if _, err := u.users.FindByID(ctx, id); err != nil {
		return err
	}
	return u.users.DeleteByID(ctx, id)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
