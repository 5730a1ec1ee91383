// Package adapters はuserフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"finance_tracker/internal/feature/user/domain/entity"
	"finance_tracker/internal/feature/user/usecase"
	"finance_tracker/internal/platform/db"
	"finance_tracker/internal/shared/apperr"
)

type userModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"size:255;not null"`
	Email    string `gorm:"uniqueIndex;size:255;not null"`
	Password string `gorm:"size:255;not null"`
	Role     string `gorm:"size:16;not null"`
	Banned   bool   `gorm:"not null;default:false"`
}

func (userModel) TableName() string { return "users" }

// Models はマイグレーション対象の行モデルを返します。
func Models() []any { return []any{&userModel{}} }

func toUserModel(u *entity.User) userModel {
	return userModel{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		Role:     string(u.Role),
		Banned:   u.Banned,
	}
}

func (m userModel) toEntity() entity.User {
	return entity.User{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Password: m.Password,
		Role:     entity.Role(m.Role),
		Banned:   m.Banned,
	}
}

// userPostgres はUserRepositoryインターフェースのGORM実装です。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.first(ctx, "find user by id", "id = ?", id)
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "find user by email", "email = ?", email)
}

func (r *userPostgres) first(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, apperr.Persistence(op, err)
	}
	u := m.toEntity()
	return &u, nil
}

// FindAll は全ユーザーを返します。該当がなければ空のスライスを返します。
func (r *userPostgres) FindAll(ctx context.Context) ([]entity.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, apperr.Persistence("find all users", err)
	}
	out := make([]entity.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Save はユーザーを追加し、採番されたIDを返します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userPostgres) Save(ctx context.Context, u *entity.User) (int64, error) {
	m := toUserModel(u)
	m.ID = 0
	err := db.RunInTx(ctx, r.db, "save user", func(tx *gorm.DB) error {
		if err := db.Inserted(tx.Create(&m), m.ID); err != nil {
			if db.IsUniqueViolation(err) {
				return usecase.ErrEmailAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

// Update はIDで指定されたユーザーの全フィールドを更新します。
// 対象行がない場合はロールバックしてusecase.ErrUserNotFoundを返します。
func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	m := toUserModel(u)
	return db.RunInTx(ctx, r.db, "update user", func(tx *gorm.DB) error {
		res := tx.Model(&userModel{}).Where("id = ?", m.ID).Updates(map[string]any{
			"name":     m.Name,
			"email":    m.Email,
			"password": m.Password,
			"role":     m.Role,
			"banned":   m.Banned,
		})
		if res.Error != nil && db.IsUniqueViolation(res.Error) {
			return usecase.ErrEmailAlreadyExists
		}
		return db.Affected(res, usecase.ErrUserNotFound)
	})
}

// DeleteByID はIDでユーザーを削除します。
// 対象行がない場合はロールバックしてusecase.ErrUserNotFoundを返します。
func (r *userPostgres) DeleteByID(ctx context.Context, id int64) error {
	return db.RunInTx(ctx, r.db, "delete user", func(tx *gorm.DB) error {
		return db.Affected(tx.Delete(&userModel{}, id), usecase.ErrUserNotFound)
	})
}
