// Package dto はuserフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "finance_tracker/internal/feature/user/domain/entity"

// RegisterReq は/registerエンドポイントのリクエストボディです。
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
	Banned   bool   `json:"banned"`
}

// LoginReq は/loginエンドポイントのリクエストボディです。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserReq はユーザー更新のリクエストボディです。省略されたフィールドは変更しません。
type UpdateUserReq struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=1"`
	Role     *string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
	Banned   *bool   `json:"banned"`
}

// UserRes はパスワードを含まないユーザー表現です。
type UserRes struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Banned bool   `json:"banned"`
}

// LoginRes はログイン成功時のレスポンスです。
type LoginRes struct {
	User  UserRes `json:"user"`
	Token string  `json:"token"`
}

// FromUser はエンティティをレスポンスに変換します。
func FromUser(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), Banned: u.Banned}
}
