// Package entity はuserフィーチャーのドメインエンティティを定義します。
package entity

import "fmt"

// Role はユーザーのアクセスレベルを表します。
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole はロール名を検証してRoleに変換します。
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User はシステムに登録されたユーザーを表します。
type User struct {
	ID    int64
	Name  string
	Email string

	// Password はbcryptでハッシュ化された資格情報です。平文は保持しません。
	Password string

	Role Role

	// Banned がtrueのユーザーはログインできません。
	Banned bool
}
