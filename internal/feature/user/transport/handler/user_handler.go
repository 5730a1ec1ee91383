// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finance_tracker/internal/feature/user/domain/entity"
	"finance_tracker/internal/feature/user/transport/http/dto"
	"finance_tracker/internal/feature/user/usecase"
	"finance_tracker/internal/platform/http/respond"
	jwtmw "finance_tracker/internal/platform/jwt"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, in usecase.UpdateInput) error
	Delete(ctx context.Context, id int64) error
}

// TokenRevoker はログアウト済みトークンを失効させます。
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
}

// UserHandler はユーザー関連のHTTPリクエストを処理します。
type UserHandler struct {
	users   UserUsecase
	revoker TokenRevoker
}

// Option はUserHandlerの任意設定です。
type Option func(*UserHandler)

// WithTokenRevoker はLogoutでベアラートークンを失効させるよう設定します。
func WithTokenRevoker(r TokenRevoker) Option {
	return func(h *UserHandler) { h.revoker = r }
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase, opts ...Option) *UserHandler {
	h := &UserHandler{users: users}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GetAll は全ユーザーを返します。
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	out := make([]dto.UserRes, 0, len(users))
	for i := range users {
		out = append(out, dto.FromUser(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDで指定されたユーザーを返します。
func (h *UserHandler) Get(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(u))
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400、メール重複時は409、成功時は201を返却
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	u, err := h.users.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
		Banned:   req.Banned,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	slog.Info("user registered", "user_id", u.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.FromUser(u))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗時は理由を区別せず401を返却します。
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	u, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginRes{User: dto.FromUser(u), Token: token})
}

// Logout は確認応答を返します。
// TokenRevokerが設定されている場合、リクエストのトークンを有効期限まで失効させます。
func (h *UserHandler) Logout(c *gin.Context) {
	if h.revoker != nil {
		token := c.GetString(jwtmw.ContextToken)
		exp, _ := c.Get(jwtmw.ContextTokenExpiry)
		expiresAt, _ := exp.(time.Time)
		if token != "" && !expiresAt.IsZero() {
			if err := h.revoker.Revoke(c.Request.Context(), token, expiresAt); err != nil {
				slog.ErrorContext(c.Request.Context(), "token revocation failed", "error", err)
				respond.Error(c, err)
				return
			}
		}
	}
	c.JSON(http.StatusOK, respond.MessageResponse{Message: "User logout"})
}

// Update はユーザー情報を更新します。
func (h *UserHandler) Update(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	in := usecase.UpdateInput{ID: id, Name: req.Name, Email: req.Email, Password: req.Password, Banned: req.Banned}
	if req.Role != nil {
		role, err := entity.ParseRole(*req.Role)
		if err != nil {
			respond.BadRequest(c, err)
			return
		}
		in.Role = &role
	}
	if err := h.users.Update(c.Request.Context(), in); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, respond.MessageResponse{Message: "User updated successfully"})
}

// Delete はユーザーを削除し、204を返します。
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
