// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// AuthUsecase は認証とプロフィール管理のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、ユーザーとJWTトークンを返します。
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にユーザーとJWTトークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	// Me は認証済みユーザーの現在のプロフィールを取得します。
	Me(ctx context.Context, userID uint) (*entity.User, error)
	// UpdateProfile は表示名とメールアドレスを部分更新します。
	UpdateProfile(ctx context.Context, userID uint, name, email *string) (*entity.User, error)
	// ChangePassword は現在のパスワードを検証した上で新しいパスワードを保存します。
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// currentUserID はJWTミドルウェアが設定したユーザーIDをコンテキストから取得します。
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー時は400を返却
// - メールアドレス重複時は409を返却
// - 成功時はユーザーとトークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "user already exists with this email"})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error during registration"})
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		User:    dto.ToUserItem(user),
		Token:   token,
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（ユーザー未検出とパスワード不一致は区別しない）
// - 認証成功時はユーザーとJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、失敗理由を公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid credentials"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error during login"})
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.ToUserItem(user),
		Token:   token,
	})
}

// Me は認証済みユーザーの現在のプロフィールを返します。
// トークン発行後にユーザーが削除されていた場合は404を返します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("me lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error retrieving user"})
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileItem(user))
}

// UpdateProfile はプロフィール更新APIエンドポイントを処理します。
// 新しいメールアドレスが他ユーザーに使用されている場合は409を返します。
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email is already in use"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		default:
			slog.Error("profile update failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error updating profile"})
		}
		return
	}
	slog.Info("profile updated", "user_id", userID)
	c.JSON(http.StatusOK, dto.ProfileResponse{
		Message: "Profile updated successfully",
		User:    dto.ToProfileItem(user),
	})
}

// ChangePassword はパスワード変更APIエンドポイントを処理します。
// 現在のパスワードが検証に失敗した場合は400を返します。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("password validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCurrentPasswordIncorrect):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "current password is incorrect"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		default:
			slog.Error("password change failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error changing password"})
		}
		return
	}
	slog.Info("password changed", "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated successfully"})
}
