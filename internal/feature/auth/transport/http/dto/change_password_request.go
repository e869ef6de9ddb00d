package dto

// ChangePasswordReq は/api/users/passwordエンドポイントのリクエストボディを表します。
type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}
