package dto

// UpdateProfileReq は/api/users/profileエンドポイントのリクエストボディを表します。
// 両フィールドとも任意で、nilのフィールドは変更されません。
type UpdateProfileReq struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Email *string `json:"email" binding:"omitempty,email"`
}
