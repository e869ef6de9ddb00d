package dto

import "time"

// UpdateTaskReq はPUT /api/tasks/:idのリクエストボディを表します。
// すべて任意で、nilのフィールドは元の値を保持します。
// タイトルは指定された場合のみ空文字を禁止します。
type UpdateTaskReq struct {
	Title       *string    `json:"title" binding:"omitempty,min=1"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate     *time.Time `json:"dueDate"`
}
