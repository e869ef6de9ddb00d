// Package dto はtasksフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "time"

// CreateTaskReq はPOST /api/tasksのリクエストボディを表します。
// タイトルは必須、それ以外は任意です。ステータス未指定時はpendingになります。
type CreateTaskReq struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
}
