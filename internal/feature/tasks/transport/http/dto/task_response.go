package dto

import (
	"time"

	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskItem is the public representation of a task.
type TaskItem struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskResponse is the envelope returned by task create and update.
type TaskResponse struct {
	Message string   `json:"message"`
	Task    TaskItem `json:"task"`
}

// ToTaskItem converts a domain task into its public representation.
func ToTaskItem(t *entity.Task) TaskItem {
	return TaskItem{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTaskItems converts a slice of domain tasks, preserving order.
func ToTaskItems(tasks []entity.Task) []TaskItem {
	out := make([]TaskItem, 0, len(tasks))
	for i := range tasks {
		out = append(out, ToTaskItem(&tasks[i]))
	}
	return out
}
