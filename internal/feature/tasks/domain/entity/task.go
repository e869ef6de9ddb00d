// Package entity defines the domain models for the tasks feature.
package entity

import (
	"time"

	authentity "task_backend/internal/feature/auth/domain/entity"
)

// Task status values.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task represents a to-do item owned by exactly one user.
// Ownership is exclusive: a task is only ever addressed together with its
// owner's ID, never by task ID alone.
type Task struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index"`

	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"size:50;not null;default:'pending'"`

	// DueDate is optional; nil means no deadline.
	DueDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// User backs the foreign key so migrations create the constraint.
	// Deleting a user cascades to their tasks at the database level.
	User authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name used by GORM.
func (Task) TableName() string {
	return "tasks"
}

// TaskStats aggregates one owner's task counts per status.
// Categories with no tasks report zero.
type TaskStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}
