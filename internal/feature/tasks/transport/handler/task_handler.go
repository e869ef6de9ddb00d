// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TaskUsecase interface {
	Create(ctx context.Context, userID uint, title, description string, dueDate *time.Time, status string) (*entity.Task, error)
	List(ctx context.Context, userID uint, f usecase.TaskFilter) ([]entity.Task, error)
	Get(ctx context.Context, userID, taskID uint) (*entity.Task, error)
	Update(ctx context.Context, userID, taskID uint, upd usecase.TaskUpdate) (*entity.Task, error)
	Delete(ctx context.Context, userID, taskID uint) error
	Stats(ctx context.Context, userID uint) (*entity.TaskStats, error)
}

// TaskHandler はタスク操作のHTTPリクエストを処理します。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
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

// taskID はパスパラメータ:idをuintに変換します。
func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Create はタスク作成APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 成功時は作成されたタスク付きで201を返却
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create task validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), userID, req.Title, req.Description, req.DueDate, req.Status)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("create task failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error creating task"})
		return
	}
	c.JSON(http.StatusCreated, dto.TaskResponse{
		Message: "Task created successfully",
		Task:    dto.ToTaskItem(task),
	})
}

// List はタスク一覧APIエンドポイントを処理します。
// フィルタ・ソート・ページネーションのパラメータを受け付けます。
// 不正なstatus/limit/offsetは400、不正なsortBy/sortOrderは既定値に
// フォールバックします（検証の非対称性は元サービスの観測挙動を保存）。
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var q dto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		// limit/offsetが整数でない場合など
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	filter := usecase.TaskFilter{
		Status:     q.Status,
		SearchTerm: q.SearchTerm,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	tasks, err := h.tasks.List(c.Request.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("list tasks failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error retrieving tasks"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskItems(tasks))
}

// Stats はタスク集計APIエンドポイントを処理します。
func (h *TaskHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	stats, err := h.tasks.Stats(c.Request.Context(), userID)
	if err != nil {
		slog.Error("task stats failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error retrieving task statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Get はタスク取得APIエンドポイントを処理します。
// 他所有者のタスクは存在しないものとして404を返します。
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "task ID must be an integer"})
		return
	}
	task, err := h.tasks.Get(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
			return
		}
		slog.Error("get task failed", "error", err, "user_id", userID, "task_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error retrieving task"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskItem(task))
}

// Update はタスク部分更新APIエンドポイントを処理します。
// 指定されなかったフィールドは元の値を保持します。
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "task ID must be an integer"})
		return
	}
	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update task validation failed", "error", err, "user_id", userID, "task_id", id)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), userID, id, usecase.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
		case errors.Is(err, usecase.ErrInvalidFilter):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("update task failed", "error", err, "user_id", userID, "task_id", id)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error updating task"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.TaskResponse{
		Message: "Task updated successfully",
		Task:    dto.ToTaskItem(task),
	})
}

// Delete はタスク削除APIエンドポイントを処理します。
// 既に削除済みの場合は404を返します（結果として冪等）。
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "task ID must be an integer"})
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
			return
		}
		slog.Error("delete task failed", "error", err, "user_id", userID, "task_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error deleting task"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Task deleted successfully"})
}
