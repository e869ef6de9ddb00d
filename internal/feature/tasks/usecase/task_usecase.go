// Package usecase はtasksフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskRepository はタスクエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
// IDを伴うすべての操作は必ず所有者IDと組み合わせてスコープされます。
type TaskRepository interface {
	// Create は新しいタスクを永続化し、IDとタイムスタンプを設定します。
	Create(ctx context.Context, task *entity.Task) error

	// FindByID は所有者スコープでタスクを取得します。
	// 一致する行がない場合（他所有者のタスクを含む）、ErrTaskNotFoundを返します。
	FindByID(ctx context.Context, userID, taskID uint) (*entity.Task, error)

	// FindAll は検証済みのListQueryに従って所有者のタスクを取得します。
	FindAll(ctx context.Context, userID uint, q ListQuery) ([]entity.Task, error)

	// Save はタスク行全体を保存し、updated_atを更新します。
	Save(ctx context.Context, task *entity.Task) error

	// Delete は所有者スコープでタスクを削除します。
	// 行が削除されなかった場合、ErrTaskNotFoundを返します。
	Delete(ctx context.Context, userID, taskID uint) error

	// Stats は所有者のタスク件数をステータス別に1回の集計で返します。
	Stats(ctx context.Context, userID uint) (*entity.TaskStats, error)
}

// TaskUpdate はタスクの部分更新を表します。nilのフィールドは変更されません。
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// TaskUsecase はタスク操作のビジネスロジックを実装します。
type TaskUsecase struct {
	repo TaskRepository
}

// NewTaskUsecase はTaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(repo TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

// Create は認証済みユーザーのタスクを作成します。
// ステータス未指定時はpendingになります。
func (u *TaskUsecase) Create(ctx context.Context, userID uint, title, description string, dueDate *time.Time, status string) (*entity.Task, error) {
	if status == "" {
		status = entity.StatusPending
	}
	if !entity.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	task := &entity.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
	}
	if err := u.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List はフィルタを検証した上で所有者のタスク一覧を返します。
// 不正なstatus/limit/offsetはErrInvalidFilter系のエラーになります。
func (u *TaskUsecase) List(ctx context.Context, userID uint, f TaskFilter) ([]entity.Task, error) {
	q, err := f.Validate()
	if err != nil {
		return nil, err
	}
	return u.repo.FindAll(ctx, userID, q)
}

// Get は所有者スコープで1件のタスクを返します。
func (u *TaskUsecase) Get(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	return u.repo.FindByID(ctx, userID, taskID)
}

// Update はタスクを部分更新します。nilのフィールドは元の値を保持し、
// 更新が成功した場合updated_atは必ず更新されます。
func (u *TaskUsecase) Update(ctx context.Context, userID, taskID uint, upd TaskUpdate) (*entity.Task, error) {
	task, err := u.repo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Status != nil {
		if !entity.ValidStatus(*upd.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *upd.Status
	}
	if upd.DueDate != nil {
		task.DueDate = upd.DueDate
	}

	if err := u.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete は所有者スコープでタスクを削除します。
// 2回目の削除はErrTaskNotFoundになります（結果として冪等）。
func (u *TaskUsecase) Delete(ctx context.Context, userID, taskID uint) error {
	return u.repo.Delete(ctx, userID, taskID)
}

// Stats は所有者のタスク件数集計を返します。
func (u *TaskUsecase) Stats(ctx context.Context, userID uint) (*entity.TaskStats, error) {
	return u.repo.Stats(ctx, userID)
}
