// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// taskPostgres はTaskRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type taskPostgres struct {
	db *gorm.DB
}

// taskPostgresがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskPostgres)(nil)

// NewTaskPostgres は指定されたgorm.DB接続でtaskPostgresの新しいインスタンスを生成します。
func NewTaskPostgres(db *gorm.DB) *taskPostgres {
	return &taskPostgres{db: db}
}

// Create はタスクをデータベースに追加します。
func (r *taskPostgres) Create(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindByID は所有者スコープでタスクを取得します。
// id単独ではなく、必ずuser_idとの組で検索します。
func (r *taskPostgres) FindByID(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	var t entity.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll は検証済みのListQueryからSQLを組み立てて実行します。
//
// 述語は常にuser_idを含む論理積で、status条件とtitle/descriptionに対する
// 大文字小文字を区別しない部分一致（括弧付きのOR句）を任意に加えます。
// リテラル値はすべてバインドパラメータとして渡します。ソート列と方向は
// ListQueryが許可リストから選択済みのため、識別子としてそのまま使用できます。
func (r *taskPostgres) FindAll(ctx context.Context, userID uint, q usecase.ListQuery) ([]entity.Task, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.SearchTerm != "" {
		pattern := "%" + q.SearchTerm + "%"
		tx = tx.Where("(LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))", pattern, pattern)
	}

	var tasks []entity.Task
	if err := tx.
		Order(q.SortBy + " " + q.SortOrder).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save はタスク行全体を保存します。GORMがupdated_atを現在時刻に更新します。
func (r *taskPostgres) Save(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete は所有者スコープでタスクを削除します。
// 行が削除されなかった場合、usecase.ErrTaskNotFoundを返します。
func (r *taskPostgres) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&entity.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

// Stats は所有者のタスク件数を1回の集計クエリで返します。
// 該当なしのカテゴリは0になります。
func (r *taskPostgres) Stats(ctx context.Context, userID uint) (*entity.TaskStats, error) {
	var s entity.TaskStats
	if err := r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS in_progress, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed",
			entity.StatusPending, entity.StatusInProgress, entity.StatusCompleted,
		).
		Where("user_id = ?", userID).
		Scan(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
