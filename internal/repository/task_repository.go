package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
)

// StatusFilter selects tasks by completion state.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusCompleted
	StatusUncompleted
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateWithQuota inserts a task, rejecting the insert when the user already
// holds quota tasks. Count and insert run in one transaction so concurrent
// creations cannot jointly exceed the limit. Quota zero means unlimited.
func (r *TaskRepository) CreateWithQuota(ctx context.Context, task *model.Task, quota int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if quota > 0 {
			var count int64
			if err := tx.Model(&model.Task{}).Where("user_id = ?", task.UserID).Count(&count).Error; err != nil {
				return fmt.Errorf("count tasks: %w", err)
			}
			if count >= int64(quota) {
				return ErrQuotaExceeded
			}
		}
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		return nil
	})
}

// ListByUser returns a user's tasks in insertion order. Status and category
// filters combine conjunctively; an empty category means no category filter.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uint, status StatusFilter, category string) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	switch status {
	case StatusCompleted:
		q = q.Where("completed = ?", true)
	case StatusUncompleted:
		q = q.Where("completed = ?", false)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var tasks []model.Task
	if err := q.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListDueInMonth returns a user's tasks whose due date falls in the given
// month. Matching is done on the stored date string's prefix.
func (r *TaskRepository) ListDueInMonth(ctx context.Context, userID uint, year, month int) ([]model.Task, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND due_date LIKE ?", userID, prefix+"%").
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// SetCompleted updates only the completion flag.
func (r *TaskRepository) SetCompleted(ctx context.Context, task *model.Task, completed bool) error {
	if err := r.db.WithContext(ctx).Model(task).Update("completed", completed).Error; err != nil {
		return fmt.Errorf("set task status: %w", err)
	}
	task.Completed = completed
	return nil
}

// Save overwrites every task field.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Delete removes a task for the given user. Deleting a task that does not
// exist (or belongs to someone else) yields gorm.ErrRecordNotFound.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Categories returns the distinct category labels in use by the user.
// Empty labels are skipped.
func (r *TaskRepository) Categories(ctx context.Context, userID uint) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND category <> ''", userID).
		Distinct().
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListOpenByUser returns a user's uncompleted tasks, used for the daily digest.
func (r *TaskRepository) ListOpenByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	return r.ListByUser(ctx, userID, StatusUncompleted, "")
}
