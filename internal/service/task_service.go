package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/notify"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/repository"
)

// TaskInput represents data required to create or overwrite a task.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
	Category    string
	Priority    model.Priority
}

// TaskStats aggregates a user's task counts.
type TaskStats struct {
	Total       int `json:"total"`
	Completed   int `json:"completed"`
	Uncompleted int `json:"uncompleted"`
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks *repository.TaskRepository
	sink  notify.Sink
}

// NewTaskService builds the service. sink may be nil when notifications are
// disabled.
func NewTaskService(tasks *repository.TaskRepository, sink notify.Sink) *TaskService {
	return &TaskService{tasks: tasks, sink: sink}
}

func validateInput(input TaskInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !model.IsValidPriority(input.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, input.Priority)
	}
	if input.DueDate != "" {
		if _, err := time.Parse(model.DueDateLayout, input.DueDate); err != nil {
			return fmt.Errorf("%w: due date must be YYYY-MM-DD", ErrValidation)
		}
	}
	return nil
}

// Create adds a task for the user, enforcing the tier's quota atomically.
// A "New Task Added" notification goes out on success.
func (s *TaskService) Create(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	task := model.Task{
		UserID:      user.ID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Category:    input.Category,
		Priority:    input.Priority,
	}
	if err := s.tasks.CreateWithQuota(ctx, &task, user.Tier.TaskQuota()); err != nil {
		return nil, err
	}

	s.notify(ctx, *user, "New Task Added", fmt.Sprintf("Task '%s' has been added.", task.Title))

	return &task, nil
}

// List returns the user's tasks in insertion order, optionally filtered by
// completion state and category. Filters combine conjunctively.
func (s *TaskService) List(ctx context.Context, user *model.User, status repository.StatusFilter, category string) ([]model.Task, error) {
	return s.tasks.ListByUser(ctx, user.ID, status, category)
}

// SetStatus flips the completion flag and notifies the owner.
func (s *TaskService) SetStatus(ctx context.Context, user *model.User, taskID uint, completed bool) (*model.Task, error) {
	task, err := s.find(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.SetCompleted(ctx, task, completed); err != nil {
		return nil, err
	}

	change := "marked as incomplete"
	if completed {
		change = "completed"
	}
	s.notify(ctx, *user, "Task Status Updated", fmt.Sprintf("Task '%s' has been %s.", task.Title, change))

	return task, nil
}

// Update overwrites every editable field. No notification goes out on edits.
func (s *TaskService) Update(ctx context.Context, user *model.User, taskID uint, input TaskInput) (*model.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	task, err := s.find(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.DueDate = input.DueDate
	task.Category = input.Category
	task.Priority = input.Priority

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task. Restricted accounts may not delete; the rule lives
// here, not in any client.
func (s *TaskService) Delete(ctx context.Context, user *model.User, taskID uint) error {
	if !user.Tier.CanDeleteTasks() {
		return ErrDeleteForbidden
	}

	task, err := s.find(ctx, user.ID, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, user.ID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.notify(ctx, *user, "Task Deleted", fmt.Sprintf("Task '%s' has been deleted.", task.Title))

	return nil
}

// Count returns the user's total task count, used for quota displays.
func (s *TaskService) Count(ctx context.Context, user *model.User) (int64, error) {
	return s.tasks.CountByUser(ctx, user.ID)
}

// Categories returns the distinct category labels in use by the user.
func (s *TaskService) Categories(ctx context.Context, user *model.User) ([]string, error) {
	return s.tasks.Categories(ctx, user.ID)
}

// Stats aggregates completed and uncompleted counts.
func (s *TaskService) Stats(ctx context.Context, user *model.User) (TaskStats, error) {
	completed, err := s.tasks.ListByUser(ctx, user.ID, repository.StatusCompleted, "")
	if err != nil {
		return TaskStats{}, err
	}
	uncompleted, err := s.tasks.ListByUser(ctx, user.ID, repository.StatusUncompleted, "")
	if err != nil {
		return TaskStats{}, err
	}
	return TaskStats{
		Total:       len(completed) + len(uncompleted),
		Completed:   len(completed),
		Uncompleted: len(uncompleted),
	}, nil
}

// MonthTasks returns the user's tasks due in the given month, for the
// calendar view.
func (s *TaskService) MonthTasks(ctx context.Context, user *model.User, year int, month time.Month) ([]model.Task, error) {
	return s.tasks.ListDueInMonth(ctx, user.ID, year, int(month))
}

func (s *TaskService) find(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// notify sends best effort: delivery failures are logged and never roll back
// the committed mutation.
func (s *TaskService) notify(ctx context.Context, user model.User, subject, body string) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Notify(ctx, user, subject, body); err != nil {
		log.Printf("[warn] notify %q: %v", subject, err)
	}
}
