package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/notify"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/repository"
)

// dueSoonWindow marks tasks due within this many days as "due soon",
// matching the dashboard's color coding.
const dueSoonWindow = 7 * 24 * time.Hour

// ReminderService builds and sends the daily digest of open tasks.
type ReminderService struct {
	users *repository.UserRepository
	tasks *repository.TaskRepository
	sink  notify.Sink
}

func NewReminderService(users *repository.UserRepository, tasks *repository.TaskRepository, sink notify.Sink) *ReminderService {
	return &ReminderService{users: users, tasks: tasks, sink: sink}
}

// SendDailyDigests mails every user a summary of their open tasks. Users
// with nothing open are skipped. Per-user failures are logged and do not
// stop the run.
func (s *ReminderService) SendDailyDigests(ctx context.Context) error {
	if s.sink == nil {
		return nil
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	now := time.Now()
	for _, user := range users {
		digest, err := s.DailyDigest(ctx, user, now)
		if err != nil {
			log.Printf("[warn] digest for user %d: %v", user.ID, err)
			continue
		}
		if digest == "" {
			continue
		}
		if err := s.sink.Notify(ctx, user, "Your Daily Task Digest", digest); err != nil {
			log.Printf("[warn] digest delivery for user %d: %v", user.ID, err)
		}
	}
	return nil
}

// DailyDigest renders a plain-text summary of the user's open tasks,
// grouped into overdue, due soon and later. An empty string means there is
// nothing to report.
func (s *ReminderService) DailyDigest(ctx context.Context, user model.User, now time.Time) (string, error) {
	open, err := s.tasks.ListOpenByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if len(open) == 0 {
		return "", nil
	}

	var overdue, dueSoon, later []model.Task
	for _, task := range open {
		due, err := task.Due()
		if err != nil || due.IsZero() {
			later = append(later, task)
			continue
		}
		switch {
		case due.Before(now.Truncate(24 * time.Hour)):
			overdue = append(overdue, task)
		case due.Sub(now) <= dueSoonWindow:
			dueSoon = append(dueSoon, task)
		default:
			later = append(later, task)
		}
	}

	sortByDue(overdue)
	sortByDue(dueSoon)
	sortByDue(later)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Task digest for %s\n", now.Format(model.DueDateLayout)))

	writeSection(&sb, "Overdue", overdue)
	writeSection(&sb, "Due soon", dueSoon)
	writeSection(&sb, "Later", later)

	sb.WriteString(fmt.Sprintf("\n%d open task(s) in total.", len(open)))

	return sb.String(), nil
}

// sortByDue orders tasks by due date ascending, undated ones last.
func sortByDue(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		switch {
		case tasks[i].DueDate == "" && tasks[j].DueDate == "":
			return tasks[i].ID < tasks[j].ID
		case tasks[i].DueDate == "":
			return false
		case tasks[j].DueDate == "":
			return true
		default:
			return tasks[i].DueDate < tasks[j].DueDate
		}
	})
}

func writeSection(sb *strings.Builder, heading string, tasks []model.Task) {
	if len(tasks) == 0 {
		return
	}
	sb.WriteString("\n" + heading + ":\n")
	for _, task := range tasks {
		line := "- " + task.Title
		if task.Category != "" {
			line += " (" + task.Category + ")"
		}
		if task.DueDate != "" {
			line += ", due " + task.DueDate
		}
		line += ", priority " + string(task.Priority)
		sb.WriteString(line + "\n")
	}
}
