package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/notify"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/repository"
)

// recordingSink captures notifications for assertions. With fail set it
// simulates a broken transport.
type recordingSink struct {
	mu   sync.Mutex
	sent []sentNote
	fail bool
}

type sentNote struct {
	userID  uint
	subject string
	body    string
}

func (r *recordingSink) Notify(_ context.Context, user model.User, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return fmt.Errorf("%w: transport down", notify.ErrDelivery)
	}
	r.sent = append(r.sent, sentNote{userID: user.ID, subject: subject, body: body})
	return nil
}

func (r *recordingSink) subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	subjects := make([]string, 0, len(r.sent))
	for _, note := range r.sent {
		subjects = append(subjects, note.subject)
	}
	return subjects
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

type fixture struct {
	users    *UserService
	tasks    *TaskService
	userRepo *repository.UserRepository
	taskRepo *repository.TaskRepository
	sink     *recordingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sink := &recordingSink{}
	return &fixture{
		users:    NewUserService(userRepo, sink),
		tasks:    NewTaskService(taskRepo, sink),
		userRepo: userRepo,
		taskRepo: taskRepo,
		sink:     sink,
	}
}

func (f *fixture) signUp(t *testing.T, username string, tier model.Tier) *model.User {
	t.Helper()
	user, err := f.users.SignUp(context.Background(), username, username+"@example.com", "secret123", tier)
	if err != nil {
		t.Fatalf("sign up %s: %v", username, err)
	}
	return user
}

func (f *fixture) addTask(t *testing.T, user *model.User, input TaskInput) *model.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), user, input)
	if err != nil {
		t.Fatalf("create task %q: %v", input.Title, err)
	}
	return task
}

func basicInput(title string) TaskInput {
	return TaskInput{
		Title:    title,
		DueDate:  "2025-06-15",
		Category: "Work",
		Priority: model.PriorityMed,
	}
}
