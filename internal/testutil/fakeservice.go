// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/apierr"
	"taskflow/internal/service"
)

// ValidToken is the token the fake backend issues and accepts.
const ValidToken = "fake-token-1"

// FakeService is an in-memory implementation of service.Service for
// testing. Ids and timestamps are assigned the way the real backend
// would: never by the caller.
type FakeService struct {
	mu     sync.RWMutex
	todos  []service.Todo
	tokens int
	now    time.Time

	// UseStatus makes the fake report completion via the status string
	// instead of the completed boolean, mimicking older backends.
	UseStatus bool

	// Error injection for testing.
	RegisterErr error
	LoginErr    error
	RefreshErr  error
	ListErr     error
	GetErr      error
	CreateErr   error
	UpdateErr   error
	ToggleErr   error
	DeleteErr   error

	// Calls counts remote calls by method name.
	Calls map[string]int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		now:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Calls: make(map[string]int),
	}
}

// Seed adds a todo directly to the backing store and returns its id.
func (f *FakeService) Seed(title, description string, completed bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	todo := f.newTodo(title, description)
	f.setDone(&todo, completed)
	f.todos = append(f.todos, todo)
	return todo.ID
}

func (f *FakeService) newTodo(title, description string) service.Todo {
	f.now = f.now.Add(time.Second)
	ts := f.now.Format(time.RFC3339)
	return service.Todo{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Completed:   boolPtr(false),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// setDone writes completion in whichever representation the fake is
// configured to use, clearing the other.
func (f *FakeService) setDone(t *service.Todo, done bool) {
	if f.UseStatus {
		t.Completed = nil
		if done {
			t.Status = "COMPLETED"
		} else {
			t.Status = "OPEN"
		}
		return
	}
	t.Status = ""
	t.Completed = boolPtr(done)
}

func (f *FakeService) count(method string) {
	f.mu.Lock()
	f.Calls[method]++
	f.mu.Unlock()
}

func (f *FakeService) checkToken(token string) error {
	if token != ValidToken {
		return apierr.FromStatus(401, "invalid token")
	}
	return nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, username, password string) (string, error) {
	f.count("Register")
	if f.RegisterErr != nil {
		return "", f.RegisterErr
	}
	return ValidToken, nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, username, password string) (string, error) {
	f.count("Login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	return ValidToken, nil
}

// Refresh implements service.Service.
func (f *FakeService) Refresh(ctx context.Context, token string) (string, error) {
	f.count("Refresh")
	if f.RefreshErr != nil {
		return "", f.RefreshErr
	}
	if err := f.checkToken(token); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.tokens++
	tok := fmt.Sprintf("fake-token-refreshed-%d", f.tokens)
	f.mu.Unlock()
	return tok, nil
}

// ListTodos implements service.Service.
func (f *FakeService) ListTodos(ctx context.Context, token string) ([]service.Todo, error) {
	f.count("ListTodos")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Todo, len(f.todos))
	copy(out, f.todos)
	return out, nil
}

// GetTodo implements service.Service.
func (f *FakeService) GetTodo(ctx context.Context, token, id string) (service.Todo, error) {
	f.count("GetTodo")
	if f.GetErr != nil {
		return service.Todo{}, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.todos {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Todo{}, apierr.FromStatus(404, "todo not found")
}

// CreateTodo implements service.Service.
func (f *FakeService) CreateTodo(ctx context.Context, token, title, description string) (service.Todo, error) {
	f.count("CreateTodo")
	if f.CreateErr != nil {
		return service.Todo{}, f.CreateErr
	}
	if len([]rune(title)) > 100 {
		return service.Todo{}, apierr.FromStatus(400, "title too long")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	todo := f.newTodo(title, description)
	f.setDone(&todo, false)
	f.todos = append(f.todos, todo)
	return todo, nil
}

// UpdateTodo implements service.Service.
func (f *FakeService) UpdateTodo(ctx context.Context, token, id, title, description string) (service.Todo, error) {
	f.count("UpdateTodo")
	if f.UpdateErr != nil {
		return service.Todo{}, f.UpdateErr
	}
	if len([]rune(title)) > 100 {
		return service.Todo{}, apierr.FromStatus(400, "title too long")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.now = f.now.Add(time.Second)
			f.todos[i].Title = title
			f.todos[i].Description = description
			f.todos[i].UpdatedAt = f.now.Format(time.RFC3339)
			return f.todos[i], nil
		}
	}
	return service.Todo{}, apierr.FromStatus(404, "todo not found")
}

// ToggleTodo implements service.Service.
func (f *FakeService) ToggleTodo(ctx context.Context, token, id string) (service.Todo, error) {
	f.count("ToggleTodo")
	if f.ToggleErr != nil {
		return service.Todo{}, f.ToggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.now = f.now.Add(time.Second)
			f.setDone(&f.todos[i], !f.todos[i].Done())
			f.todos[i].UpdatedAt = f.now.Format(time.RFC3339)
			return f.todos[i], nil
		}
	}
	return service.Todo{}, apierr.FromStatus(404, "todo not found")
}

// DeleteTodo implements service.Service.
func (f *FakeService) DeleteTodo(ctx context.Context, token, id string) error {
	f.count("DeleteTodo")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.todos {
		if t.ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return apierr.FromStatus(404, "todo not found")
}

// Ping implements service.Service.
func (f *FakeService) Ping(ctx context.Context) (service.Health, error) {
	f.count("Ping")
	return service.Health{Status: "UP", Message: "pong"}, nil
}

func boolPtr(b bool) *bool { return &b }
