// Package store holds the authoritative in-memory task list and keeps
// it consistent with the remote backend under optimistic edits.
package store

import (
	"context"
	"sync"

	"taskflow/internal/apierr"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// Task is the normalized local task model. Completed is derived from
// whichever wire representation the backend sent; IsEditing is
// local-only and never sent to the backend.
type Task struct {
	ID          string
	Text        string
	Description string
	Completed   bool
	IsEditing   bool
	CreatedAt   string
	UpdatedAt   string
}

// titleMaxLen is the backend's title limit; longer edits are truncated
// client-side before sending.
const titleMaxLen = 100

// OpError is what lands in the store's error field: the user-facing
// message plus the classified cause.
type OpError struct {
	Message string
	Err     error
}

func (e *OpError) Error() string { return e.Message }
func (e *OpError) Unwrap() error { return e.Err }

// Store owns the task collection. It reacts to session transitions:
// a session becoming active triggers a full load, a session ending
// clears the collection immediately.
//
// The task slice is only ever replaced wholesale under the mutex, so
// a snapshot returned by Tasks is never mutated afterwards.
type Store struct {
	svc  service.Service
	sess *session.Session

	mu        sync.Mutex
	tasks     []Task
	loading   bool
	lastErr   error
	listeners []func()
}

// New creates a Store bound to the given session. The store subscribes
// to session transitions immediately.
func New(svc service.Service, sess *session.Session) *Store {
	s := &Store{svc: svc, sess: sess}
	sess.Subscribe(func(ev session.Event) {
		switch ev {
		case session.Started:
			_ = s.LoadTasks(context.Background())
		case session.Ended:
			s.clear()
		}
	})
	return s
}

// Subscribe registers a listener invoked after every state change,
// outside the store's lock.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) emit() {
	s.mu.Lock()
	fns := make([]func(), len(s.listeners))
	copy(fns, s.listeners)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Tasks returns a snapshot of the current collection.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the local task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Loading reports the store-wide loading flag. It is deliberately
// coarse: one flag for load/add/edit, not per task.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last operation error, or nil. Last write wins.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.emit()
}

// fail records the classified error and returns it.
func (s *Store) fail(msg string, cause error) error {
	err := &OpError{Message: msg, Err: cause}
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.emit()
	return err
}

func (s *Store) clearErr() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// clear drops the whole collection, also discarding any in-flight
// load's result via the token guard in LoadTasks.
func (s *Store) clear() {
	s.mu.Lock()
	s.tasks = nil
	s.lastErr = nil
	s.mu.Unlock()
	s.emit()
}

// requireToken returns the current bearer token, or the AuthRequired
// condition without touching the network.
func (s *Store) requireToken() (string, error) {
	tok := s.sess.Token()
	if tok == "" {
		return "", apierr.New(apierr.AuthRequired, "authentication required")
	}
	return tok, nil
}

// fromWire normalizes a backend todo at the ingestion boundary. The
// dual completed/status representation collapses to one boolean here
// and nowhere else.
func fromWire(t service.Todo) Task {
	return Task{
		ID:          t.ID,
		Text:        t.Title,
		Description: t.Description,
		Completed:   t.Done(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// LoadTasks fetches the full collection, replacing local state
// wholesale. Concurrent calls are not coalesced; the most recently
// completing call wins. A response that arrives after the session it
// was issued under ended (or changed) is dropped.
func (s *Store) LoadTasks(ctx context.Context) error {
	tok, err := s.requireToken()
	if err != nil {
		return s.fail("Authentication required", err)
	}

	s.clearErr()
	s.setLoading(true)
	defer s.setLoading(false)

	todos, err := s.svc.ListTodos(ctx, tok)
	if err != nil {
		return s.fail("Failed to load tasks: "+describe(err), err)
	}

	// Stale-response guard: only apply if the issuing session is still
	// the current one.
	if s.sess.Token() != tok {
		return nil
	}

	next := make([]Task, 0, len(todos))
	for _, t := range todos {
		next = append(next, fromWire(t))
	}

	s.mu.Lock()
	s.tasks = next
	s.mu.Unlock()
	s.emit()
	return nil
}

// AddTask creates a task remotely and appends the server-normalized
// result. Creation is pessimistic: nothing is added locally until the
// backend confirms with a real id.
func (s *Store) AddTask(ctx context.Context, text, description string) error {
	tok, err := s.requireToken()
	if err != nil {
		return s.fail("Authentication required", err)
	}

	s.clearErr()
	s.setLoading(true)
	defer s.setLoading(false)

	todo, err := s.svc.CreateTodo(ctx, tok, text, description)
	if err != nil {
		return s.fail("Failed to add task: "+describe(err), err)
	}

	if s.sess.Token() != tok {
		return nil
	}

	s.mu.Lock()
	next := make([]Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	s.tasks = append(next, fromWire(todo))
	s.mu.Unlock()
	s.emit()
	return nil
}

// DeleteTask removes a task remotely, then locally. Deletion is
// pessimistic: on failure no local mutation occurs.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tok, err := s.requireToken()
	if err != nil {
		return s.fail("Authentication required", err)
	}
	if _, ok := s.Get(id); !ok {
		cause := apierr.New(apierr.NotFound, "task not found")
		return s.fail("Task not found", cause)
	}

	s.clearErr()

	if err := s.svc.DeleteTodo(ctx, tok, id); err != nil {
		return s.fail("Failed to delete task: "+describe(err), err)
	}

	s.mu.Lock()
	next := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	s.tasks = next
	s.mu.Unlock()
	s.emit()
	return nil
}

// ToggleComplete flips completion optimistically, then reconciles with
// the backend's authoritative answer. On failure the flag reverts to
// the exact pre-toggle snapshot, leaving every other task untouched.
func (s *Store) ToggleComplete(ctx context.Context, id string) error {
	tok, err := s.requireToken()
	if err != nil {
		return s.fail("Authentication required", err)
	}

	prev, ok := s.Get(id)
	if !ok {
		cause := apierr.New(apierr.NotFound, "task not found")
		return s.fail("Task not found", cause)
	}

	// Optimistic flip.
	s.patch(id, func(t *Task) {
		t.Completed = !prev.Completed
	})

	todo, err := s.svc.ToggleTodo(ctx, tok, id)
	if err != nil {
		// Revert to the snapshot taken before the flip, never to a
		// recomputed value.
		s.patch(id, func(t *Task) {
			t.Completed = prev.Completed
		})
		return s.fail(toggleMessage(err), err)
	}

	// Reconcile with the server's answer; guards against server-side
	// business rules overriding the flip.
	s.patch(id, func(t *Task) {
		t.Completed = todo.Done()
		t.UpdatedAt = todo.UpdatedAt
	})
	return nil
}

// EditTask sets the title optimistically and clears the editing flag,
// then reconciles with the backend. On failure the title reverts to
// its pre-edit snapshot; the editing flag stays cleared.
func (s *Store) EditTask(ctx context.Context, id, newText string) error {
	tok, err := s.requireToken()
	if err != nil {
		return s.fail("Authentication required", err)
	}

	prev, ok := s.Get(id)
	if !ok {
		cause := apierr.New(apierr.NotFound, "task not found")
		return s.fail("Task not found", cause)
	}

	// The backend caps titles at 100 characters; truncate before the
	// optimistic write so local state matches what is sent.
	newText = truncate(newText, titleMaxLen)

	s.patch(id, func(t *Task) {
		t.Text = newText
		t.IsEditing = false
	})

	s.clearErr()
	s.setLoading(true)
	defer s.setLoading(false)

	todo, err := s.svc.UpdateTodo(ctx, tok, id, newText, prev.Description)
	if err != nil {
		s.patch(id, func(t *Task) {
			t.Text = prev.Text
			t.IsEditing = false
		})
		return s.fail(editMessage(err), err)
	}

	s.patch(id, func(t *Task) {
		t.Text = todo.Title
		t.Description = todo.Description
		t.UpdatedAt = todo.UpdatedAt
		t.IsEditing = false
	})
	return nil
}

// StartEdit marks a task as being edited. Local-only; unknown ids are
// ignored.
func (s *Store) StartEdit(id string) {
	s.patch(id, func(t *Task) {
		t.IsEditing = true
	})
}

// MoveTaskUp swaps a task with its predecessor. Local-only and not
// persisted: a reload restores server order. No-op on the first
// element.
func (s *Store) MoveTaskUp(id string) {
	s.swap(id, -1)
}

// MoveTaskDown swaps a task with its successor. Local-only and not
// persisted. No-op on the last element.
func (s *Store) MoveTaskDown(id string) {
	s.swap(id, +1)
}

func (s *Store) swap(id string, delta int) {
	s.mu.Lock()
	idx := -1
	for i, t := range s.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	j := idx + delta
	if idx < 0 || j < 0 || j >= len(s.tasks) {
		s.mu.Unlock()
		return
	}
	next := make([]Task, len(s.tasks))
	copy(next, s.tasks)
	next[idx], next[j] = next[j], next[idx]
	s.tasks = next
	s.mu.Unlock()
	s.emit()
}

// patch applies fn to the task with the given id in a freshly copied
// slice. Unknown ids (e.g. the task vanished while a call was in
// flight) are ignored.
func (s *Store) patch(id string, fn func(*Task)) {
	s.mu.Lock()
	idx := -1
	for i, t := range s.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	next := make([]Task, len(s.tasks))
	copy(next, s.tasks)
	fn(&next[idx])
	s.tasks = next
	s.mu.Unlock()
	s.emit()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// toggleMessage maps a failed toggle to its user-facing message.
func toggleMessage(err error) string {
	switch apierr.KindOf(err) {
	case apierr.NotFound:
		return "Task not found. It may have been deleted."
	case apierr.Unauthorized:
		return "You are not authorized to modify this task."
	case apierr.NetworkFailure:
		return "Network error. Please check your connection and try again."
	default:
		return "Failed to update task status. Please try again."
	}
}

// editMessage maps a failed edit to its user-facing message.
func editMessage(err error) string {
	switch apierr.KindOf(err) {
	case apierr.NotFound:
		return "Task not found. It may have been deleted."
	case apierr.Unauthorized:
		return "You are not authorized to edit this task."
	case apierr.ValidationFailed:
		return "Title is too long (max 100 characters) or validation failed."
	case apierr.NetworkFailure:
		return "Network error. Please check your connection and try again."
	default:
		return "Failed to update task. Please try again."
	}
}

// describe renders the cause suffix for load/add/delete failures.
func describe(err error) string {
	if apierr.KindOf(err) == apierr.NetworkFailure {
		return "network error"
	}
	return err.Error()
}
