// Package service defines the backend-agnostic interface for Taskflow operations.
package service

import "context"

// Service defines the interface for the remote Taskflow backend.
// All HTTP calls go through this interface; the session and store
// never import the REST client directly.
//
// The bearer token is passed per call rather than held by the client,
// so a caller can detect a stale response by comparing the token it
// issued the call with against the session's current token.
type Service interface {
	// Register creates a new account and returns a fresh token.
	// The backend treats registration as an immediate login.
	Register(ctx context.Context, username, password string) (string, error)

	// Login exchanges credentials for a fresh token.
	Login(ctx context.Context, username, password string) (string, error)

	// Refresh exchanges a valid token for a new one.
	Refresh(ctx context.Context, token string) (string, error)

	// ListTodos returns all todos for the authenticated user, in server order.
	ListTodos(ctx context.Context, token string) ([]Todo, error)

	// GetTodo returns a single todo by id.
	GetTodo(ctx context.Context, token, id string) (Todo, error)

	// CreateTodo creates a todo and returns the server-assigned record,
	// including its id and timestamps.
	CreateTodo(ctx context.Context, token, title, description string) (Todo, error)

	// UpdateTodo replaces title and description and returns the updated record.
	UpdateTodo(ctx context.Context, token, id, title, description string) (Todo, error)

	// ToggleTodo flips completion server-side and returns the updated record.
	ToggleTodo(ctx context.Context, token, id string) (Todo, error)

	// DeleteTodo deletes a todo.
	DeleteTodo(ctx context.Context, token, id string) error

	// Ping checks backend liveness. Requires no authentication.
	Ping(ctx context.Context) (Health, error)
}
