package data

import (
	"context"

	"github.com/evergreen-ci/todoapi/model/todo"
)

// Connector is the interface the route handlers use to reach the store.
// Errors returned by its methods are gimlet.ErrorResponse values.
type Connector interface {
	// FindTodos returns every todo.
	FindTodos(context.Context) ([]todo.Todo, error)
	// FindTodoById returns the todo with the given hex id.
	FindTodoById(context.Context, string) (*todo.Todo, error)
	// CreateTodo stores a new todo and returns its hex id.
	CreateTodo(context.Context, todo.Todo) (string, error)
	// UpdateTodo applies the patch to the todo with the given hex id and
	// returns the number of todos modified.
	UpdateTodo(context.Context, string, todo.Patch) (int, error)
	// DeleteTodo removes the todo with the given hex id and returns the
	// number of todos removed.
	DeleteTodo(context.Context, string) (int, error)
	// CountIncompleteTodos returns how many todos are not complete.
	CountIncompleteTodos(context.Context) (int, error)
}
