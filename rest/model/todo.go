package model

import (
	"github.com/evergreen-ci/todoapi/model/todo"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

// APITodo is the JSON form of a todo record.
type APITodo struct {
	Id       *string `json:"id"`
	Title    *string `json:"title"`
	Complete *bool   `json:"complete"`
}

// BuildFromService converts from a stored todo to an APITodo.
func (apiTodo *APITodo) BuildFromService(t todo.Todo) {
	apiTodo.Id = utility.ToStringPtr(t.Id.Hex())
	apiTodo.Title = utility.ToStringPtr(t.Title)
	apiTodo.Complete = utility.ToBoolPtr(t.Complete)
}

// ToService returns a todo built from the APITodo. A missing completion
// flag means the todo is not complete.
func (apiTodo *APITodo) ToService() (todo.Todo, error) {
	t := todo.Todo{
		Title:    utility.FromStringPtr(apiTodo.Title),
		Complete: utility.FromBoolPtr(apiTodo.Complete),
	}
	if id := utility.FromStringPtr(apiTodo.Id); id != "" {
		oid, err := todo.ParseId(id)
		if err != nil {
			return todo.Todo{}, errors.WithStack(err)
		}
		t.Id = oid
	}

	return t, nil
}

// APITodoPatch holds the fields an update request sets.
type APITodoPatch struct {
	Title    *string `json:"title"`
	Complete *bool   `json:"complete"`
}

// ToService returns the patch to apply to a stored todo.
func (p *APITodoPatch) ToService() todo.Patch {
	return todo.Patch{
		Title:    p.Title,
		Complete: p.Complete,
	}
}

// APITodoCreated is returned when a todo is created.
type APITodoCreated struct {
	Id string `json:"id"`
}

// APITodoUpdated reports how many todos an update modified.
type APITodoUpdated struct {
	Updated int `json:"updated"`
}

// APITodoDeleted reports how many todos a delete removed.
type APITodoDeleted struct {
	Deleted int `json:"deleted"`
}

// APIIncompleteCount reports how many todos are not complete.
type APIIncompleteCount struct {
	IncompleteCount int `json:"incompleteCount"`
}

// APIError is the body of every failed request.
type APIError struct {
	Error string `json:"error"`
}
