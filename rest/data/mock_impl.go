package data

import (
	"context"
	"sync"

	"github.com/evergreen-ci/todoapi/model/todo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockConnector is an in-memory Connector for route tests. It keeps todos
// in insertion order and reports errors the same way DBConnector does.
// Setting StoredError makes every call fail as a store fault.
type MockConnector struct {
	CachedTodos []todo.Todo
	StoredError error

	mu sync.Mutex
}

func (mc *MockConnector) FindTodos(_ context.Context) ([]todo.Todo, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.StoredError != nil {
		return nil, storeError("finding todos", mc.StoredError)
	}

	return append([]todo.Todo{}, mc.CachedTodos...), nil
}

func (mc *MockConnector) FindTodoById(_ context.Context, id string) (*todo.Todo, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	oid, err := todo.ParseId(id)
	if err != nil {
		return nil, invalidTodoIdError(id)
	}
	if mc.StoredError != nil {
		return nil, storeError("finding todo", mc.StoredError)
	}

	idx := mc.indexOf(oid)
	if idx < 0 {
		return nil, todoNotFoundError()
	}
	t := mc.CachedTodos[idx]

	return &t, nil
}

func (mc *MockConnector) CreateTodo(_ context.Context, t todo.Todo) (string, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.StoredError != nil {
		return "", storeError("creating todo", mc.StoredError)
	}

	if t.Id.IsZero() {
		t.Id = primitive.NewObjectID()
	}
	mc.CachedTodos = append(mc.CachedTodos, t)

	return t.Id.Hex(), nil
}

func (mc *MockConnector) UpdateTodo(_ context.Context, id string, patch todo.Patch) (int, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	oid, err := todo.ParseId(id)
	if err != nil {
		return 0, invalidTodoIdError(id)
	}
	if patch.IsEmpty() {
		return 0, emptyPatchError()
	}
	if mc.StoredError != nil {
		return 0, storeError("updating todo", mc.StoredError)
	}

	idx := mc.indexOf(oid)
	if idx < 0 {
		return 0, todoNotFoundError()
	}

	t := mc.CachedTodos[idx]
	updated := t
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Complete != nil {
		updated.Complete = *patch.Complete
	}
	if updated == t {
		return 0, nil
	}
	mc.CachedTodos[idx] = updated

	return 1, nil
}

func (mc *MockConnector) DeleteTodo(_ context.Context, id string) (int, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	oid, err := todo.ParseId(id)
	if err != nil {
		return 0, invalidTodoIdError(id)
	}
	if mc.StoredError != nil {
		return 0, storeError("deleting todo", mc.StoredError)
	}

	idx := mc.indexOf(oid)
	if idx < 0 {
		return 0, todoNotFoundError()
	}
	mc.CachedTodos = append(mc.CachedTodos[:idx], mc.CachedTodos[idx+1:]...)

	return 1, nil
}

func (mc *MockConnector) CountIncompleteTodos(_ context.Context) (int, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.StoredError != nil {
		return 0, storeError("counting incomplete todos", mc.StoredError)
	}

	count := 0
	for _, t := range mc.CachedTodos {
		if !t.Complete {
			count++
		}
	}

	return count, nil
}

func (mc *MockConnector) indexOf(id primitive.ObjectID) int {
	for i, t := range mc.CachedTodos {
		if t.Id == id {
			return i
		}
	}
	return -1
}
