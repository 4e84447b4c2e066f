package data

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/todoapi/db"
	"github.com/evergreen-ci/todoapi/model/todo"
)

func (dc *DBConnector) FindTodos(ctx context.Context) (todos []todo.Todo, err error) {
	ctx, span := tracer.Start(ctx, "FindTodos")
	defer func() { dc.finish(ctx, span, "find_todos", err) }()

	todos, err = todo.FindAll(ctx, dc.env.DB())
	if err != nil {
		return nil, storeError("finding todos", err)
	}

	return todos, nil
}

func (dc *DBConnector) FindTodoById(ctx context.Context, id string) (t *todo.Todo, err error) {
	ctx, span := tracer.Start(ctx, "FindTodoById")
	defer func() { dc.finish(ctx, span, "find_todo", err) }()

	oid, err := todo.ParseId(id)
	if err != nil {
		return nil, invalidTodoIdError(id)
	}

	t, err = todo.FindOneId(ctx, dc.env.DB(), oid)
	if err != nil {
		return nil, storeError("finding todo", err)
	}
	if t == nil {
		return nil, todoNotFoundError()
	}

	return t, nil
}

func (dc *DBConnector) CreateTodo(ctx context.Context, t todo.Todo) (id string, err error) {
	ctx, span := tracer.Start(ctx, "CreateTodo")
	defer func() { dc.finish(ctx, span, "create_todo", err) }()

	if err = t.Insert(ctx, dc.env.DB()); err != nil {
		if db.IsDuplicateKey(err) {
			return "", gimlet.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    "todo already exists",
			}
		}
		return "", storeError("creating todo", err)
	}

	return t.Id.Hex(), nil
}

func (dc *DBConnector) UpdateTodo(ctx context.Context, id string, patch todo.Patch) (updated int, err error) {
	ctx, span := tracer.Start(ctx, "UpdateTodo")
	defer func() { dc.finish(ctx, span, "update_todo", err) }()

	oid, err := todo.ParseId(id)
	if err != nil {
		return 0, invalidTodoIdError(id)
	}
	if patch.IsEmpty() {
		return 0, emptyPatchError()
	}

	info, err := todo.UpdateOne(ctx, dc.env.DB(), oid, patch)
	if err != nil {
		return 0, storeError("updating todo", err)
	}
	if info.Matched == 0 {
		return 0, todoNotFoundError()
	}

	return info.Updated, nil
}

func (dc *DBConnector) DeleteTodo(ctx context.Context, id string) (deleted int, err error) {
	ctx, span := tracer.Start(ctx, "DeleteTodo")
	defer func() { dc.finish(ctx, span, "delete_todo", err) }()

	oid, err := todo.ParseId(id)
	if err != nil {
		return 0, invalidTodoIdError(id)
	}

	deleted, err = todo.Remove(ctx, dc.env.DB(), oid)
	if err != nil {
		return 0, storeError("deleting todo", err)
	}
	if deleted == 0 {
		return 0, todoNotFoundError()
	}

	return deleted, nil
}

func (dc *DBConnector) CountIncompleteTodos(ctx context.Context) (count int, err error) {
	ctx, span := tracer.Start(ctx, "CountIncompleteTodos")
	defer func() { dc.finish(ctx, span, "count_incomplete_todos", err) }()

	count, err = todo.CountIncomplete(ctx, dc.env.DB())
	if err != nil {
		return 0, storeError("counting incomplete todos", err)
	}

	return count, nil
}
