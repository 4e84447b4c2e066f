package route

import (
	"context"
	"io"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/todoapi/model/todo"
	"github.com/evergreen-ci/todoapi/rest/data"
	"github.com/evergreen-ci/todoapi/rest/model"
	"github.com/pkg/errors"
)

const todoIdVar = "id"

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading request body").Error(),
		}
	}

	return body, nil
}

func badRequest(err error) gimlet.ErrorResponse {
	return gimlet.ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
	}
}

///////////////////////////////////////////////////////////////////////////////
//
// POST /todos

type todoCreateHandler struct {
	todo     todo.Todo
	parseErr error

	sc data.Connector
}

func makeCreateTodo(sc data.Connector) gimlet.RouteHandler {
	return &todoCreateHandler{
		sc: sc,
	}
}

func (h *todoCreateHandler) Factory() gimlet.RouteHandler {
	return &todoCreateHandler{
		sc: h.sc,
	}
}

// Parse keeps body errors for Run so that they are reported in the same
// shape as every other error.
func (h *todoCreateHandler) Parse(ctx context.Context, r *http.Request) error {
	h.parseErr = h.parse(r)
	return nil
}

func (h *todoCreateHandler) parse(r *http.Request) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}

	apiTodo, err := model.ParseTodoCreate(body)
	if err != nil {
		return badRequest(err)
	}
	// Clients never choose the id.
	apiTodo.Id = nil

	h.todo, err = apiTodo.ToService()
	if err != nil {
		return badRequest(err)
	}

	return nil
}

func (h *todoCreateHandler) Run(ctx context.Context) gimlet.Responder {
	if h.parseErr != nil {
		return makeErrorResponder(h.parseErr)
	}

	id, err := h.sc.CreateTodo(ctx, h.todo)
	if err != nil {
		return makeErrorResponder(err)
	}

	resp := gimlet.NewJSONResponse(model.APITodoCreated{Id: id})
	if err = resp.SetStatus(http.StatusCreated); err != nil {
		return makeErrorResponder(errors.Wrap(err, "setting response status"))
	}

	return resp
}

///////////////////////////////////////////////////////////////////////////////
//
// GET /todos

type todosGetHandler struct {
	sc data.Connector
}

func makeGetTodos(sc data.Connector) gimlet.RouteHandler {
	return &todosGetHandler{
		sc: sc,
	}
}

func (h *todosGetHandler) Factory() gimlet.RouteHandler {
	return &todosGetHandler{
		sc: h.sc,
	}
}

func (h *todosGetHandler) Parse(ctx context.Context, r *http.Request) error { return nil }

func (h *todosGetHandler) Run(ctx context.Context) gimlet.Responder {
	todos, err := h.sc.FindTodos(ctx)
	if err != nil {
		return makeErrorResponder(err)
	}

	apiTodos := make([]model.APITodo, 0, len(todos))
	for _, t := range todos {
		apiTodo := model.APITodo{}
		apiTodo.BuildFromService(t)
		apiTodos = append(apiTodos, apiTodo)
	}

	return gimlet.NewJSONResponse(apiTodos)
}

///////////////////////////////////////////////////////////////////////////////
//
// GET /todos/{id}

type todoGetHandler struct {
	todoId string

	sc data.Connector
}

func makeGetTodo(sc data.Connector) gimlet.RouteHandler {
	return &todoGetHandler{
		sc: sc,
	}
}

func (h *todoGetHandler) Factory() gimlet.RouteHandler {
	return &todoGetHandler{
		sc: h.sc,
	}
}

func (h *todoGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.todoId = gimlet.GetVars(r)[todoIdVar]
	return nil
}

func (h *todoGetHandler) Run(ctx context.Context) gimlet.Responder {
	t, err := h.sc.FindTodoById(ctx, h.todoId)
	if err != nil {
		return makeErrorResponder(err)
	}

	apiTodo := model.APITodo{}
	apiTodo.BuildFromService(*t)

	return gimlet.NewJSONResponse(apiTodo)
}

///////////////////////////////////////////////////////////////////////////////
//
// PUT /todos/{id}

type todoUpdateHandler struct {
	todoId   string
	patch    todo.Patch
	parseErr error

	sc data.Connector
}

func makeUpdateTodo(sc data.Connector) gimlet.RouteHandler {
	return &todoUpdateHandler{
		sc: sc,
	}
}

func (h *todoUpdateHandler) Factory() gimlet.RouteHandler {
	return &todoUpdateHandler{
		sc: h.sc,
	}
}

func (h *todoUpdateHandler) Parse(ctx context.Context, r *http.Request) error {
	h.todoId = gimlet.GetVars(r)[todoIdVar]
	h.parseErr = h.parse(r)
	return nil
}

func (h *todoUpdateHandler) parse(r *http.Request) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}

	apiPatch, err := model.ParseTodoPatch(body)
	if err != nil {
		return badRequest(err)
	}
	h.patch = apiPatch.ToService()

	return nil
}

func (h *todoUpdateHandler) Run(ctx context.Context) gimlet.Responder {
	if h.parseErr != nil {
		return makeErrorResponder(h.parseErr)
	}

	updated, err := h.sc.UpdateTodo(ctx, h.todoId, h.patch)
	if err != nil {
		return makeErrorResponder(err)
	}

	return gimlet.NewJSONResponse(model.APITodoUpdated{Updated: updated})
}

///////////////////////////////////////////////////////////////////////////////
//
// DELETE /todos/{id}

type todoDeleteHandler struct {
	todoId string

	sc data.Connector
}

func makeDeleteTodo(sc data.Connector) gimlet.RouteHandler {
	return &todoDeleteHandler{
		sc: sc,
	}
}

func (h *todoDeleteHandler) Factory() gimlet.RouteHandler {
	return &todoDeleteHandler{
		sc: h.sc,
	}
}

func (h *todoDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.todoId = gimlet.GetVars(r)[todoIdVar]
	return nil
}

func (h *todoDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	deleted, err := h.sc.DeleteTodo(ctx, h.todoId)
	if err != nil {
		return makeErrorResponder(err)
	}

	return gimlet.NewJSONResponse(model.APITodoDeleted{Deleted: deleted})
}

///////////////////////////////////////////////////////////////////////////////
//
// GET /todos/incomplete/count

type incompleteCountHandler struct {
	sc data.Connector
}

func makeCountIncompleteTodos(sc data.Connector) gimlet.RouteHandler {
	return &incompleteCountHandler{
		sc: sc,
	}
}

func (h *incompleteCountHandler) Factory() gimlet.RouteHandler {
	return &incompleteCountHandler{
		sc: h.sc,
	}
}

func (h *incompleteCountHandler) Parse(ctx context.Context, r *http.Request) error { return nil }

func (h *incompleteCountHandler) Run(ctx context.Context) gimlet.Responder {
	count, err := h.sc.CountIncompleteTodos(ctx)
	if err != nil {
		return makeErrorResponder(err)
	}

	return gimlet.NewJSONResponse(model.APIIncompleteCount{IncompleteCount: count})
}
