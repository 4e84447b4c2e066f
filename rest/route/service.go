package route

import (
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/todoapi"
	"github.com/evergreen-ci/todoapi/rest/data"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const notFoundBody = "Not Found"

// AttachHandler registers the todo routes on the given app. The literal
// count route is added ahead of the {id} routes so that it always wins.
func AttachHandler(app *gimlet.APIApp, sc data.Connector) {
	app.AddRoute("/todos").Post().RouteHandler(makeCreateTodo(sc))
	app.AddRoute("/todos").Get().RouteHandler(makeGetTodos(sc))
	app.AddRoute("/todos/incomplete/count").Get().RouteHandler(makeCountIncompleteTodos(sc))
	app.AddRoute("/todos/{id}").Get().RouteHandler(makeGetTodo(sc))
	app.AddRoute("/todos/{id}").Put().RouteHandler(makeUpdateTodo(sc))
	app.AddRoute("/todos/{id}").Delete().RouteHandler(makeDeleteTodo(sc))
}

// GetHandler builds the service's http.Handler. Requests that match no
// route, or match a path with the wrong method, get a plain-text 404.
func GetHandler(prefix string, sc data.Connector) (http.Handler, error) {
	app := gimlet.NewApp()
	app.NoVersions = true
	if prefix != "" {
		app.SetPrefix(prefix)
	}
	AttachHandler(app, sc)

	if err := app.Resolve(); err != nil {
		return nil, errors.Wrap(err, "resolving routes")
	}
	router, err := app.Router()
	if err != nil {
		return nil, errors.Wrap(err, "getting router")
	}
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(notFound)
	router.Use(otelmux.Middleware(todoapi.ServiceName))

	handler, err := app.Handler()
	if err != nil {
		return nil, errors.Wrap(err, "building handler")
	}

	return handler, nil
}

func notFound(rw http.ResponseWriter, r *http.Request) {
	gimlet.WriteTextResponse(rw, http.StatusNotFound, notFoundBody)
}
