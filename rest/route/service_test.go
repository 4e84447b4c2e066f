package route

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evergreen-ci/todoapi/model/todo"
	"github.com/evergreen-ci/todoapi/rest/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testServer struct {
	t      *testing.T
	server *httptest.Server
}

func newTestServer(t *testing.T, prefix string, sc data.Connector) *testServer {
	handler, err := GetHandler(prefix, sc)
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testServer{t: t, server: server}
}

func (ts *testServer) do(method, path, body string) (int, []byte) {
	status, _, out := ts.doWithHeader(method, path, body)
	return status, out
}

func (ts *testServer) doWithHeader(method, path, body string) (int, http.Header, []byte) {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	require.NoError(ts.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.server.Client().Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(ts.t, err)

	return resp.StatusCode, resp.Header, out
}

func (ts *testServer) doJSON(method, path, body string, out interface{}) int {
	status, raw := ts.do(method, path, body)
	require.NoError(ts.t, json.Unmarshal(raw, out), string(raw))
	return status
}

func TestGetHandlerResolvesEveryRoute(t *testing.T) {
	for _, prefix := range []string{"", "/api"} {
		handler, err := GetHandler(prefix, &data.MockConnector{})
		require.NoError(t, err, prefix)
		assert.NotNil(t, handler)
	}
}

func TestJSONContentType(t *testing.T) {
	ts := newTestServer(t, "", &data.MockConnector{})

	status, header, _ := ts.doWithHeader(http.MethodPost, "/todos", `{"title":"buy milk"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Contains(t, header.Get("Content-Type"), "application/json")

	for _, path := range []string{"/todos", "/todos/incomplete/count", "/todos/" + primitive.NewObjectID().Hex()} {
		_, header, _ = ts.doWithHeader(http.MethodGet, path, "")
		assert.Contains(t, header.Get("Content-Type"), "application/json", path)
	}
}

func TestErrorBodiesCarryOnlyErrorMessage(t *testing.T) {
	ts := newTestServer(t, "", &data.MockConnector{})

	for _, req := range []struct {
		method string
		path   string
		body   string
		status int
	}{
		{method: http.MethodGet, path: "/todos/" + primitive.NewObjectID().Hex(), status: http.StatusNotFound},
		{method: http.MethodGet, path: "/todos/42", status: http.StatusBadRequest},
		{method: http.MethodPost, path: "/todos", status: http.StatusBadRequest},
		{method: http.MethodPut, path: "/todos/" + primitive.NewObjectID().Hex(), body: "{}", status: http.StatusBadRequest},
		{method: http.MethodDelete, path: "/todos/" + primitive.NewObjectID().Hex(), status: http.StatusNotFound},
	} {
		out := map[string]interface{}{}
		require.Equal(t, req.status, ts.doJSON(req.method, req.path, req.body, &out), "%s %s", req.method, req.path)
		require.Len(t, out, 1, "%s %s: %v", req.method, req.path, out)
		msg, ok := out["error"].(string)
		require.True(t, ok)
		assert.NotEmpty(t, msg)
	}
}

func TestBuyMilkScenario(t *testing.T) {
	ts := newTestServer(t, "", &data.MockConnector{})

	created := map[string]string{}
	require.Equal(t, http.StatusCreated, ts.doJSON(http.MethodPost, "/todos", `{"title":"buy milk","complete":false}`, &created))
	id := created["id"]
	require.Len(t, id, 24)

	record := map[string]interface{}{}
	require.Equal(t, http.StatusOK, ts.doJSON(http.MethodGet, "/todos/"+id, "", &record))
	assert.Equal(t, id, record["id"])
	assert.Equal(t, "buy milk", record["title"])
	assert.Equal(t, false, record["complete"])

	count := map[string]int{}
	require.Equal(t, http.StatusOK, ts.doJSON(http.MethodGet, "/todos/incomplete/count", "", &count))
	assert.Equal(t, 1, count["incompleteCount"])

	updated := map[string]int{}
	require.Equal(t, http.StatusOK, ts.doJSON(http.MethodPut, "/todos/"+id, `{"complete":true}`, &updated))
	assert.Equal(t, 1, updated["updated"])

	count = map[string]int{}
	require.Equal(t, http.StatusOK, ts.doJSON(http.MethodGet, "/todos/incomplete/count", "", &count))
	assert.Equal(t, 0, count["incompleteCount"])

	deleted := map[string]int{}
	require.Equal(t, http.StatusOK, ts.doJSON(http.MethodDelete, "/todos/"+id, "", &deleted))
	assert.Equal(t, 1, deleted["deleted"])

	notFound := map[string]interface{}{}
	require.Equal(t, http.StatusNotFound, ts.doJSON(http.MethodGet, "/todos/"+id, "", &notFound))
	assert.Equal(t, map[string]interface{}{"error": data.TodoNotFoundMessage}, notFound)

	list := []map[string]interface{}{}
	require.Equal(t, http.StatusOK, ts.doJSON(http.MethodGet, "/todos", "", &list))
	assert.Empty(t, list)
}

func TestListReturnsJSONArray(t *testing.T) {
	ts := newTestServer(t, "", &data.MockConnector{})

	status, raw := ts.do(http.MethodGet, "/todos", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(raw))
}

func TestCountRouteWinsOverIdRoute(t *testing.T) {
	sc := &data.MockConnector{
		CachedTodos: []todo.Todo{
			{Id: primitive.NewObjectID(), Title: "a"},
			{Id: primitive.NewObjectID(), Title: "b"},
			{Id: primitive.NewObjectID(), Title: "c", Complete: true},
		},
	}
	ts := newTestServer(t, "", sc)

	count := map[string]int{}
	require.Equal(t, http.StatusOK, ts.doJSON(http.MethodGet, "/todos/incomplete/count", "", &count))
	assert.Equal(t, 2, count["incompleteCount"])

	status, _ := ts.do(http.MethodGet, "/todos/incomplete", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMalformedIdsAreClientErrors(t *testing.T) {
	ts := newTestServer(t, "", &data.MockConnector{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		body := ""
		if method == http.MethodPut {
			body = `{"complete":true}`
		}
		status, _ := ts.do(method, "/todos/42", body)
		assert.Equal(t, http.StatusBadRequest, status, method)
	}
}

func TestUnmatchedRoutesAreNotFound(t *testing.T) {
	ts := newTestServer(t, "", &data.MockConnector{})

	for _, req := range []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/"},
		{method: http.MethodGet, path: "/todo"},
		{method: http.MethodGet, path: "/todos/a/b/c"},
		{method: http.MethodPatch, path: "/todos"},
		{method: http.MethodPost, path: "/todos/incomplete/count"},
	} {
		status, body := ts.do(req.method, req.path, "")
		assert.Equal(t, http.StatusNotFound, status, "%s %s", req.method, req.path)
		assert.Equal(t, notFoundBody, string(body))
	}
}

func TestBadBodiesAreClientErrors(t *testing.T) {
	ts := newTestServer(t, "", &data.MockConnector{})

	for _, body := range []string{"", "not json", `{"complete": true}`} {
		out := map[string]interface{}{}
		status, raw := ts.do(http.MethodPost, "/todos", body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.NotEmpty(t, out["error"])
	}
}

func TestStoreFaultIsInternalError(t *testing.T) {
	ts := newTestServer(t, "", &data.MockConnector{StoredError: assert.AnError})

	out := map[string]interface{}{}
	require.Equal(t, http.StatusInternalServerError, ts.doJSON(http.MethodGet, "/todos", "", &out))
	msg, ok := out["error"].(string)
	require.True(t, ok)
	assert.Equal(t, "problem finding todos", msg)
	assert.NotContains(t, msg, assert.AnError.Error())
}

func TestRoutePrefix(t *testing.T) {
	ts := newTestServer(t, "/api", &data.MockConnector{})

	status, _ := ts.do(http.MethodGet, "/api/todos", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = ts.do(http.MethodGet, "/todos", "")
	assert.Equal(t, http.StatusNotFound, status)
}
