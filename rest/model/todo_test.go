package model

import (
	"testing"

	"github.com/evergreen-ci/todoapi/model/todo"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAPITodoBuildFromService(t *testing.T) {
	t.Run("AllFields", func(t *testing.T) {
		stored := todo.Todo{
			Id:       primitive.NewObjectID(),
			Title:    "buy milk",
			Complete: true,
		}

		apiTodo := APITodo{}
		apiTodo.BuildFromService(stored)
		assert.Equal(t, stored.Id.Hex(), utility.FromStringPtr(apiTodo.Id))
		assert.Equal(t, "buy milk", utility.FromStringPtr(apiTodo.Title))
		assert.True(t, utility.FromBoolPtr(apiTodo.Complete))

		roundTripped, err := apiTodo.ToService()
		require.NoError(t, err)
		assert.Equal(t, stored, roundTripped)
	})
	t.Run("FalseCompleteIsStillSet", func(t *testing.T) {
		apiTodo := APITodo{}
		apiTodo.BuildFromService(todo.Todo{Id: primitive.NewObjectID(), Title: "t"})
		require.NotNil(t, apiTodo.Complete)
		assert.False(t, *apiTodo.Complete)
	})
}

func TestAPITodoToService(t *testing.T) {
	t.Run("MissingCompleteDefaultsToFalse", func(t *testing.T) {
		apiTodo := APITodo{Title: utility.ToStringPtr("walk dog")}
		stored, err := apiTodo.ToService()
		require.NoError(t, err)
		assert.True(t, stored.Id.IsZero())
		assert.Equal(t, "walk dog", stored.Title)
		assert.False(t, stored.Complete)
	})
	t.Run("InvalidIdErrors", func(t *testing.T) {
		apiTodo := APITodo{Id: utility.ToStringPtr("123")}
		_, err := apiTodo.ToService()
		assert.Error(t, err)
	})
}

func TestAPITodoPatchToService(t *testing.T) {
	patch := APITodoPatch{Complete: utility.TruePtr()}
	p := patch.ToService()
	assert.Nil(t, p.Title)
	require.NotNil(t, p.Complete)
	assert.True(t, *p.Complete)
}

func TestParseTodoCreate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		apiTodo, err := ParseTodoCreate([]byte(`{"title":"buy milk","complete":false}`))
		require.NoError(t, err)
		assert.Equal(t, "buy milk", utility.FromStringPtr(apiTodo.Title))
		require.NotNil(t, apiTodo.Complete)
		assert.False(t, *apiTodo.Complete)
	})
	t.Run("TitleOnly", func(t *testing.T) {
		apiTodo, err := ParseTodoCreate([]byte(`{"title":"buy milk"}`))
		require.NoError(t, err)
		assert.Nil(t, apiTodo.Complete)
	})
	t.Run("EmptyBody", func(t *testing.T) {
		for _, body := range []string{"", "   ", "\n"} {
			_, err := ParseTodoCreate([]byte(body))
			assert.Equal(t, ErrMissingBody, err)
		}
	})
	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := ParseTodoCreate([]byte(`{"title":`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed JSON body")
	})
	t.Run("MissingTitle", func(t *testing.T) {
		_, err := ParseTodoCreate([]byte(`{"complete":true}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
	})
	t.Run("WrongType", func(t *testing.T) {
		_, err := ParseTodoCreate([]byte(`{"title":"t","complete":"yes"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "complete")
	})
	t.Run("UnknownField", func(t *testing.T) {
		_, err := ParseTodoCreate([]byte(`{"title":"t","priority":1}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "priority")
	})
	t.Run("ClientSuppliedIdRejected", func(t *testing.T) {
		_, err := ParseTodoCreate([]byte(`{"title":"t","id":"5f1d7f0e2b3c4d5e6f708192"}`))
		assert.Error(t, err)
	})
	t.Run("NotAnObject", func(t *testing.T) {
		_, err := ParseTodoCreate([]byte(`["title"]`))
		assert.Error(t, err)
	})
}

func TestParseTodoPatch(t *testing.T) {
	t.Run("SingleField", func(t *testing.T) {
		patch, err := ParseTodoPatch([]byte(`{"complete":true}`))
		require.NoError(t, err)
		assert.Nil(t, patch.Title)
		require.NotNil(t, patch.Complete)
		assert.True(t, *patch.Complete)
	})
	t.Run("BothFields", func(t *testing.T) {
		patch, err := ParseTodoPatch([]byte(`{"title":"new","complete":false}`))
		require.NoError(t, err)
		assert.Equal(t, "new", utility.FromStringPtr(patch.Title))
		require.NotNil(t, patch.Complete)
		assert.False(t, *patch.Complete)
	})
	t.Run("EmptyObject", func(t *testing.T) {
		_, err := ParseTodoPatch([]byte(`{}`))
		assert.Error(t, err)
	})
	t.Run("EmptyBody", func(t *testing.T) {
		_, err := ParseTodoPatch(nil)
		assert.Equal(t, ErrMissingBody, err)
	})
	t.Run("UnknownField", func(t *testing.T) {
		_, err := ParseTodoPatch([]byte(`{"done":true}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "done")
	})
}
