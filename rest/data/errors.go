package data

import (
	"fmt"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// TodoNotFoundMessage is the error message for any todo lookup that
// matches nothing.
const TodoNotFoundMessage = "Todo not found"

func invalidTodoIdError(id string) gimlet.ErrorResponse {
	return gimlet.ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("invalid todo id '%s'", id),
	}
}

func emptyPatchError() gimlet.ErrorResponse {
	return gimlet.ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    "update must set at least one field",
	}
}

func todoNotFoundError() gimlet.ErrorResponse {
	return gimlet.ErrorResponse{
		StatusCode: http.StatusNotFound,
		Message:    TodoNotFoundMessage,
	}
}

// storeError logs the underlying store failure and returns a 500 whose
// message does not carry driver detail.
func storeError(op string, err error) gimlet.ErrorResponse {
	grip.Error(message.WrapError(err, message.Fields{
		"message":   "store operation failed",
		"operation": op,
	}))

	return gimlet.ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("problem %s", op),
	}
}

// outcome names the result of a connector call for metrics.
func outcome(err error) string {
	if err == nil {
		return "success"
	}

	resp, ok := err.(gimlet.ErrorResponse)
	if !ok {
		return "store_error"
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "not_found"
	case resp.StatusCode >= http.StatusInternalServerError:
		return "store_error"
	default:
		return "client_error"
	}
}
