package route

import (
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/todoapi/rest/model"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// makeErrorResponder returns a JSON responder with body {"error": <message>}.
// A gimlet.ErrorResponse keeps its status code and message; any other error
// is reported as an internal error without its detail.
func makeErrorResponder(err error) gimlet.Responder {
	apiErr := model.APIError{Error: "internal error"}
	status := http.StatusInternalServerError

	if resp, ok := err.(gimlet.ErrorResponse); ok {
		apiErr.Error = resp.Message
		if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode <= 599 {
			status = resp.StatusCode
		}
	} else {
		grip.Error(message.WrapError(err, message.Fields{
			"message": "unexpected error in route handler",
		}))
	}

	responder := gimlet.NewJSONResponse(apiErr)
	grip.Error(message.WrapError(responder.SetStatus(status), message.Fields{
		"message": "setting error response status",
		"status":  status,
	}))

	return responder
}
