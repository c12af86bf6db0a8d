// Package errresponse holds the error payload renderers. Every error
// body has the same shape: {"error": string, "details": [string]?}.
// Internal causes are carried on the struct for logging but never
// serialized.
package errresponse

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	ErrorText string   `json:"error"`             // user-level error message
	Details   []string `json:"details,omitempty"` // per-field validation detail
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

// ErrInvalidRequest maps malformed request bodies to a 400.
func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		ErrorText:      "Invalid request.",
	}
}

// ErrValidation maps a field-level validation failure to a 400 with
// one detail line per violated field.
func ErrValidation(err error, message string, details []string) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		ErrorText:      message,
		Details:        details,
	}
}

// ErrInternal maps store and transport failures to a 500. The cause
// stays server-side; the client gets only the generic message.
func ErrInternal(err error, message string) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		ErrorText:      message,
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		ErrorText:      "Error rendering response.",
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, ErrorText: "Resource not found."}

// ErrArticleNotFound matches the article endpoints' message.
var ErrArticleNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, ErrorText: "Article not found"}
