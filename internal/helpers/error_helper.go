package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/farellandr/travel-maker/internal/services"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Expected *int   `json:"expected,omitempty"`
	Actual   *int   `json:"actual,omitempty"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// StatusForError maps a service error kind to its HTTP status.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithServiceError writes err using its kind's status. Unclassified
// errors are logged and hidden behind fallbackMessage.
func RespondWithServiceError(c *gin.Context, err error, fallbackMessage string) {
	statusCode := StatusForError(err)
	if statusCode == http.StatusInternalServerError {
		slog.Error(fallbackMessage, "error", err, "path", c.Request.URL.Path)
		RespondWithError(c, statusCode, fallbackMessage)
		return
	}

	resp := ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: err.Error(),
	}
	var mismatch *services.CountMismatchError
	if errors.As(err, &mismatch) {
		resp.Expected = &mismatch.Expected
		resp.Actual = &mismatch.Actual
	}
	c.JSON(statusCode, resp)
}
