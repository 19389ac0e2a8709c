package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/blueprint"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/editor"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/workspace"
)

// errBadRequest marks malformed request bodies
var errBadRequest = errors.New("invalid request body")

// StatusFor maps a workspace error to an HTTP status code
func StatusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest),
		errors.Is(err, blueprint.ErrEmptyInput),
		errors.Is(err, blueprint.ErrUnsupportedFormat),
		errors.Is(err, workspace.ErrEmptyEditor),
		errors.Is(err, editor.ErrEmptyPattern),
		errors.Is(err, editor.ErrInvalidPattern):
		return http.StatusBadRequest
	case blueprint.IsDecodeError(err), blueprint.IsEncodeError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, editor.ErrNotFound),
		errors.Is(err, workspace.ErrHistoryEntryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// bind decodes an optional JSON body; an empty body leaves req untouched
func bind(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return errors.Join(errBadRequest, err)
	}
	return nil
}
