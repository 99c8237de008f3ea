package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/extract"
	"github.com/spigell/resume-ranker/internal/validation"
)

const CodeDocumentError = "DOCUMENT_ERROR"

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

func statusFor(err error) int {
	var ferr *fiber.Error
	switch {
	case errors.As(err, new(*validation.Error)):
		return fiber.StatusBadRequest
	case errors.As(err, new(*extract.DocumentError)):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &ferr):
		return ferr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error(), Code: statusCode(status)}

	if verr, ok := validation.As(err); ok {
		resp.Code = string(verr.Code)
		resp.Field = verr.Field
	} else if derr, ok := extract.AsDocumentError(err); ok {
		resp.Code = CodeDocumentError
		resp.Field = derr.Name
	}

	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(resp)
}

// statusCode turns 404 into NOT_FOUND and so on.
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(status), " ", "_"))
}
