// Package response writes the JSON envelope shared by every endpoint:
// {success, message, data} on success and {success, message, error} on failure.
package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-api/internal/apperr"
)

// DebugKey is the gin context key that enables raw error text in failures.
const DebugKey = "response.debug"

// Envelope is the response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with an explicit status. The cause is only
// included when diagnostics are enabled.
func Fail(c *gin.Context, status int, message string, cause error) {
	env := Envelope{Success: false, Message: message}
	if cause != nil && c.GetBool(DebugKey) {
		env.Error = cause.Error()
	}
	c.AbortWithStatusJSON(status, env)
}

// Error classifies err and writes the matching failure envelope.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		zctx.From(c.Request.Context()).Error("Request failed",
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
	}
	Fail(c, status, apperr.Message(err), err)
}

// BindError writes a 400 for a request body or parameter that failed to
// bind, naming the offending fields when the validator reports them.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldMessage(fe))
		}
		Fail(c, http.StatusBadRequest, "Invalid input: "+strings.Join(fields, "; "), err)
		return
	}
	Fail(c, http.StatusBadRequest, "Invalid input", err)
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email"
	case "min", "gte":
		return name + " must be at least " + fe.Param()
	case "gt":
		return name + " must be greater than " + fe.Param()
	case "oneof":
		return name + " must be one of " + fe.Param()
	default:
		return name + " is invalid"
	}
}
