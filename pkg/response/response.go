package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
	appErrors "github.com/noah-isme/tutorlink-admin-core/pkg/errors"
)

// Envelope represents the common response contract of the stub backend.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Status     string                 `json:"status,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data, Pagination: pagination})
}

// Message sends a bare acknowledgement the way the production backend does.
func Message(c *gin.Context, status int, message string) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Message: message})
}

// Error sends an error response converting the error to the common structure.
// The top-level message mirrors the production backend's `{message}` contract
// that the gateway client surfaces verbatim on validation failures.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Error: appErr, Message: appErr.Message})
}

// Transition reports a state-machine transition outcome: the acknowledgement
// message plus the application status after the call.
func Transition(c *gin.Context, status int, message, state string) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Message: message, Status: state})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
