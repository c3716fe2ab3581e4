package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/invoicer/internal/apperr"
)

// Response is the uniform envelope every endpoint returns:
// {"status":"success"|"error", "message":..., "data":...}.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Status: "success", Message: message, Data: data})
}

// respondError maps the error's kind to a status code and emits the error
// envelope. Nothing internal leaks: the message is the client-facing one
// carried by the apperr taxonomy.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.StatusCode(err), Response{Status: "error", Message: apperr.Message(err)})
}
